// File: internal/handler/owner/owner.go
package owner

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/database"
	"store-rating/internal/handler"
	"store-rating/internal/middleware"
	"store-rating/internal/store"
)

// RecentRatingsLimit 店主儀表板顯示的最新評分筆數
const RecentRatingsLimit = 10

var (
	listOwnerStores        = store.ListOwnerStores
	listRecentOwnerRatings = store.ListRecentOwnerRatings
	getOwnedStore          = store.GetOwnedStore
	listStoreRatings       = store.ListStoreRatings
)

// DashboardHandler 店主名下商店的評分統計與最新評分
// @Summary     Store owner dashboard
// @Tags        owner
// @Produce     json
// @Success     200 {object} api.OwnerDashboardResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/dashboard [get]
func DashboardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := middleware.CurrentUser(c)
		ctx := c.Request().Context()

		stores, err := listOwnerStores(ctx, db, claims.UserID)
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch dashboard data")
		}
		recent, err := listRecentOwnerRatings(ctx, db, claims.UserID, RecentRatingsLimit)
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch dashboard data")
		}
		return c.JSON(http.StatusOK, api.OwnerDashboardResponse{
			Stores:        api.NewStoreSummaryList(stores),
			RecentRatings: api.NewRatingDetailList(recent),
		})
	}
}

// StoreRatingsHandler 店主檢視自己商店的評分
// @Summary     Ratings of an owned store
// @Tags        owner
// @Produce     json
// @Param       storeId path     int true "商店 ID"
// @Success     200     {object} api.RatingListResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/store/{storeId}/ratings [get]
func StoreRatingsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		storeID, err := handler.ParamID(c, "storeId")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid store ID")
		}
		claims, _ := middleware.CurrentUser(c)
		ctx := c.Request().Context()

		if _, err := getOwnedStore(ctx, db, storeID, claims.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return handler.ErrorJSON(c, http.StatusNotFound, "Store not found or access denied")
			}
			return handler.ServerError(c, err, "Failed to fetch store ratings")
		}

		ownerID := claims.UserID
		list, err := listStoreRatings(ctx, db, storeID, &ownerID)
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch store ratings")
		}
		return c.JSON(http.StatusOK, api.RatingListResponse{Ratings: api.NewRatingDetailList(list)})
	}
}
