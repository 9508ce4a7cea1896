// File: internal/handler/ratings/ratings.go
package ratings

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/database"
	"store-rating/internal/events"
	"store-rating/internal/handler"
	"store-rating/internal/middleware"
	"store-rating/internal/model"
	"store-rating/internal/store"
)

var (
	upsertRating      = store.UpsertRating
	getUserRating     = store.GetUserRating
	deleteUserRating  = store.DeleteUserRating
	listStoreRatings  = store.ListStoreRatings
	getStoreAggregate = store.GetStoreAggregate
)

const invalidStoreIDMessage = "invalid store ID"

// SubmitRatingHandler 新增或更新自己對商店的評分
// @Summary     Submit a rating
// @Description 同一使用者對同一商店只會有一筆評分；首次評分回傳 201，再次評分更新並回傳 200
// @Tags        ratings
// @Accept      json
// @Produce     json
// @Param       storeId path     int               true "商店 ID"
// @Param       body    body     api.RatingRequest true "評分 1-5"
// @Success     201     {object} api.RatingEnvelope
// @Success     200     {object} api.RatingEnvelope
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /ratings/{storeId} [post]
func SubmitRatingHandler(db database.DB, ev events.Emitter) echo.HandlerFunc {
	return func(c echo.Context) error {
		storeID, err := handler.ParamID(c, "storeId")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, invalidStoreIDMessage)
		}
		var req api.RatingRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		claims, _ := middleware.CurrentUser(c)
		r, inserted, err := upsertRating(c.Request().Context(), db, claims.UserID, storeID, req.Rating)
		if errors.Is(err, store.ErrReferenceNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "Store not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to submit rating")
		}

		if inserted {
			ev.Emit(events.NewRatingEvent(events.RatingCreated, *r))
			return c.JSON(http.StatusCreated, api.RatingEnvelope{
				Message: "Rating submitted successfully",
				Rating:  api.NewRatingResponse(*r),
			})
		}
		ev.Emit(events.NewRatingEvent(events.RatingUpdated, *r))
		return c.JSON(http.StatusOK, api.RatingEnvelope{
			Message: "Rating updated successfully",
			Rating:  api.NewRatingResponse(*r),
		})
	}
}

// GetMyRatingHandler 取得自己對商店的評分
// @Summary     Get my rating for a store
// @Tags        ratings
// @Produce     json
// @Param       storeId path     int true "商店 ID"
// @Success     200     {object} api.RatingEnvelope
// @Failure     404     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /ratings/{storeId} [get]
func GetMyRatingHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		storeID, err := handler.ParamID(c, "storeId")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, invalidStoreIDMessage)
		}
		claims, _ := middleware.CurrentUser(c)
		r, err := getUserRating(c.Request().Context(), db, claims.UserID, storeID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "Rating not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch rating")
		}
		return c.JSON(http.StatusOK, api.RatingEnvelope{Rating: api.NewRatingResponse(*r)})
	}
}

// DeleteMyRatingHandler 刪除自己對商店的評分
// @Summary     Delete my rating for a store
// @Tags        ratings
// @Produce     json
// @Param       storeId path     int true "商店 ID"
// @Success     200     {object} api.MessageResponse
// @Failure     404     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /ratings/{storeId} [delete]
func DeleteMyRatingHandler(db database.DB, ev events.Emitter) echo.HandlerFunc {
	return func(c echo.Context) error {
		storeID, err := handler.ParamID(c, "storeId")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, invalidStoreIDMessage)
		}
		claims, _ := middleware.CurrentUser(c)
		r, err := deleteUserRating(c.Request().Context(), db, claims.UserID, storeID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "Rating not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to delete rating")
		}
		ev.Emit(events.NewRatingEvent(events.RatingDeleted, *r))
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Rating deleted successfully"})
	}
}

// StoreRatingsHandler 列出商店的所有評分
// @Summary     List ratings of a store
// @Description system_admin 可看所有商店；store_owner 只會看到自己名下商店的評分
// @Tags        ratings
// @Produce     json
// @Param       storeId path     int true "商店 ID"
// @Success     200     {object} api.RatingListResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /ratings/store/{storeId} [get]
func StoreRatingsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		storeID, err := handler.ParamID(c, "storeId")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, invalidStoreIDMessage)
		}

		claims, _ := middleware.CurrentUser(c)
		var ownerID *int
		switch claims.Role {
		case model.RoleSystemAdmin:
		case model.RoleStoreOwner:
			id := claims.UserID
			ownerID = &id
		default:
			return handler.ErrorJSON(c, http.StatusForbidden, "Access denied")
		}

		list, err := listStoreRatings(c.Request().Context(), db, storeID, ownerID)
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch store ratings")
		}
		return c.JSON(http.StatusOK, api.RatingListResponse{Ratings: api.NewRatingDetailList(list)})
	}
}

// AverageRatingHandler 商店平均分數 (公開)
// @Summary     Average rating of a store
// @Tags        ratings
// @Produce     json
// @Param       storeId path     int true "商店 ID"
// @Success     200     {object} api.AverageRatingResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Router      /ratings/store/{storeId}/average [get]
func AverageRatingHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		storeID, err := handler.ParamID(c, "storeId")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, invalidStoreIDMessage)
		}
		agg, err := getStoreAggregate(c.Request().Context(), db, storeID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "Store not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch average rating")
		}
		return c.JSON(http.StatusOK, api.NewAverageRatingResponse(*agg))
	}
}
