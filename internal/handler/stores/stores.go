// File: internal/handler/stores/stores.go
package stores

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/database"
	"store-rating/internal/handler"
	"store-rating/internal/middleware"
	"store-rating/internal/model"
	"store-rating/internal/store"
)

var (
	listStores      = store.ListStores
	getStoreSummary = store.GetStoreSummary
	getStoreByID    = store.GetStoreByID
	getUserByID     = store.GetUserByID
	createStore     = store.CreateStore
	updateStore     = store.UpdateStore
	deleteStore     = store.DeleteStore
)

// callerID 有登入時回傳使用者 ID，匿名請求回傳 nil
func callerID(c echo.Context) *int {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	id := claims.UserID
	return &id
}

// ownerProblem 檢查指定的店主存在且角色為 store_owner，不符合時回傳 400 訊息
func ownerProblem(ctx context.Context, db database.DB, ownerID *int) (string, error) {
	if ownerID == nil {
		return "", nil
	}
	owner, err := getUserByID(ctx, db, *ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return "Owner user not found", nil
	}
	if err != nil {
		return "", err
	}
	if owner.Role != model.RoleStoreOwner {
		return "Owner must be a store owner", nil
	}
	return "", nil
}

// ListStoresHandler 列出所有商店與評分統計
// @Summary     List stores
// @Description 依名稱/地址搜尋並排序；帶有效 token 時附上自己的評分 user_rating
// @Tags        stores
// @Produce     json
// @Param       search    query    string false "以空白分隔的關鍵字"
// @Param       sortBy    query    string false "name|email|address|average_rating|created_at"
// @Param       sortOrder query    string false "ASC|DESC"
// @Success     200       {object} api.StoreListResponse
// @Failure     500       {object} api.ErrorResponse
// @Router      /stores [get]
func ListStoresHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := model.StoreFilter{
			Search:    c.QueryParam("search"),
			SortBy:    c.QueryParam("sortBy"),
			SortOrder: c.QueryParam("sortOrder"),
		}
		list, err := listStores(c.Request().Context(), db, filter, callerID(c))
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch stores")
		}
		return c.JSON(http.StatusOK, api.StoreListResponse{Stores: api.NewPublicStoreList(list)})
	}
}

// GetStoreHandler 取得單一商店
// @Summary     Get a store
// @Tags        stores
// @Produce     json
// @Param       id  path     int true "商店 ID"
// @Success     200 {object} api.StoreEnvelope
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /stores/{id} [get]
func GetStoreHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid store ID")
		}
		s, err := getStoreSummary(c.Request().Context(), db, id, callerID(c))
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "Store not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch store")
		}
		return c.JSON(http.StatusOK, api.StoreEnvelope{Store: api.NewPublicStoreResponse(*s)})
	}
}
