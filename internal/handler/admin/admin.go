// File: internal/handler/admin/admin.go
package admin

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/database"
	"store-rating/internal/handler"
	"store-rating/internal/model"
	"store-rating/internal/store"
)

const (
	invalidRoleMessage    = "Invalid role. Must be one of: system_admin, normal_user, store_owner"
	ownerHasStoresMessage = "Cannot change role of a user who still owns stores"
)

var (
	getStatistics       = store.GetStatistics
	listUsers           = store.ListUsers
	getUserDetail       = store.GetUserDetail
	listStoresWithOwner = store.ListStoresWithOwner
)

// DashboardHandler 系統統計
// @Summary     Admin dashboard
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.AdminDashboardResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/dashboard [get]
func DashboardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := getStatistics(c.Request().Context(), db)
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch dashboard data")
		}
		return c.JSON(http.StatusOK, api.NewAdminDashboardResponse(*stats))
	}
}

// ListUsersHandler 列出使用者
// @Summary     List users
// @Description 依姓名/Email/地址搜尋、依角色篩選並排序
// @Tags        admin
// @Produce     json
// @Param       search    query    string false "以空白分隔的關鍵字"
// @Param       role      query    string false "system_admin|normal_user|store_owner"
// @Param       sortBy    query    string false "name|email|role|address|created_at"
// @Param       sortOrder query    string false "ASC|DESC"
// @Success     200       {object} api.UserListResponse
// @Failure     400       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := model.UserFilter{
			Search:    c.QueryParam("search"),
			SortBy:    c.QueryParam("sortBy"),
			SortOrder: c.QueryParam("sortOrder"),
		}
		if raw := c.QueryParam("role"); raw != "" {
			role, err := model.ParseRole(raw)
			if err != nil {
				return handler.ErrorJSON(c, http.StatusBadRequest, invalidRoleMessage)
			}
			filter.Role = &role
		}

		users, err := listUsers(c.Request().Context(), db, filter)
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch users")
		}
		return c.JSON(http.StatusOK, api.NewUserListResponse(users))
	}
}

// GetUserHandler 取得使用者詳細資料，店主附帶名下商店的平均評分
// @Summary     Get a user
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.UserEnvelope
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid user ID")
		}
		detail, err := getUserDetail(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "User not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch user")
		}
		return c.JSON(http.StatusOK, api.UserEnvelope{User: api.NewUserDetailResponse(*detail)})
	}
}

// ListStoresHandler 列出所有商店與店主名稱
// @Summary     List stores with owners
// @Tags        admin
// @Produce     json
// @Param       search    query    string false "以空白分隔的關鍵字"
// @Param       sortBy    query    string false "name|email|address|average_rating|created_at"
// @Param       sortOrder query    string false "ASC|DESC"
// @Success     200       {object} api.StoreListResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/stores [get]
func ListStoresHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := model.StoreFilter{
			Search:    c.QueryParam("search"),
			SortBy:    c.QueryParam("sortBy"),
			SortOrder: c.QueryParam("sortOrder"),
		}
		list, err := listStoresWithOwner(c.Request().Context(), db, filter)
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch stores")
		}
		return c.JSON(http.StatusOK, api.StoreListResponse{Stores: api.NewAdminStoreList(list)})
	}
}
