// File: internal/handler/admin/users.go
package admin

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/database"
	"store-rating/internal/handler"
	"store-rating/internal/model"
	"store-rating/internal/service"
	"store-rating/internal/store"
)

var (
	hashPassword   = service.HashPassword
	createUser     = store.CreateUser
	updateUser     = store.UpdateUser
	updateUserRole = store.UpdateUserRole
	deleteUser     = store.DeleteUser
)

// CreateUserHandler 建立任意角色的使用者，未指定角色時為 normal_user
// @Summary     Create a user
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		role := model.RoleNormalUser
		if req.Role != "" {
			role = model.Role(req.Role)
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return handler.ServerError(c, err, "Failed to create user")
		}
		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        service.NormalizeEmail(req.Email),
			PasswordHash: hash,
			Address:      req.Address,
			Role:         role,
		})
		if errors.Is(err, store.ErrDuplicateEmail) {
			return handler.ErrorJSON(c, http.StatusBadRequest, "User with this email already exists")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to create user")
		}
		return c.JSON(http.StatusCreated, api.UserEnvelope{
			Message: "User created successfully",
			User:    api.NewUserResponse(*user),
		})
	}
}

// UpdateUserHandler 更新使用者資料，password 有值時一併更新密碼
// @Summary     Update a user
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       body body     api.UpdateUserRequest true "使用者資料"
// @Success     200  {object} api.UserEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid user ID")
		}
		var req api.UpdateUserRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		var hash *string
		if req.Password != "" {
			h, err := hashPassword(req.Password)
			if err != nil {
				return handler.ServerError(c, err, "Failed to update user")
			}
			hash = &h
		}

		user, err := updateUser(c.Request().Context(), db, &model.User{
			ID:      id,
			Name:    req.Name,
			Email:   service.NormalizeEmail(req.Email),
			Address: req.Address,
			Role:    model.Role(req.Role),
		}, hash)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return handler.ErrorJSON(c, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrDuplicateEmail):
			return handler.ErrorJSON(c, http.StatusBadRequest, "User with this email already exists")
		case errors.Is(err, store.ErrOwnerHasStores):
			return handler.ErrorJSON(c, http.StatusBadRequest, ownerHasStoresMessage)
		case err != nil:
			return handler.ServerError(c, err, "Failed to update user")
		}
		return c.JSON(http.StatusOK, api.UserEnvelope{
			Message: "User updated successfully",
			User:    api.NewUserResponse(*user),
		})
	}
}

// UpdateUserRoleHandler 只變更使用者角色
// @Summary     Change a user's role
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       body body     api.UpdateRoleRequest true "新角色"
// @Success     200  {object} api.UserEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id}/role [patch]
func UpdateUserRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid user ID")
		}
		var req api.UpdateRoleRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		role, err := model.ParseRole(req.Role)
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, invalidRoleMessage)
		}

		user, err := updateUserRole(c.Request().Context(), db, id, role)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "User not found")
		}
		if errors.Is(err, store.ErrOwnerHasStores) {
			return handler.ErrorJSON(c, http.StatusBadRequest, ownerHasStoresMessage)
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to update user role")
		}
		return c.JSON(http.StatusOK, api.UserEnvelope{
			Message: "User role updated successfully",
			User:    api.NewUserResponse(*user),
		})
	}
}

// DeleteUserHandler 刪除使用者；其評分一併刪除，名下商店改為無店主
// @Summary     Delete a user
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid user ID")
		}
		err = deleteUser(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "User not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to delete user")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
	}
}
