// File: internal/handler/stores/write.go
package stores

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

// CreateStoreHandler 建立商店 (system_admin)
// @Summary     Create a store
// @Description 指定 ownerId 時該使用者必須存在且角色為 store_owner
// @Tags        stores
// @Accept      json
// @Produce     json
// @Param       body body     api.StoreRequest true "商店資料"
// @Success     201  {object} api.StoreEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /stores [post]
func CreateStoreHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.StoreRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		ctx := c.Request().Context()
		msg, err := ownerProblem(ctx, db, req.OwnerID)
		if err != nil {
			return handler.ServerError(c, err, "Failed to create store")
		}
		if msg != "" {
			return handler.ErrorJSON(c, http.StatusBadRequest, msg)
		}

		s, err := createStore(ctx, db, &model.Store{
			Name:    req.Name,
			Email:   service.NormalizeEmail(req.Email),
			Address: req.Address,
			OwnerID: req.OwnerID,
		})
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return handler.ErrorJSON(c, http.StatusBadRequest, "Store with this email already exists")
		case errors.Is(err, store.ErrReferenceNotFound):
			return handler.ErrorJSON(c, http.StatusBadRequest, "Owner user not found")
		case err != nil:
			return handler.ServerError(c, err, "Failed to create store")
		}
		return c.JSON(http.StatusCreated, api.StoreEnvelope{
			Message: "Store created successfully",
			Store:   api.NewStoreResponse(*s),
		})
	}
}

// UpdateStoreHandler 更新商店 (system_admin)
// @Summary     Update a store
// @Tags        stores
// @Accept      json
// @Produce     json
// @Param       id   path     int              true "商店 ID"
// @Param       body body     api.StoreRequest true "商店資料"
// @Success     200  {object} api.StoreEnvelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /stores/{id} [put]
func UpdateStoreHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid store ID")
		}
		var req api.StoreRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		ctx := c.Request().Context()
		if _, err := getStoreByID(ctx, db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return handler.ErrorJSON(c, http.StatusNotFound, "Store not found")
			}
			return handler.ServerError(c, err, "Failed to update store")
		}
		msg, err := ownerProblem(ctx, db, req.OwnerID)
		if err != nil {
			return handler.ServerError(c, err, "Failed to update store")
		}
		if msg != "" {
			return handler.ErrorJSON(c, http.StatusBadRequest, msg)
		}

		s, err := updateStore(ctx, db, &model.Store{
			ID:      id,
			Name:    req.Name,
			Email:   service.NormalizeEmail(req.Email),
			Address: req.Address,
			OwnerID: req.OwnerID,
		})
		switch {
		case errors.Is(err, store.ErrNotFound):
			return handler.ErrorJSON(c, http.StatusNotFound, "Store not found")
		case errors.Is(err, store.ErrDuplicateEmail):
			return handler.ErrorJSON(c, http.StatusBadRequest, "Store with this email already exists")
		case errors.Is(err, store.ErrReferenceNotFound):
			return handler.ErrorJSON(c, http.StatusBadRequest, "Owner user not found")
		case err != nil:
			return handler.ServerError(c, err, "Failed to update store")
		}
		return c.JSON(http.StatusOK, api.StoreEnvelope{
			Message: "Store updated successfully",
			Store:   api.NewStoreResponse(*s),
		})
	}
}

// DeleteStoreHandler 刪除商店與其所有評分 (system_admin)
// @Summary     Delete a store
// @Tags        stores
// @Produce     json
// @Param       id  path     int true "商店 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /stores/{id} [delete]
func DeleteStoreHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.ErrorJSON(c, http.StatusBadRequest, "invalid store ID")
		}
		err = deleteStore(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "Store not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to delete store")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Store deleted successfully"})
	}
}
