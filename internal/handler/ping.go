// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/cache"
	"store-rating/internal/database"
)

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return ServerError(c, err, "database unhealthy")
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return ServerError(c, err, "cache unhealthy")
		}
		return c.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
