// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"store-rating/internal/cache"
	"store-rating/internal/database"
	"store-rating/internal/events"
	"store-rating/internal/handler"
	"store-rating/internal/handler/admin"
	"store-rating/internal/handler/auth"
	"store-rating/internal/handler/owner"
	"store-rating/internal/handler/ratings"
	"store-rating/internal/handler/stores"
	"store-rating/internal/middleware"
	"store-rating/internal/model"
)

// Deps 路由需要的外部資源
type Deps struct {
	DB      database.DB
	Cache   cache.Cache
	Tokens  auth.TokenTTL
	Events  events.Emitter
	Limiter *middleware.RateLimiter
	Metrics *middleware.Metrics
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	e.GET("/metrics", d.Metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊、登入與 token 換發 (限流)
	apiAuth := api.Group("/auth")
	apiAuth.POST("/register", auth.RegisterHandler(d.DB, d.Cache, d.Tokens), d.Limiter.Middleware)
	apiAuth.POST("/login", auth.LoginHandler(d.DB, d.Cache, d.Tokens), d.Limiter.Middleware)
	apiAuth.POST("/refresh", auth.RefreshHandler(d.DB, d.Cache, d.Tokens), d.Limiter.Middleware)
	apiAuth.POST("/logout", auth.LogoutHandler(d.Cache))
	apiAuth.GET("/me", auth.MeHandler(d.DB), middleware.RequireAuth)
	apiAuth.PUT("/password", auth.ChangePasswordHandler(d.DB), middleware.RequireAuth, d.Limiter.Middleware)

	// 商店：讀取公開，寫入限管理員
	requireAdmin := middleware.RequireRoles(model.RoleSystemAdmin)
	apiStores := api.Group("/stores")
	apiStores.GET("", stores.ListStoresHandler(d.DB), middleware.OptionalAuth)
	apiStores.GET("/:id", stores.GetStoreHandler(d.DB), middleware.OptionalAuth)
	apiStores.POST("", stores.CreateStoreHandler(d.DB), requireAdmin)
	apiStores.PUT("/:id", stores.UpdateStoreHandler(d.DB), requireAdmin)
	apiStores.DELETE("/:id", stores.DeleteStoreHandler(d.DB), requireAdmin)

	// 評分
	requireNormalUser := middleware.RequireRoles(model.RoleNormalUser)
	apiRatings := api.Group("/ratings")
	apiRatings.POST("/:storeId", ratings.SubmitRatingHandler(d.DB, d.Events), requireNormalUser)
	apiRatings.GET("/:storeId", ratings.GetMyRatingHandler(d.DB), requireNormalUser)
	apiRatings.DELETE("/:storeId", ratings.DeleteMyRatingHandler(d.DB, d.Events), requireNormalUser)
	apiRatings.GET("/store/:storeId", ratings.StoreRatingsHandler(d.DB), middleware.RequireAuth)
	apiRatings.GET("/store/:storeId/average", ratings.AverageRatingHandler(d.DB))

	// 管理員專屬
	apiAdmin := api.Group("/admin", requireAdmin)
	apiAdmin.GET("/dashboard", admin.DashboardHandler(d.DB))
	apiAdmin.GET("/users", admin.ListUsersHandler(d.DB))
	apiAdmin.POST("/users", admin.CreateUserHandler(d.DB))
	apiAdmin.GET("/users/:id", admin.GetUserHandler(d.DB))
	apiAdmin.PUT("/users/:id", admin.UpdateUserHandler(d.DB))
	apiAdmin.PATCH("/users/:id/role", admin.UpdateUserRoleHandler(d.DB))
	apiAdmin.DELETE("/users/:id", admin.DeleteUserHandler(d.DB))
	apiAdmin.GET("/stores", admin.ListStoresHandler(d.DB))

	// 店主專屬
	apiOwner := api.Group("/users", middleware.RequireRoles(model.RoleStoreOwner))
	apiOwner.GET("/dashboard", owner.DashboardHandler(d.DB))
	apiOwner.GET("/store/:storeId/ratings", owner.StoreRatingsHandler(d.DB))
}
