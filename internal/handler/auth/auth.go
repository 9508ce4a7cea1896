package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/cache"
	"store-rating/internal/database"
	"store-rating/internal/handler"
	"store-rating/internal/middleware"
	"store-rating/internal/model"
	"store-rating/internal/service"
	"store-rating/internal/store"
)

// TokenTTL access token 與 refresh token 的有效期限
type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}

var (
	hashPassword         = service.HashPassword
	authenticateUser     = service.AuthenticateUser
	issueAccessToken     = service.IssueAccessToken
	issueRefreshToken    = service.IssueRefreshToken
	validateRefreshToken = service.ValidateRefreshToken
	revokeRefreshToken   = service.RevokeRefreshToken
	createUser           = store.CreateUser
	getUserByEmail       = store.GetUserByEmail
	getUserByID          = store.GetUserByID
	updateUserPassword   = store.UpdateUserPassword
)

func issueTokens(ctx context.Context, rdb cache.Cache, u model.User, ttl TokenTTL) (string, string, error) {
	access, err := issueAccessToken(u, ttl.Access)
	if err != nil {
		return "", "", err
	}
	refresh, err := issueRefreshToken(ctx, rdb, u, ttl.Refresh)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// RegisterHandler 註冊一般使用者並直接登入
// @Summary     Register
// @Description 建立 normal_user 帳號 (Email 會自動轉小寫)，回傳存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, rdb cache.Cache, ttl TokenTTL) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return handler.ServerError(c, err, "Failed to register user")
		}

		ctx := c.Request().Context()
		user, err := createUser(ctx, db, &model.User{
			Name:         req.Name,
			Email:        service.NormalizeEmail(req.Email),
			PasswordHash: hash,
			Address:      req.Address,
			Role:         model.RoleNormalUser,
		})
		if errors.Is(err, store.ErrDuplicateEmail) {
			return handler.ErrorJSON(c, http.StatusBadRequest, "User with this email already exists")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to register user")
		}

		access, refresh, err := issueTokens(ctx, rdb, *user, ttl)
		if err != nil {
			return handler.ServerError(c, err, "Failed to issue token")
		}
		return c.JSON(http.StatusCreated, api.AuthResponse{
			Message:      "User registered successfully",
			User:         api.NewUserResponse(*user),
			Token:        access,
			RefreshToken: refresh,
		})
	}
}

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     Login
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與 refresh token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, rdb cache.Cache, ttl TokenTTL) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, service.NormalizeEmail(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusUnauthorized, "Invalid credentials")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to login")
		}
		if err := authenticateUser(*user, req.Password); err != nil {
			return handler.ErrorJSON(c, http.StatusUnauthorized, "Invalid credentials")
		}

		access, refresh, err := issueTokens(ctx, rdb, *user, ttl)
		if err != nil {
			return handler.ServerError(c, err, "Failed to issue token")
		}
		return c.JSON(http.StatusOK, api.AuthResponse{
			Message:      "Login successful",
			User:         api.NewUserResponse(*user),
			Token:        access,
			RefreshToken: refresh,
		})
	}
}

// MeHandler 回傳目前登入者的資料
// @Summary     Current user profile
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserEnvelope
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/me [get]
func MeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := middleware.CurrentUser(c)
		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "User not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to fetch user")
		}
		return c.JSON(http.StatusOK, api.UserEnvelope{User: api.NewUserResponse(*user)})
	}
}

// ChangePasswordHandler 變更目前登入者的密碼
// @Summary     Change password
// @Description 驗證目前密碼後更新為新密碼；目前密碼錯誤回傳 401
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.ChangePasswordRequest true "密碼資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/password [put]
func ChangePasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ChangePasswordRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		claims, _ := middleware.CurrentUser(c)
		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusNotFound, "User not found")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to update password")
		}
		if err := authenticateUser(*user, req.CurrentPassword); err != nil {
			return handler.ErrorJSON(c, http.StatusUnauthorized, "Current password is incorrect")
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return handler.ServerError(c, err, "Failed to update password")
		}
		if err := updateUserPassword(ctx, db, user.ID, hash); err != nil {
			return handler.ServerError(c, err, "Failed to update password")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated successfully"})
	}
}

// RefreshHandler 以 refresh token 換發新的 token 組，舊 token 立即失效
// @Summary     Refresh tokens
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RefreshTokenRequest true "refresh token"
// @Success     200  {object} api.TokenResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/refresh [post]
func RefreshHandler(db database.DB, rdb cache.Cache, ttl TokenTTL) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RefreshTokenRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}

		ctx := c.Request().Context()
		data, err := validateRefreshToken(ctx, rdb, req.RefreshToken)
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return handler.ErrorJSON(c, http.StatusUnauthorized, "Invalid refresh token")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to refresh token")
		}

		user, err := getUserByID(ctx, db, data.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.ErrorJSON(c, http.StatusUnauthorized, "Invalid refresh token")
		}
		if err != nil {
			return handler.ServerError(c, err, "Failed to refresh token")
		}

		if err := revokeRefreshToken(ctx, rdb, req.RefreshToken); err != nil {
			if errors.Is(err, service.ErrInvalidRefreshToken) {
				return handler.ErrorJSON(c, http.StatusUnauthorized, "Invalid refresh token")
			}
			return handler.ServerError(c, err, "Failed to refresh token")
		}

		access, refresh, err := issueTokens(ctx, rdb, *user, ttl)
		if err != nil {
			return handler.ServerError(c, err, "Failed to issue token")
		}
		return c.JSON(http.StatusOK, api.TokenResponse{Token: access, RefreshToken: refresh})
	}
}

// LogoutHandler 撤銷 refresh token
// @Summary     Logout
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RefreshTokenRequest true "refresh token"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/logout [post]
func LogoutHandler(rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RefreshTokenRequest
		if ok, err := handler.BindAndValidate(c, &req); !ok {
			return err
		}
		err := revokeRefreshToken(c.Request().Context(), rdb, req.RefreshToken)
		if err != nil && !errors.Is(err, service.ErrInvalidRefreshToken) {
			return handler.ServerError(c, err, "Failed to logout")
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
	}
}
