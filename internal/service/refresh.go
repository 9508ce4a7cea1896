// File: internal/service/refresh.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"store-rating/internal/cache"
	"store-rating/internal/model"
)

const refreshTokenPrefix = "refresh_token:"

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// RefreshTokenData 存在 Redis 中、與 refresh token 綁定的資料
type RefreshTokenData struct {
	UserID int        `json:"user_id"`
	Role   model.Role `json:"role"`
}

var (
	randRead      = rand.Read
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

func refreshKey(token string) string { return refreshTokenPrefix + token }

// IssueRefreshToken 產生 32 bytes 隨機 token，並以 ttl 存入快取
func IssueRefreshToken(ctx context.Context, c cache.Cache, user model.User, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	data, err := jsonMarshal(RefreshTokenData{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	if err := c.Set(ctx, refreshKey(token), data, ttl).Err(); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	return token, nil
}

// ValidateRefreshToken 讀取 token 對應資料；不存在或過期回傳 ErrInvalidRefreshToken
func ValidateRefreshToken(ctx context.Context, c cache.Cache, token string) (*RefreshTokenData, error) {
	if token == "" {
		return nil, ErrInvalidRefreshToken
	}
	raw, err := c.Get(ctx, refreshKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("ValidateRefreshToken: %w", err)
	}
	var data RefreshTokenData
	if err := jsonUnmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("ValidateRefreshToken: %w", err)
	}
	return &data, nil
}

// RevokeRefreshToken 刪除 token；token 不存在時回傳 ErrInvalidRefreshToken
func RevokeRefreshToken(ctx context.Context, c cache.Cache, token string) error {
	n, err := c.Del(ctx, refreshKey(token)).Result()
	if err != nil {
		return fmt.Errorf("RevokeRefreshToken: %w", err)
	}
	if n == 0 {
		return ErrInvalidRefreshToken
	}
	return nil
}
