package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"store-rating/internal/cache"
	"store-rating/internal/model"
)

var (
	randReadDefault      = rand.Read
	jsonMarshalDefault   = json.Marshal
	jsonUnmarshalDefault = json.Unmarshal
)

func TestIssueRefreshToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	c := &cache.FakeCache{}
	user := model.User{ID: 1, Role: model.RoleNormalUser}

	randRead = func([]byte) (int, error) { return 0, errors.New("rand") }
	_, err := IssueRefreshToken(ctx, c, user, time.Second)
	require.Error(t, err)

	randRead = rand.Read
	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("json") }
	_, err = IssueRefreshToken(ctx, c, user, time.Second)
	require.Error(t, err)

	jsonMarshal = json.Marshal
	c.SetFn = func(context.Context, string, any, time.Duration) *redis.StatusCmd {
		return redis.NewStatusResult("", errors.New("set"))
	}
	_, err = IssueRefreshToken(ctx, c, user, time.Second)
	require.Error(t, err)

	var storedKey string
	var storedVal []byte
	var storedTTL time.Duration
	c.SetFn = func(_ context.Context, key string, val any, ttl time.Duration) *redis.StatusCmd {
		storedKey = key
		storedVal = val.([]byte)
		storedTTL = ttl
		return redis.NewStatusResult("OK", nil)
	}
	tok, err := IssueRefreshToken(ctx, c, user, time.Hour)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(storedKey, "refresh_token:"))
	require.True(t, strings.HasSuffix(storedKey, tok))
	require.Equal(t, time.Hour, storedTTL)
	decoded, _ := base64.RawURLEncoding.DecodeString(tok)
	require.Len(t, decoded, 32)
	var d RefreshTokenData
	require.NoError(t, json.Unmarshal(storedVal, &d))
	require.Equal(t, 1, d.UserID)
	require.Equal(t, model.RoleNormalUser, d.Role)
}

func TestValidateRefreshToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	c := &cache.FakeCache{}

	_, err := ValidateRefreshToken(ctx, c, "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", redis.Nil)
	}
	_, err = ValidateRefreshToken(ctx, c, "tok")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", errors.New("get"))
	}
	_, err = ValidateRefreshToken(ctx, c, "tok")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidRefreshToken)

	c.GetFn = func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("bad", nil)
	}
	jsonUnmarshal = func([]byte, any) error { return errors.New("unmarshal") }
	_, err = ValidateRefreshToken(ctx, c, "tok")
	require.Error(t, err)

	jsonUnmarshal = json.Unmarshal
	dataBytes, _ := json.Marshal(RefreshTokenData{UserID: 2, Role: model.RoleStoreOwner})
	c.GetFn = func(_ context.Context, key string) *redis.StringCmd {
		require.Equal(t, "refresh_token:tok", key)
		return redis.NewStringResult(string(dataBytes), nil)
	}
	data, err := ValidateRefreshToken(ctx, c, "tok")
	require.NoError(t, err)
	require.Equal(t, 2, data.UserID)
	require.Equal(t, model.RoleStoreOwner, data.Role)
}

func TestRevokeRefreshToken(t *testing.T) {
	ctx := context.Background()
	c := &cache.FakeCache{DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
		require.Equal(t, []string{"refresh_token:tok"}, keys)
		return redis.NewIntResult(1, nil)
	}}
	require.NoError(t, RevokeRefreshToken(ctx, c, "tok"))

	c.DelFn = func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(0, nil) }
	require.ErrorIs(t, RevokeRefreshToken(ctx, c, "tok"), ErrInvalidRefreshToken)

	c.DelFn = func(context.Context, ...string) *redis.IntCmd { return redis.NewIntResult(0, errors.New("down")) }
	require.Error(t, RevokeRefreshToken(ctx, c, "tok"))
}
