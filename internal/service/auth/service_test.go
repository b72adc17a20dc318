package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	myredis "github.com/SidS12345/Family-Connections/internal/dao/redis"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
	"github.com/SidS12345/Family-Connections/pkg/util/jwt"
)

func TestRefreshTokenRotation(t *testing.T) {
	jwt.Init("test-secret", 15, 24)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := myredis.NewRedisCache(client, 1, 8)
	svc := NewAuthService(cache)
	ctx := context.Background()

	refresh, tokenID, err := jwt.GenerateRefreshToken(7)
	require.NoError(t, err)

	// no recorded session yet
	_, err = svc.RefreshToken(ctx, refresh)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	require.NoError(t, cache.Set(ctx, "family:user_token:7", tokenID, time.Hour))
	pair, err := svc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	claims, err := jwt.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, jwt.SubjectAccessToken, claims.Subject)

	// the old refresh token was rotated out
	_, err = svc.RefreshToken(ctx, refresh)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
	_, err = svc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	jwt.Init("test-secret", 15, 24)
	svc := NewAuthService(nil)

	access, err := jwt.GenerateAccessToken(7)
	require.NoError(t, err)
	_, err = svc.RefreshToken(context.Background(), access)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	_, err = svc.RefreshToken(context.Background(), "garbage")
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestRefreshTokenIDUsesConfiguredLifetime(t *testing.T) {
	jwt.Init("test-secret", 15, 720)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := myredis.NewRedisCache(client, 1, 8)
	svc := NewAuthService(cache)
	ctx := context.Background()

	refresh, tokenID, err := jwt.GenerateRefreshToken(7)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "family:user_token:7", tokenID, time.Hour))

	_, err = svc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, mr.TTL("family:user_token:7"))
}
