// Package auth validates and rotates refresh tokens.
package auth

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	myredis "github.com/SidS12345/Family-Connections/internal/dao/redis"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
	"github.com/SidS12345/Family-Connections/pkg/constants"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
	"github.com/SidS12345/Family-Connections/pkg/util/jwt"
)

// Service is the token service. Without a cache, refresh tokens are checked
// by signature and expiry only.
type Service struct {
	cache myredis.CacheService
}

func NewAuthService(cache myredis.CacheService) *Service {
	return &Service{cache: cache}
}

// ValidateTokenID reports whether tokenID is userID's current refresh token.
func (s *Service) ValidateTokenID(ctx context.Context, userID uint, tokenID string) (bool, error) {
	if s.cache == nil {
		return true, nil
	}
	validTokenID, err := s.cache.Get(ctx, constants.REDIS_USER_TOKEN_PREFIX+strconv.FormatUint(uint64(userID), 10))
	if err != nil {
		return false, err
	}
	if validTokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair and
// records the new refresh token id, revoking the old one.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*respond.TokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil || claims.Subject != jwt.SubjectRefreshToken {
		return nil, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}

	ok, err := s.ValidateTokenID(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		zap.L().Error("validate refresh token id failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !ok {
		return nil, errorx.New(errorx.CodeUnauthorized, "refresh token has been revoked")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("generate access token failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	newRefresh, tokenID, err := jwt.GenerateRefreshToken(claims.UserID)
	if err != nil {
		zap.L().Error("generate refresh token failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if s.cache != nil {
		key := constants.REDIS_USER_TOKEN_PREFIX + strconv.FormatUint(uint64(claims.UserID), 10)
		if err := s.cache.Set(ctx, key, tokenID, jwt.RefreshTokenExpiry()); err != nil {
			zap.L().Error("store refresh token id failed", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	return &respond.TokenRespond{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}
