// Package user handles accounts: registration, login, profile edits and deletion.
package user

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	myredis "github.com/SidS12345/Family-Connections/internal/dao/redis"
	"github.com/SidS12345/Family-Connections/internal/dto/request"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/metrics"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/mq"
	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/internal/service/common"
	"github.com/SidS12345/Family-Connections/pkg/constants"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
	"github.com/SidS12345/Family-Connections/pkg/util/jwt"
)

// userInfoService implements account operations. cache is nil when Redis is not configured.
type userInfoService struct {
	repos    *repository.Repositories
	cache    myredis.AsyncCacheService
	cacheTTL time.Duration
	audit    *common.Auditor
}

func NewUserService(repos *repository.Repositories, cache myredis.AsyncCacheService, cacheTTL time.Duration, audit *common.Auditor) *userInfoService {
	return &userInfoService{repos: repos, cache: cache, cacheTTL: cacheTTL, audit: audit}
}

func idKey(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}

func toAccountRespond(u *model.UserInfo) respond.AccountRespond {
	return respond.AccountRespond{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Gender:    string(u.Gender),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// Register creates an account. Emails are compared case-insensitively.
func (u *userInfoService) Register(ctx context.Context, req request.RegisterRequest) (*respond.AccountRespond, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, common.Invalid("name is required")
	}

	// 1. email must be free
	_, err := u.repos.User.FindByEmail(email)
	switch {
	case err == nil:
		zap.L().Info("register with existing email", zap.String("email", email))
		return nil, errorx.New(errorx.CodeUserExist, "email is already registered")
	case !errorx.IsNotFound(err):
		return nil, common.DBError(err, "")
	}

	// 2. insert; BeforeSave hashes the password
	newUser := &model.UserInfo{
		Name:        name,
		Email:       email,
		RawPassword: req.Password,
		Gender:      model.ParseGender(req.Gender),
	}
	if err := u.repos.User.Create(newUser); err != nil {
		return nil, common.DBError(err, "")
	}

	// 3. every cached user list is now stale
	u.invalidateUserLists()
	u.audit.Publish(ctx, mq.NewEvent(mq.EventUserRegistered, newUser.ID, newUser.ID, newUser.ID))

	rsp := toAccountRespond(newUser)
	return &rsp, nil
}

// Login checks the password and issues an access/refresh token pair.
// The refresh token id is recorded so a new login revokes older refresh tokens.
func (u *userInfoService) Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeInvalidPassword, "invalid email or password")
		}
		return nil, common.DBError(err, "")
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "invalid email or password")
	}

	accessToken, err := jwt.GenerateAccessToken(user.ID)
	if err != nil {
		zap.L().Error("generate access token failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		zap.L().Error("generate refresh token failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if u.cache != nil {
		key := idKey(constants.REDIS_USER_TOKEN_PREFIX, user.ID)
		if err := u.cache.Set(ctx, key, tokenID, jwt.RefreshTokenExpiry()); err != nil {
			// login still succeeds; refresh will fail until the next login
			zap.L().Error("store refresh token id failed", zap.Error(err))
		}
	}

	return &respond.LoginRespond{
		AccountRespond: toAccountRespond(user),
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
	}, nil
}

// GetAccount returns the caller's own account.
func (u *userInfoService) GetAccount(ctx context.Context, userID uint) (*respond.AccountRespond, error) {
	user, err := u.repos.User.FindByID(userID)
	if err != nil {
		return nil, common.DBError(err, "user not found")
	}
	rsp := toAccountRespond(user)
	return &rsp, nil
}

// UpdateProfile applies every non-nil field of req to userID's profile.
// Empty strings clear optional fields.
func (u *userInfoService) UpdateProfile(ctx context.Context, userID uint, req request.UpdateProfileRequest) (*respond.AccountRespond, error) {
	user, err := u.repos.User.FindByID(userID)
	if err != nil {
		return nil, common.DBError(err, "user not found")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, common.Invalid("name must not be empty")
		}
		user.Name = name
	}
	setOptional(&user.ProfilePic, req.ProfilePic)
	setOptional(&user.Phone, req.Phone)
	setOptional(&user.Job, req.Job)
	setOptional(&user.Bio, req.Bio)
	setOptional(&user.Location, req.Location)
	if req.Gender != nil {
		user.Gender = model.ParseGender(*req.Gender)
	}
	setFlag(&user.PhonePrivate, req.PhonePrivate)
	setFlag(&user.JobPrivate, req.JobPrivate)
	setFlag(&user.BioPrivate, req.BioPrivate)
	setFlag(&user.LocationPrivate, req.LocationPrivate)

	if err := u.repos.User.Update(user); err != nil {
		return nil, common.DBError(err, "user not found")
	}

	// name and picture appear in cached lists
	if req.Name != nil || req.ProfilePic != nil {
		u.invalidateUserLists()
		u.invalidateConnectionsOfPeers(ctx, userID)
	}

	rsp := toAccountRespond(user)
	return &rsp, nil
}

func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		*dst = nil
		return
	}
	*dst = &trimmed
}

func setFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ListUsers returns the public identity of every user except excludeID.
func (u *userInfoService) ListUsers(ctx context.Context, excludeID uint) ([]respond.PublicUserRespond, error) {
	key := idKey(constants.REDIS_USER_LIST_PREFIX, excludeID)
	var cached []respond.PublicUserRespond
	hit, err := myredis.GetJSON(ctx, u.cache, key, &cached)
	if err != nil {
		zap.L().Warn("read user list cache", zap.Error(err))
	}
	if u.cache != nil {
		metrics.ObserveCache("users", hit)
	}
	if hit {
		return cached, nil
	}

	users, err := u.repos.User.FindAllExcept(excludeID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	rsp := make([]respond.PublicUserRespond, 0, len(users))
	for _, user := range users {
		rsp = append(rsp, respond.PublicUserRespond{ID: user.ID, Name: user.Name, ProfilePic: user.ProfilePic})
	}

	if err := myredis.SetJSON(ctx, u.cache, key, rsp, u.cacheTTL); err != nil {
		zap.L().Warn("write user list cache", zap.Error(err))
	}
	return rsp, nil
}

// DeleteUser removes targetID's account together with every relationship and
// edit request that references it, atomically. Users may only delete themselves.
// Messages are kept.
func (u *userInfoService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if actorID != targetID {
		return u.audit.Forbidden(ctx, "user.delete", actorID, targetID, "you can only delete your own account")
	}

	// peers must be read before the relationships disappear
	peers, err := u.connectedPeers(targetID)
	if err != nil {
		return err
	}

	err = u.repos.Transaction(func(txRepos *repository.Repositories) error {
		if _, err := txRepos.User.FindByID(targetID); err != nil {
			return common.DBError(err, "user not found")
		}
		if err := txRepos.EditRequest.DeleteByUser(targetID); err != nil {
			return common.DBError(err, "")
		}
		if err := txRepos.Relationship.DeleteByUser(targetID); err != nil {
			return common.DBError(err, "")
		}
		return common.DBError(txRepos.User.DeleteByID(targetID), "user not found")
	})
	if err != nil {
		return err
	}

	if u.cache != nil {
		ctx := context.WithoutCancel(ctx)
		keys := []string{
			idKey(constants.REDIS_USER_TOKEN_PREFIX, targetID),
			idKey(constants.REDIS_CONNECTIONS_PREFIX, targetID),
		}
		for _, p := range peers {
			keys = append(keys, idKey(constants.REDIS_CONNECTIONS_PREFIX, p))
		}
		for _, key := range keys {
			if err := u.cache.Delete(ctx, key); err != nil {
				zap.L().Warn("delete cache key", zap.String("key", key), zap.Error(err))
			}
		}
	}
	u.invalidateUserLists()
	u.audit.Publish(ctx, mq.NewEvent(mq.EventUserDeleted, actorID, targetID, targetID))
	return nil
}

func (u *userInfoService) connectedPeers(userID uint) ([]uint, error) {
	rels, err := u.repos.Relationship.FindConnections(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	peers := make([]uint, 0, len(rels))
	for _, r := range rels {
		peers = append(peers, r.Other(userID))
	}
	return peers, nil
}

func (u *userInfoService) invalidateConnectionsOfPeers(ctx context.Context, userID uint) {
	if u.cache == nil {
		return
	}
	peers, err := u.connectedPeers(userID)
	if err != nil {
		zap.L().Warn("list peers for cache invalidation", zap.Error(err))
		return
	}
	for _, p := range peers {
		if err := u.cache.Delete(ctx, idKey(constants.REDIS_CONNECTIONS_PREFIX, p)); err != nil {
			zap.L().Warn("invalidate connections cache", zap.Error(err))
		}
	}
}

// invalidateUserLists drops every cached user list on the worker pool.
func (u *userInfoService) invalidateUserLists() {
	if u.cache == nil {
		return
	}
	u.cache.SubmitTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.cache.DeleteByPattern(ctx, constants.REDIS_USER_LIST_PATTERN); err != nil {
			zap.L().Error("clear user list cache failed", zap.Error(err))
		}
	})
}
