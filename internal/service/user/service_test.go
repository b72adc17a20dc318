package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SidS12345/Family-Connections/internal/dao/db/dbtest"
	myredis "github.com/SidS12345/Family-Connections/internal/dao/redis"
	"github.com/SidS12345/Family-Connections/internal/dto/request"
	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/internal/service/common"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
	"github.com/SidS12345/Family-Connections/pkg/util/jwt"
)

func init() {
	jwt.Init("test-secret", 15, 24)
}

func newCache(t *testing.T) (*myredis.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return myredis.NewRedisCache(client, 1, 8), mr
}

func TestRegisterAndLogin(t *testing.T) {
	repos := dbtest.New(t)
	cache, mr := newCache(t)
	svc := NewUserService(repos, cache, time.Minute, common.NewAuditor(nil))
	ctx := context.Background()

	acc, err := svc.Register(ctx, request.RegisterRequest{Name: " Ada ", Email: "Ada@Example.com", Password: "hunter22", Gender: "female"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", acc.Name)
	assert.Equal(t, "ada@example.com", acc.Email)
	assert.Equal(t, "female", acc.Gender)

	_, err = svc.Register(ctx, request.RegisterRequest{Name: "Other", Email: "ada@example.com", Password: "hunter22"})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))

	_, err = svc.Login(ctx, request.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))
	_, err = svc.Login(ctx, request.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))

	login, err := svc.Login(ctx, request.LoginRequest{Email: "ADA@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, login.ID)

	access, err := jwt.ParseToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, access.UserID)

	refresh, err := jwt.ParseToken(login.RefreshToken)
	require.NoError(t, err)
	stored, err := mr.Get("family:user_token:1")
	require.NoError(t, err)
	assert.Equal(t, refresh.TokenID, stored)
	assert.Equal(t, jwt.RefreshTokenExpiry(), mr.TTL("family:user_token:1"))
	assert.Equal(t, 24*time.Hour, mr.TTL("family:user_token:1"))
}

func TestConcurrentRegisterSameEmail(t *testing.T) {
	repos := dbtest.New(t)
	svc := NewUserService(repos, nil, 0, common.NewAuditor(nil))
	ctx := context.Background()

	const workers = 4
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Register(ctx, request.RegisterRequest{Name: "Twin", Email: "twin@example.com", Password: "hunter22"})
			if err == nil {
				codes[i] = errorx.CodeSuccess
				return
			}
			codes[i] = errorx.GetCode(err)
		}(i)
	}
	wg.Wait()

	var created, exists int
	for _, code := range codes {
		switch code {
		case errorx.CodeSuccess:
			created++
		case errorx.CodeUserExist:
			exists++
		}
	}
	assert.Equal(t, 1, created, "codes: %v", codes)
	assert.Equal(t, workers-1, exists, "codes: %v", codes)
}

func TestUpdateProfile(t *testing.T) {
	repos := dbtest.New(t)
	svc := NewUserService(repos, nil, 0, common.NewAuditor(nil))
	ctx := context.Background()
	u := dbtest.CreateUser(t, repos, "U", "u@example.com")

	phone, job, yes := "555-0100", "Baker", true
	_, err := svc.UpdateProfile(ctx, u.ID, request.UpdateProfileRequest{Phone: &phone, Job: &job, PhonePrivate: &yes})
	require.NoError(t, err)

	stored, err := repos.User.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", *stored.Phone)
	assert.Equal(t, "Baker", *stored.Job)
	assert.True(t, stored.PhonePrivate)
	assert.False(t, stored.JobPrivate)
	assert.Equal(t, "U", stored.Name)
	assert.True(t, stored.CheckPassword("secret"))

	empty := ""
	_, err = svc.UpdateProfile(ctx, u.ID, request.UpdateProfileRequest{Job: &empty})
	require.NoError(t, err)
	stored, err = repos.User.FindByID(u.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Job)
	assert.Equal(t, "555-0100", *stored.Phone)

	_, err = svc.UpdateProfile(ctx, u.ID, request.UpdateProfileRequest{Name: &empty})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	_, err = svc.UpdateProfile(ctx, 999, request.UpdateProfileRequest{})
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestListUsersCached(t *testing.T) {
	repos := dbtest.New(t)
	cache, mr := newCache(t)
	svc := NewUserService(repos, cache, time.Minute, common.NewAuditor(nil))
	ctx := context.Background()
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	dbtest.CreateUser(t, repos, "B", "b@example.com")

	users, err := svc.ListUsers(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "B", users[0].Name)
	assert.True(t, mr.Exists("family:users:1"))

	// served from cache even though the table changed underneath
	dbtest.CreateUser(t, repos, "C", "c@example.com")
	users, err = svc.ListUsers(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.Register(ctx, request.RegisterRequest{Name: "D", Email: "d@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return !mr.Exists("family:users:1") }, time.Second, 10*time.Millisecond)

	users, err = svc.ListUsers(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestDeleteUserCascades(t *testing.T) {
	repos := dbtest.New(t)
	svc := NewUserService(repos, nil, 0, common.NewAuditor(nil))
	ctx := context.Background()
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")

	reverse := "son"
	ab := &model.Relationship{FromUserID: a.ID, ToUserID: b.ID, RelationshipType: "father",
		ReverseRelationshipType: &reverse, Status: model.StatusApproved, IsBidirectional: true}
	require.NoError(t, repos.Relationship.Create(ab))
	require.NoError(t, repos.Relationship.Create(&model.Relationship{FromUserID: c.ID, ToUserID: a.ID, RelationshipType: "niece", Status: model.StatusPending}))
	require.NoError(t, repos.Relationship.Create(&model.Relationship{FromUserID: b.ID, ToUserID: c.ID, RelationshipType: "cousin", Status: model.StatusPending}))
	require.NoError(t, repos.EditRequest.Create(&model.RelationshipEditRequest{
		RelationshipID: ab.ID, RequestingUserID: b.ID, TargetUserID: a.ID,
		CurrentRelationshipType: "son", NewRelationshipType: "stepson",
		FieldToChange: model.FieldReverseRelationshipType, Status: model.StatusPending,
	}))

	err := svc.DeleteUser(ctx, b.ID, a.ID)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	require.NoError(t, svc.DeleteUser(ctx, a.ID, a.ID))

	_, err = repos.User.FindByID(a.ID)
	assert.True(t, errorx.IsNotFound(err))
	for _, id := range []uint{b.ID, c.ID} {
		out, err := repos.Relationship.FindOutgoing(id)
		require.NoError(t, err)
		for _, r := range out {
			assert.NotEqual(t, a.ID, r.ToUserID)
		}
	}
	out, err := repos.Relationship.FindOutgoing(b.ID)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	edits, err := repos.EditRequest.FindPendingByTarget(a.ID)
	require.NoError(t, err)
	assert.Empty(t, edits)

	err = svc.DeleteUser(ctx, a.ID, a.ID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}
