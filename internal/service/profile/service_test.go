package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SidS12345/Family-Connections/internal/dao/db/dbtest"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

// stubConnector connects exactly the listed pairs, in either order.
type stubConnector map[[2]uint]bool

func (s stubConnector) IsConnected(_ context.Context, a, b uint) (bool, error) {
	return s[[2]uint{a, b}] || s[[2]uint{b, a}], nil
}

func strPtr(s string) *string { return &s }

func TestGetProfileVisibility(t *testing.T) {
	repos := dbtest.New(t)
	owner := dbtest.CreateUser(t, repos, "Owner", "owner@example.com")
	friend := dbtest.CreateUser(t, repos, "Friend", "friend@example.com")
	stranger := dbtest.CreateUser(t, repos, "Stranger", "stranger@example.com")

	owner.Phone = strPtr("555-0100")
	owner.Job = strPtr("Carpenter")
	owner.Bio = strPtr("Likes trees")
	owner.Location = strPtr("Leeds")
	owner.PhonePrivate = true
	owner.LocationPrivate = true
	require.NoError(t, repos.User.Update(owner))

	svc := NewProfileService(repos, stubConnector{{owner.ID, friend.ID}: true})
	ctx := context.Background()

	t.Run("stranger", func(t *testing.T) {
		p, err := svc.GetProfile(ctx, owner.ID, stranger.ID)
		require.NoError(t, err)
		assert.False(t, p.IsOwn)
		assert.False(t, p.IsConnected)
		assert.Nil(t, p.Email)
		assert.Nil(t, p.Phone)
		assert.Nil(t, p.Location)
		assert.Equal(t, "Carpenter", *p.Job)
		assert.Equal(t, "Likes trees", *p.Bio)
		assert.True(t, p.PhonePrivate)
		assert.True(t, p.LocationPrivate)
	})

	t.Run("connection", func(t *testing.T) {
		p, err := svc.GetProfile(ctx, owner.ID, friend.ID)
		require.NoError(t, err)
		assert.True(t, p.IsConnected)
		assert.Equal(t, "owner@example.com", *p.Email)
		assert.Equal(t, "555-0100", *p.Phone)
		assert.Equal(t, "Leeds", *p.Location)
	})

	t.Run("owner", func(t *testing.T) {
		p, err := svc.GetProfile(ctx, owner.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, p.IsOwn)
		assert.False(t, p.IsConnected)
		assert.Equal(t, "owner@example.com", *p.Email)
		assert.Equal(t, "555-0100", *p.Phone)
	})
}

func TestGetProfileErrors(t *testing.T) {
	repos := dbtest.New(t)
	u := dbtest.CreateUser(t, repos, "U", "u@example.com")
	svc := NewProfileService(repos, stubConnector{})
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, 999, u.ID)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	_, err = svc.GetProfile(ctx, u.ID, 0)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}
