package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SidS12345/Family-Connections/internal/dao/db/dbtest"
	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

func TestUserRepositoryNotFound(t *testing.T) {
	repos := dbtest.New(t)

	_, err := repos.User.FindByID(42)
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestUserPasswordIsHashed(t *testing.T) {
	repos := dbtest.New(t)
	user := dbtest.CreateUser(t, repos, "Ada", "ada@example.com")

	stored, err := repos.User.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.NotEqual(t, "secret", stored.Password)
	assert.True(t, stored.CheckPassword("secret"))
	assert.False(t, stored.CheckPassword("wrong"))
}

func TestExistsConnectionIsSymmetric(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")

	reverse := "son"
	require.NoError(t, repos.Relationship.Create(&model.Relationship{
		FromUserID: a.ID, ToUserID: b.ID, RelationshipType: "father",
		ReverseRelationshipType: &reverse, Status: model.StatusApproved, IsBidirectional: true,
	}))
	require.NoError(t, repos.Relationship.Create(&model.Relationship{
		FromUserID: a.ID, ToUserID: c.ID, RelationshipType: "aunt", Status: model.StatusPending,
	}))

	for _, pair := range [][2]uint{{a.ID, b.ID}, {b.ID, a.ID}} {
		ok, err := repos.Relationship.ExistsConnection(pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := repos.Relationship.ExistsConnection(a.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionRollsBack(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")

	boom := errors.New("boom")
	err := repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Relationship.DeleteByUser(a.ID); err != nil {
			return err
		}
		if err := tx.User.DeleteByID(a.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.User.FindByID(a.ID)
	assert.NoError(t, err)
}

func TestMessageUnreadCounts(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")

	now := time.Now()
	msgs := []model.Message{
		{Uuid: 1, SenderID: b.ID, RecipientID: a.ID, Content: "hi", CreatedAt: now},
		{Uuid: 2, SenderID: b.ID, RecipientID: a.ID, Content: "there", CreatedAt: now.Add(time.Second)},
		{Uuid: 3, SenderID: c.ID, RecipientID: a.ID, Content: "yo", CreatedAt: now.Add(2 * time.Second)},
		{Uuid: 4, SenderID: a.ID, RecipientID: b.ID, Content: "hey", CreatedAt: now.Add(3 * time.Second)},
	}
	for i := range msgs {
		require.NoError(t, repos.Message.Create(&msgs[i]))
	}

	total, err := repos.Message.CountUnread(a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	bySender, err := repos.Message.CountUnreadBySender(a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, bySender[b.ID])
	assert.EqualValues(t, 1, bySender[c.ID])

	updated, err := repos.Message.MarkRead(b.ID, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	total, err = repos.Message.CountUnread(a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	thread, err := repos.Message.FindThread(a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "hi", thread[0].Content)
	assert.Equal(t, "hey", thread[2].Content)
}

func TestRelationshipResolvePendingOnce(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")

	rel := &model.Relationship{FromUserID: a.ID, ToUserID: b.ID, RelationshipType: "father", Status: model.StatusPending}
	require.NoError(t, repos.Relationship.Create(rel))

	// two answers both loaded the row while it was pending
	declined := *rel
	declined.Status = model.StatusDeclined
	approved := *rel
	reverse := "son"
	approved.Status = model.StatusApproved
	approved.ReverseRelationshipType = &reverse
	approved.IsBidirectional = true

	changed, err := repos.Relationship.ResolvePending(&declined)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repos.Relationship.ResolvePending(&approved)
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := repos.Relationship.FindByID(rel.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeclined, stored.Status)
	assert.False(t, stored.IsBidirectional)
	assert.Nil(t, stored.ReverseRelationshipType)
}

func TestEditRequestResolvePendingOnce(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")

	rel := &model.Relationship{FromUserID: a.ID, ToUserID: b.ID, RelationshipType: "son", Status: model.StatusPending}
	require.NoError(t, repos.Relationship.Create(rel))
	req := &model.RelationshipEditRequest{
		RelationshipID: rel.ID, RequestingUserID: b.ID, TargetUserID: a.ID,
		CurrentRelationshipType: "son", NewRelationshipType: "stepson",
		FieldToChange: model.FieldRelationshipType, Status: model.StatusPending,
	}
	require.NoError(t, repos.EditRequest.Create(req))

	changed, err := repos.EditRequest.ResolvePending(req.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repos.EditRequest.ResolvePending(req.ID, model.StatusDeclined)
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := repos.EditRequest.FindByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, stored.Status)
}

func TestUpdateLabelWritesOneColumn(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")

	rel := &model.Relationship{FromUserID: a.ID, ToUserID: b.ID, RelationshipType: "father", Status: model.StatusPending}
	require.NoError(t, repos.Relationship.Create(rel))

	require.NoError(t, repos.Relationship.UpdateLabel(rel.ID, model.FieldReverseRelationshipType, "daughter"))

	stored, err := repos.Relationship.FindByID(rel.ID)
	require.NoError(t, err)
	assert.Equal(t, "father", stored.RelationshipType)
	require.NotNil(t, stored.ReverseRelationshipType)
	assert.Equal(t, "daughter", *stored.ReverseRelationshipType)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestDuplicateEmailIsUserExist(t *testing.T) {
	repos := dbtest.New(t)
	dbtest.CreateUser(t, repos, "A", "a@example.com")

	err := repos.User.Create(&model.UserInfo{Name: "A2", Email: "a@example.com", RawPassword: "secret"})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
}
