package message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SidS12345/Family-Connections/internal/dao/db/dbtest"
	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/internal/service/common"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

func connect(t *testing.T, repos *repository.Repositories, a, b uint) *model.Relationship {
	t.Helper()
	reverse := "cousin"
	rel := &model.Relationship{
		FromUserID: a, ToUserID: b, RelationshipType: "cousin",
		ReverseRelationshipType: &reverse, Status: model.StatusApproved, IsBidirectional: true,
	}
	require.NoError(t, repos.Relationship.Create(rel))
	return rel
}

func TestSendRequiresConnection(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")
	connect(t, repos, a.ID, b.ID)
	svc := NewMessageService(repos, common.NewAuditor(nil))
	ctx := context.Background()

	_, err := svc.Send(ctx, a.ID, c.ID, "hello")
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	_, err = svc.Send(ctx, a.ID, b.ID, "   ")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	msg, err := svc.Send(ctx, a.ID, b.ID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.True(t, msg.IsMine)
	assert.False(t, msg.IsRead)
	assert.NotEmpty(t, msg.Uuid)

	for _, view := range [][2]uint{{a.ID, b.ID}, {b.ID, a.ID}} {
		thread, err := svc.GetThread(ctx, view[0], view[1])
		require.NoError(t, err)
		require.Len(t, thread, 1)
		assert.Equal(t, msg.ID, thread[0].ID)
		assert.Equal(t, view[0] == a.ID, thread[0].IsMine)
	}
}

func TestThreadMarksRead(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")
	connect(t, repos, a.ID, b.ID)
	connect(t, repos, c.ID, b.ID)
	svc := NewMessageService(repos, common.NewAuditor(nil))
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Send(ctx, a.ID, b.ID, text)
		require.NoError(t, err)
	}
	_, err := svc.Send(ctx, c.ID, b.ID, "from c")
	require.NoError(t, err)
	_, err = svc.Send(ctx, b.ID, a.ID, "reply")
	require.NoError(t, err)

	unread, err := svc.UnreadCount(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), unread.Unread)

	thread, err := svc.GetThread(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, thread, 4)
	assert.Equal(t, []string{"one", "two", "three", "reply"},
		[]string{thread[0].Content, thread[1].Content, thread[2].Content, thread[3].Content})
	assert.True(t, thread[3].IsMine)
	assert.True(t, thread[0].IsRead)

	unread, err = svc.UnreadCount(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.Unread)

	_, err = svc.GetThread(ctx, b.ID, a.ID)
	require.NoError(t, err)
	unread, err = svc.UnreadCount(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.Unread)

	// the reply from b is still unread on a's side
	unread, err = svc.UnreadCount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.Unread)
}

func TestListConversations(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")
	connect(t, repos, a.ID, b.ID)
	connect(t, repos, a.ID, c.ID)
	svc := NewMessageService(repos, common.NewAuditor(nil))
	ctx := context.Background()

	_, err := svc.Send(ctx, b.ID, a.ID, "b1")
	require.NoError(t, err)
	_, err = svc.Send(ctx, b.ID, a.ID, "b2")
	require.NoError(t, err)
	_, err = svc.Send(ctx, a.ID, c.ID, "to c")
	require.NoError(t, err)

	convs, err := svc.ListConversations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	assert.Equal(t, c.ID, convs[0].Partner.ID)
	assert.Equal(t, "to c", convs[0].LatestMessage.Content)
	assert.Equal(t, int64(0), convs[0].UnreadCount)

	assert.Equal(t, b.ID, convs[1].Partner.ID)
	assert.Equal(t, "B", convs[1].Partner.Name)
	assert.Equal(t, "b2", convs[1].LatestMessage.Content)
	assert.Equal(t, int64(2), convs[1].UnreadCount)
}

func TestSendChecksConnectionInsideTransaction(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	rel := connect(t, repos, a.ID, b.ID)
	svc := NewMessageService(repos, common.NewAuditor(nil))
	ctx := context.Background()

	_, err := svc.Send(ctx, b.ID, a.ID, "before")
	require.NoError(t, err)

	// pending or declined edges do not count
	require.NoError(t, repos.Relationship.DeleteByID(rel.ID))
	require.NoError(t, repos.Relationship.Create(&model.Relationship{
		FromUserID: a.ID, ToUserID: b.ID, RelationshipType: "cousin", Status: model.StatusPending,
	}))
	_, err = svc.Send(ctx, b.ID, a.ID, "after")
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	_, err = svc.Send(ctx, a.ID, a.ID, "self")
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	thread, err := svc.GetThread(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "before", thread[0].Content)
}
