// Package message gates direct messages on connection status and keeps
// read state and conversation summaries.
package message

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/metrics"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/mq"
	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/internal/service/common"
	"github.com/SidS12345/Family-Connections/pkg/util/snowflake"
)

type messageService struct {
	repos *repository.Repositories
	audit *common.Auditor
}

func NewMessageService(repos *repository.Repositories, audit *common.Auditor) *messageService {
	return &messageService{repos: repos, audit: audit}
}

// Send stores a message from senderID to recipientID. The pair must be
// connected; the check and the insert share one transaction so a relationship
// deleted concurrently cannot let a message through.
func (m *messageService) Send(ctx context.Context, senderID, recipientID uint, content string) (*respond.MessageRespond, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.Invalid("content must not be empty")
	}
	if senderID == recipientID {
		return nil, m.audit.Forbidden(ctx, "message.send", senderID, recipientID, "you can only message your connections")
	}

	msg := &model.Message{
		Uuid:        snowflake.GenerateID(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	err := m.repos.Transaction(func(tx *repository.Repositories) error {
		ok, err := tx.Relationship.ExistsConnection(senderID, recipientID)
		if err != nil {
			return common.DBError(err, "")
		}
		if !ok {
			return m.audit.Forbidden(ctx, "message.send", senderID, recipientID, "you can only message your connections")
		}
		return common.DBError(tx.Message.Create(msg), "")
	})
	if err != nil {
		return nil, err
	}

	metrics.MessagesSent.Inc()
	m.audit.Publish(ctx, mq.NewEvent(mq.EventMessageSent, senderID, recipientID, msg.ID))
	return toMessageRespond(msg, senderID), nil
}

// ListConversations returns one entry per partner with the latest message,
// newest conversation first.
func (m *messageService) ListConversations(ctx context.Context, userID uint) ([]respond.ConversationRespond, error) {
	messages, err := m.repos.Message.FindByParticipant(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	unread, err := m.repos.Message.CountUnreadBySender(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}

	// messages arrive newest first, so the first hit per partner is the latest
	latest := make(map[uint]*model.Message)
	order := make([]uint, 0)
	for i := range messages {
		partner := messages[i].SenderID
		if partner == userID {
			partner = messages[i].RecipientID
		}
		if _, seen := latest[partner]; seen {
			continue
		}
		latest[partner] = &messages[i]
		order = append(order, partner)
	}

	users, err := m.repos.User.FindByIDs(order)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	byID := make(map[uint]model.UserInfo, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]respond.ConversationRespond, 0, len(order))
	for _, partner := range order {
		u, ok := byID[partner]
		if !ok {
			// partner account was deleted; messages are kept but not listed
			continue
		}
		out = append(out, respond.ConversationRespond{
			Partner:       respond.PublicUserRespond{ID: u.ID, Name: u.Name, ProfilePic: u.ProfilePic},
			LatestMessage: *toMessageRespond(latest[partner], userID),
			UnreadCount:   unread[partner],
		})
	}
	return out, nil
}

// GetThread marks otherID's messages to userID as read and returns the
// whole exchange oldest first, in one transaction.
func (m *messageService) GetThread(ctx context.Context, userID, otherID uint) ([]respond.MessageRespond, error) {
	var messages []model.Message
	err := m.repos.Transaction(func(tx *repository.Repositories) error {
		marked, err := tx.Message.MarkRead(otherID, userID)
		if err != nil {
			return common.DBError(err, "")
		}
		if marked > 0 {
			zap.L().Debug("messages marked read", zap.Uint("user_id", userID), zap.Uint("other_id", otherID), zap.Int64("count", marked))
		}
		messages, err = tx.Message.FindThread(userID, otherID)
		return common.DBError(err, "")
	})
	if err != nil {
		return nil, err
	}

	out := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		out = append(out, *toMessageRespond(&messages[i], userID))
	}
	return out, nil
}

// UnreadCount is the number of unread messages addressed to userID.
func (m *messageService) UnreadCount(ctx context.Context, userID uint) (*respond.UnreadCountRespond, error) {
	n, err := m.repos.Message.CountUnread(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	return &respond.UnreadCountRespond{Unread: n}, nil
}

func toMessageRespond(msg *model.Message, viewerID uint) *respond.MessageRespond {
	return &respond.MessageRespond{
		ID:          msg.ID,
		Uuid:        strconv.FormatInt(msg.Uuid, 10),
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Content:     msg.Content,
		Timestamp:   msg.CreatedAt.Format(time.RFC3339Nano),
		IsRead:      msg.IsRead,
		IsMine:      msg.SenderID == viewerID,
	}
}
