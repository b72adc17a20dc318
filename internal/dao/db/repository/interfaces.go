// Package repository defines the data access interfaces and their gorm implementations.
// Services only see the interfaces below and the Repositories aggregate.
package repository

import (
	"github.com/SidS12345/Family-Connections/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository interfaces ====================

// UserRepository manages user accounts.
type UserRepository interface {
	// FindByID returns CodeNotFound when the user does not exist.
	FindByID(id uint) (*model.UserInfo, error)
	FindByEmail(email string) (*model.UserInfo, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ids []uint) ([]model.UserInfo, error)
	// FindAllExcept lists every user but excludeID, ordered by id.
	FindAllExcept(excludeID uint) ([]model.UserInfo, error)
	Create(user *model.UserInfo) error
	Update(user *model.UserInfo) error
	DeleteByID(id uint) error
}

// RelationshipRepository manages relationship edges.
type RelationshipRepository interface {
	FindByID(id uint) (*model.Relationship, error)
	Create(rel *model.Relationship) error
	// ResolvePending writes rel's status, reverse label and bidirectional flag
	// only while the stored row is still pending. It reports whether the row changed.
	ResolvePending(rel *model.Relationship) (bool, error)
	// UpdateLabel overwrites one label column of relationship id.
	UpdateLabel(id uint, field model.EditField, value string) error
	DeleteByID(id uint) error
	// FindPendingTo lists pending relationships whose recipient is userID.
	FindPendingTo(userID uint) ([]model.Relationship, error)
	// FindPendingFrom lists pending relationships proposed by userID.
	FindPendingFrom(userID uint) ([]model.Relationship, error)
	// FindConnections lists approved bidirectional relationships touching userID.
	FindConnections(userID uint) ([]model.Relationship, error)
	// FindOutgoing lists every relationship proposed by userID regardless of status, ordered by id.
	FindOutgoing(userID uint) ([]model.Relationship, error)
	// ExistsConnection reports whether an approved bidirectional edge joins a and b in either direction.
	ExistsConnection(a, b uint) (bool, error)
	// DeleteByUser removes every relationship where userID is either endpoint.
	DeleteByUser(userID uint) error
}

// EditRequestRepository manages relationship edit requests.
type EditRequestRepository interface {
	FindByID(id uint) (*model.RelationshipEditRequest, error)
	Create(req *model.RelationshipEditRequest) error
	// ResolvePending sets status on edit request id if it is still pending and
	// reports whether it did. A false result means another answer won.
	ResolvePending(id uint, status model.Status) (bool, error)
	// FindPendingByTarget lists pending edit requests awaiting userID.
	FindPendingByTarget(userID uint) ([]model.RelationshipEditRequest, error)
	// DeleteByUser removes edit requests where userID is requester or target.
	DeleteByUser(userID uint) error
	// DeleteByRelationship removes edit requests that reference relationshipID.
	DeleteByRelationship(relationshipID uint) error
}

// MessageRepository manages direct messages.
type MessageRepository interface {
	Create(message *model.Message) error
	// FindThread lists messages between a and b in either direction, oldest first.
	FindThread(a, b uint) ([]model.Message, error)
	// FindByParticipant lists every message sent or received by userID, newest first.
	FindByParticipant(userID uint) ([]model.Message, error)
	// MarkRead flags unread messages from sender to recipient as read and returns the number updated.
	MarkRead(senderID, recipientID uint) (int64, error)
	// CountUnread counts unread messages addressed to userID.
	CountUnread(userID uint) (int64, error)
	// CountUnreadBySender groups unread messages addressed to userID by sender.
	CountUnreadBySender(userID uint) (map[uint]int64, error)
}

// ==================== Aggregate ====================

// Repositories aggregates every repository.
// Services receive it through their constructors.
type Repositories struct {
	db           *gorm.DB
	User         UserRepository
	Relationship RelationshipRepository
	EditRequest  EditRequestRepository
	Message      MessageRepository
}

// NewRepositories builds all repositories over db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Relationship: NewRelationshipRepository(db),
		EditRequest:  NewEditRequestRepository(db),
		Message:      NewMessageRepository(db),
	}
}

// Transaction runs fn against repositories bound to a single transaction.
// Any error returned by fn rolls the whole transaction back.
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
