// Package service defines the business interfaces consumed by the handler layer.
package service

import (
	"context"

	"github.com/SidS12345/Family-Connections/internal/dto/request"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
)

// UserService manages accounts.
type UserService interface {
	Register(ctx context.Context, req request.RegisterRequest) (*respond.AccountRespond, error)
	Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error)
	GetAccount(ctx context.Context, userID uint) (*respond.AccountRespond, error)
	// UpdateProfile applies the non-nil fields of req.
	UpdateProfile(ctx context.Context, userID uint, req request.UpdateProfileRequest) (*respond.AccountRespond, error)
	// ListUsers lists everyone but excludeID.
	ListUsers(ctx context.Context, excludeID uint) ([]respond.PublicUserRespond, error)
	// DeleteUser removes an account and every relationship touching it.
	DeleteUser(ctx context.Context, actorID, targetID uint) error
}

// AuthService validates and rotates refresh tokens.
type AuthService interface {
	ValidateTokenID(ctx context.Context, userID uint, tokenID string) (bool, error)
	RefreshToken(ctx context.Context, refreshToken string) (*respond.TokenRespond, error)
}

// RelationshipService is the relationship state machine.
type RelationshipService interface {
	Propose(ctx context.Context, fromID, toID uint, relationshipType string) (*respond.RelationshipRespond, error)
	// Respond approves (with a reverse label) or declines a pending relationship.
	Respond(ctx context.Context, relationshipID, responderID uint, decision, reverseType string) (*respond.RelationshipRespond, error)
	// EditDirect changes the requester's own label without the other party's consent.
	EditDirect(ctx context.Context, relationshipID, requesterID uint, newType string) (*respond.RelationshipRespond, error)
	ProposeEdit(ctx context.Context, requesterID, relationshipID, targetID uint, newType, field string) (*respond.EditRequestRespond, error)
	ResolveEdit(ctx context.Context, editRequestID, responderID uint, decision string) (*respond.EditRequestRespond, error)
	DeleteRelationship(ctx context.Context, relationshipID, requesterID uint) error
	IsConnected(ctx context.Context, a, b uint) (bool, error)
	ListIncoming(ctx context.Context, userID uint) ([]respond.PendingRequestRespond, error)
	ListOutgoing(ctx context.Context, userID uint) ([]respond.PendingRequestRespond, error)
	ListIncomingEdits(ctx context.Context, userID uint) ([]respond.EditRequestRespond, error)
	ListConnections(ctx context.Context, userID uint) ([]respond.ConnectionRespond, error)
	SuggestReverse(ctx context.Context, relationshipID, viewerID uint) (*respond.SuggestionRespond, error)
}

// ProfileService applies field-level privacy.
type ProfileService interface {
	GetProfile(ctx context.Context, targetID, viewerID uint) (*respond.ProfileRespond, error)
}

// TreeService builds relationship trees.
type TreeService interface {
	// BuildTree returns nil when the root user does not exist.
	BuildTree(ctx context.Context, rootID uint) (*respond.TreeNode, error)
}

// MessageService exchanges direct messages between connections.
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID uint, content string) (*respond.MessageRespond, error)
	ListConversations(ctx context.Context, userID uint) ([]respond.ConversationRespond, error)
	// GetThread marks the partner's messages read before returning the thread.
	GetThread(ctx context.Context, userID, otherID uint) ([]respond.MessageRespond, error)
	UnreadCount(ctx context.Context, userID uint) (*respond.UnreadCountRespond, error)
}
