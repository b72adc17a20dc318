// Package handler adapts HTTP requests to service calls and writes the
// {code, msg, data} envelope.
package handler

import (
	"github.com/SidS12345/Family-Connections/internal/service"
)

// Handlers aggregates every handler for the router.
type Handlers struct {
	User         *UserHandler
	Auth         *AuthHandler
	Relationship *RelationshipHandler
	Profile      *ProfileHandler
	Message      *MessageHandler
}

// NewHandlers injects the services into their handlers.
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Auth:         NewAuthHandler(svc.Auth),
		Relationship: NewRelationshipHandler(svc.Relationship),
		Profile:      NewProfileHandler(svc.Profile, svc.Tree),
		Message:      NewMessageHandler(svc.Message),
	}
}
