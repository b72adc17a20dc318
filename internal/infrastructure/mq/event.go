// Package mq publishes domain and security events to Kafka.
// Events are fire-and-forget notifications; no request ever waits on a consumer.
package mq

import (
	"context"
	"strconv"
	"time"
)

// EventType names what happened.
type EventType string

const (
	EventRelationshipProposed  EventType = "relationship.proposed"
	EventRelationshipResponded EventType = "relationship.responded"
	EventRelationshipEdited    EventType = "relationship.edited"
	EventRelationshipDeleted   EventType = "relationship.deleted"
	EventEditRequested         EventType = "relationship.edit_requested"
	EventEditResolved          EventType = "relationship.edit_resolved"
	EventMessageSent           EventType = "message.sent"
	EventUserRegistered        EventType = "user.registered"
	EventUserDeleted           EventType = "user.deleted"
	EventForbidden             EventType = "security.forbidden"
)

// Event is the JSON payload written to the topic.
type Event struct {
	Type       EventType         `json:"type"`
	ActorID    uint              `json:"actor_id"`
	SubjectID  uint              `json:"subject_id,omitempty"`
	EntityID   uint              `json:"entity_id,omitempty"`
	Detail     map[string]string `json:"detail,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(typ EventType, actorID, subjectID, entityID uint) Event {
	return Event{
		Type:       typ,
		ActorID:    actorID,
		SubjectID:  subjectID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

// With adds a detail entry and returns the event for chaining.
func (e Event) With(key, value string) Event {
	if e.Detail == nil {
		e.Detail = make(map[string]string)
	}
	e.Detail[key] = value
	return e
}

// key partitions events by actor so one user's events stay ordered.
func (e Event) key() []byte {
	return []byte(strconv.FormatUint(uint64(e.ActorID), 10))
}

// Publisher is implemented by every event sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when eventMode is "none".
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
