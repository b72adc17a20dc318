// Package model defines the persisted entities.
// This file defines the direct message exchanged between connected users.
package model

import "time"

// Message is a direct message.
// Maps to the message table. Messages are never deleted.
type Message struct {
	ID uint `gorm:"primaryKey"`

	// Uuid is a snowflake id, monotonically increasing per node.
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null"`

	SenderID    uint `gorm:"column:sender_id;index;not null"`
	RecipientID uint `gorm:"column:recipient_id;index;not null"`

	// Content is non-empty after trimming whitespace.
	Content string `gorm:"column:content;type:text;not null"`

	// CreatedAt is the send timestamp.
	CreatedAt time.Time `gorm:"column:created_at;index"`

	IsRead bool `gorm:"column:is_read;index;not null;default:false"`
}

func (Message) TableName() string {
	return "message"
}
