package model

import "time"

// Relationship is a directed labelled edge between two users.
// Maps to the relationship table.
//
// RelationshipType is the label from FromUserID's point of view ("father"),
// ReverseRelationshipType the label from ToUserID's point of view ("son"),
// supplied by the recipient on approval. IsBidirectional is true exactly when
// the edge is approved and both labels are set.
type Relationship struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	FromUserID uint `gorm:"column:from_user_id;index;not null"`
	ToUserID   uint `gorm:"column:to_user_id;index;not null"`

	RelationshipType        string  `gorm:"column:relationship_type;type:varchar(50);not null"`
	ReverseRelationshipType *string `gorm:"column:reverse_relationship_type;type:varchar(50)"`

	Status          Status `gorm:"column:status;type:varchar(20);index;not null;default:pending"`
	IsBidirectional bool   `gorm:"column:is_bidirectional;not null;default:false"`
}

func (Relationship) TableName() string {
	return "relationship"
}

// IsParty reports whether userID is either endpoint.
func (r *Relationship) IsParty(userID uint) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// Other returns the endpoint that is not userID.
func (r *Relationship) Other(userID uint) uint {
	if r.FromUserID == userID {
		return r.ToUserID
	}
	return r.FromUserID
}

// Label returns the current value of field.
func (r *Relationship) Label(field EditField) string {
	if field == FieldReverseRelationshipType {
		if r.ReverseRelationshipType == nil {
			return ""
		}
		return *r.ReverseRelationshipType
	}
	return r.RelationshipType
}

// SetLabel writes value into field.
func (r *Relationship) SetLabel(field EditField, value string) {
	if field == FieldReverseRelationshipType {
		r.ReverseRelationshipType = &value
		return
	}
	r.RelationshipType = value
}
