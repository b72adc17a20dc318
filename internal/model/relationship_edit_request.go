package model

import "time"

// RelationshipEditRequest proposes a new value for one label of an
// existing relationship. It is immutable once resolved.
// Maps to the relationship_edit_request table.
type RelationshipEditRequest struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	RelationshipID   uint `gorm:"column:relationship_id;index;not null"`
	RequestingUserID uint `gorm:"column:requesting_user_id;index;not null"`
	TargetUserID     uint `gorm:"column:target_user_id;index;not null"`

	CurrentRelationshipType string    `gorm:"column:current_relationship_type;type:varchar(50)"`
	NewRelationshipType     string    `gorm:"column:new_relationship_type;type:varchar(50);not null"`
	FieldToChange           EditField `gorm:"column:field_to_change;type:varchar(30);not null"`

	Status Status `gorm:"column:status;type:varchar(20);index;not null;default:pending"`
}

func (RelationshipEditRequest) TableName() string {
	return "relationship_edit_request"
}
