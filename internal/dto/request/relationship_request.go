package request

// ProposeRelationshipRequest starts a pending relationship from the caller to ToUserID.
type ProposeRelationshipRequest struct {
	ToUserID         uint   `json:"to_user_id" binding:"required"`
	RelationshipType string `json:"relationship_type"`
}

// RespondRelationshipRequest approves or declines an incoming relationship.
// ReverseRelationshipType is required when approving.
type RespondRelationshipRequest struct {
	Decision                string `json:"decision" binding:"required"`
	ReverseRelationshipType string `json:"reverse_relationship_type"`
}

// EditRelationshipRequest changes the caller's own label immediately.
type EditRelationshipRequest struct {
	NewRelationshipType string `json:"new_relationship_type"`
}

// ProposeEditRequest asks the other party to accept a label change.
type ProposeEditRequest struct {
	RelationshipID      uint   `json:"relationship_id" binding:"required"`
	TargetUserID        uint   `json:"target_user_id" binding:"required"`
	NewRelationshipType string `json:"new_relationship_type"`
	FieldToChange       string `json:"field_to_change" binding:"required"`
}

// ResolveEditRequest approves or declines a pending edit request.
type ResolveEditRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// SuggestReverseRequest asks for a reverse label for an incoming relationship.
type SuggestReverseRequest struct {
	RelationshipID uint `form:"relationship_id" binding:"required"`
}
