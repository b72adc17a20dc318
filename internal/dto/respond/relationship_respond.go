package respond

// RelationshipRespond is a relationship row.
type RelationshipRespond struct {
	ID                      uint    `json:"id"`
	FromUserID              uint    `json:"from_user_id"`
	ToUserID                uint    `json:"to_user_id"`
	RelationshipType        string  `json:"relationship_type"`
	ReverseRelationshipType *string `json:"reverse_relationship_type"`
	Status                  string  `json:"status"`
	IsBidirectional         bool    `json:"is_bidirectional"`
}

// PendingRequestRespond is a pending relationship seen from one side.
// For incoming requests the counterpart is the proposer, for outgoing the recipient.
type PendingRequestRespond struct {
	RelationshipID   uint   `json:"relationship_id"`
	UserID           uint   `json:"user_id"`
	UserName         string `json:"user_name"`
	RelationshipType string `json:"relationship_type"`
	CreatedAt        string `json:"created_at"`
}

// ConnectionRespond is an approved relationship from the caller's point of view.
type ConnectionRespond struct {
	RelationshipID        uint              `json:"relationship_id"`
	User                  PublicUserRespond `json:"user"`
	MyRelationshipType    *string           `json:"my_relationship_type"`
	TheirRelationshipType *string           `json:"their_relationship_type"`
}

// EditRequestRespond is a relationship edit request.
type EditRequestRespond struct {
	ID                      uint   `json:"id"`
	RelationshipID          uint   `json:"relationship_id"`
	RequestingUserID        uint   `json:"requesting_user_id"`
	RequestingUserName      string `json:"requesting_user_name,omitempty"`
	TargetUserID            uint   `json:"target_user_id"`
	CurrentRelationshipType string `json:"current_relationship_type"`
	NewRelationshipType     string `json:"new_relationship_type"`
	FieldToChange           string `json:"field_to_change"`
	Status                  string `json:"status"`
}

// SuggestionRespond is an advisory reverse label. Suggestion is null when none applies.
type SuggestionRespond struct {
	RelationshipType string  `json:"relationship_type"`
	Suggestion       *string `json:"suggestion"`
}
