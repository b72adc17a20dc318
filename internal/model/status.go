package model

import "strings"

// Status is the lifecycle state shared by relationships and edit requests.
// Only the three constants below are valid; declined is terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// ParseDecision accepts only the two terminal outcomes a responder may choose.
func ParseDecision(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusApproved:
		return StatusApproved, true
	case StatusDeclined:
		return StatusDeclined, true
	}
	return "", false
}

// EditField names which label of a relationship an edit request changes.
type EditField string

const (
	FieldRelationshipType        EditField = "relationship_type"
	FieldReverseRelationshipType EditField = "reverse_relationship_type"
)

// ParseEditField rejects anything other than the two label columns.
func ParseEditField(s string) (EditField, bool) {
	switch EditField(strings.TrimSpace(s)) {
	case FieldRelationshipType:
		return FieldRelationshipType, true
	case FieldReverseRelationshipType:
		return FieldReverseRelationshipType, true
	}
	return "", false
}

// Gender is optional profile data.
type Gender string

const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// ParseGender maps free text onto a Gender, unknown for anything unrecognised.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	}
	return GenderUnknown
}
