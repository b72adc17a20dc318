package relationship

import (
	"strings"

	"github.com/SidS12345/Family-Connections/internal/model"
)

// reverseByGender maps a label to the reverse label for a male proposer,
// a female proposer, and a proposer of unknown gender.
var reverseByGender = map[string][3]string{
	"father":   {"son", "daughter", "child"},
	"mother":   {"son", "daughter", "child"},
	"son":      {"father", "mother", "parent"},
	"daughter": {"father", "mother", "parent"},
	"brother":  {"brother", "sister", "sibling"},
	"sister":   {"brother", "sister", "sibling"},
}

// SuggestReverseLabel guesses the label the recipient would use for the
// proposer. relType is what the proposer calls the recipient, so the
// suggestion depends on the proposer's gender. Labels outside the basic
// family terms yield no suggestion.
func SuggestReverseLabel(relType string, proposerGender model.Gender) (string, bool) {
	options, ok := reverseByGender[strings.ToLower(strings.TrimSpace(relType))]
	if !ok {
		return "", false
	}
	switch proposerGender {
	case model.GenderMale:
		return options[0], true
	case model.GenderFemale:
		return options[1], true
	default:
		return options[2], true
	}
}
