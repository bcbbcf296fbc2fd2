package domain

import "strings"

// Gender is validated against a closed set. Invalid inputs are accepted with
// a warning and stored as null rather than rejected outright.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender validates s against the closed set. A nil result with ok=false
// means the value was invalid and dropped; a nil result with ok=true means no
// value was supplied at all.
func ParseGender(s string) (g *Gender, ok bool) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return nil, true
	}
	switch Gender(trimmed) {
	case GenderMale, GenderFemale, GenderOther:
		v := Gender(trimmed)
		return &v, true
	default:
		return nil, false
	}
}

func (g Gender) String() string { return string(g) }
