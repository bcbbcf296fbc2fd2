package domain

import "strings"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole maps s onto the closed role set. Unknown or empty values fall
// back to patient; ok reports whether s named a real role.
func ParseRole(s string) (role Role, ok bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleDoctor:
		return RoleDoctor, true
	case RolePatient:
		return RolePatient, true
	default:
		return RolePatient, false
	}
}

func (r Role) String() string { return string(r) }
