package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Email        string
	Phone        string // normalized, see NormalizePhone
	PasswordHash string // base64(salt || pbkdf2 key)
	Role         Role
	Gender       *Gender
	BirthDate    *time.Time // always stored in UTC
	IsActive     bool
	DeletedAt    *time.Time // soft delete marker
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Authenticatable reports whether the record may ever authenticate. A user
// with a soft-delete marker or active=false must never log in, whatever the
// credentials.
func (u User) Authenticatable() bool {
	return u.IsActive && u.DeletedAt == nil
}

// NormalizePhone strips whitespace and hyphen formatting so the same number
// always maps to the same directory and cache key.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}
