package domain

import "time"

// AuthResult is returned by every flow that ends in a signed token. The
// boundary layer serializes it; nothing here is persisted.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
}

// UserInfo is the sanitized view of a user, safe to return to callers. It
// never carries the password hash.
type UserInfo struct {
	ID        string
	Email     string
	Phone     string
	Role      Role
	Gender    *Gender
	BirthDate *time.Time
}

// Info strips a User down to its public view.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Gender:    u.Gender,
		BirthDate: u.BirthDate,
	}
}
