package domain

import "time"

// User is the domain model for registered accounts.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner reports whether the user owns the record with the given id.
func (u *User) IsOwner(id int64) bool {
	return u != nil && u.ID == id
}
