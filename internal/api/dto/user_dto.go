package dto

import (
	"time"

	"github.com/behnamfe76/user-service/internal/domain"
)

// UserRequest payload for registration and updates.
type UserRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=150"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenRequest payload for POST /token. Username carries the email address.
type TokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ListUsersQuery pagination for GET /users/.
type ListUsersQuery struct {
	Limit  int `query:"limit" validate:"gte=0,lte=100"`
	Offset int `query:"offset" validate:"gte=0"`
}

// UserPublic is the externally visible user shape.
type UserPublic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserList wraps a page of users.
type UserList struct {
	Users []UserPublic `json:"users"`
}

// Message is a plain informational response.
type Message struct {
	Message string `json:"message"`
}

// TokenResponse standard response for the token endpoint.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewUserPublic maps a domain user to its public shape.
func NewUserPublic(u *domain.User) UserPublic {
	return UserPublic{ID: u.ID, Username: u.Username, Email: u.Email}
}

// NewUserList maps a page of domain users.
func NewUserList(users []domain.User) UserList {
	out := UserList{Users: make([]UserPublic, 0, len(users))}
	for i := range users {
		out.Users = append(out.Users, NewUserPublic(&users[i]))
	}
	return out
}
