package auth

import (
	"context"
	"errors"

	"github.com/behnamfe76/user-service/internal/domain"
	"github.com/behnamfe76/user-service/internal/repository"
)

// UserLookup resolves a token subject into a stored user.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticator composes token validation with the user lookup.
type Authenticator struct {
	tokens *TokenManager
	users  UserLookup
}

// NewAuthenticator constructs an Authenticator.
func NewAuthenticator(tokens *TokenManager, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Tokens exposes the token manager used for issuance at login.
func (a *Authenticator) Tokens() *TokenManager {
	return a.tokens
}

// ResolveCurrentUser validates the token and loads the user named by its subject.
// A missing user is reported as ErrInvalidCredentials, same as a forged token.
func (a *Authenticator) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	email, _ := Subject(claims)

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
