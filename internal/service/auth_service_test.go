package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/user-service/internal/auth"
	"github.com/behnamfe76/user-service/internal/domain"
)

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.users.Register(ctx, UserInput{Username: "u", Email: "u@test.com", Password: "secret1"})
	require.NoError(t, err)

	user, token, err := f.auth.Login(ctx, "u@test.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u@test.com", user.Email)
	assert.Equal(t, "u@test.com", token.Subject)

	claims, err := f.tokens.Validate(token.Value)
	require.NoError(t, err)
	sub, _ := auth.Subject(claims)
	assert.Equal(t, "u@test.com", sub)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.users.Register(ctx, UserInput{Username: "u", Email: "u@test.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, wrongPassword := f.auth.Login(ctx, "u@test.com", "wrong")
	_, _, unknownEmail := f.auth.Login(ctx, "nobody@test.com", "secret1")

	requireStatus(t, wrongPassword, http.StatusUnauthorized, LoginErrorMessage)
	requireStatus(t, unknownEmail, http.StatusUnauthorized, LoginErrorMessage)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_LoginRehashesOutdatedHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	legacy := auth.NewPasswordHasher(auth.Argon2Config{MemoryKiB: 2048, Iterations: 2, Parallelism: 1})
	oldHash, err := legacy.Hash("secret1")
	require.NoError(t, err)
	require.NoError(t, f.repo.Create(ctx, &domain.User{Username: "u", Email: "u@test.com", PasswordHash: oldHash}))

	_, _, err = f.auth.Login(ctx, "u@test.com", "secret1")
	require.NoError(t, err)

	stored, err := f.repo.GetByEmail(ctx, "u@test.com")
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, stored.PasswordHash)
	assert.False(t, f.hasher.NeedsRehash(stored.PasswordHash))
	assert.True(t, f.hasher.Verify("secret1", stored.PasswordHash))
}
