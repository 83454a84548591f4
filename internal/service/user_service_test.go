package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/user-service/internal/events"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, UserInput{Username: "alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.True(t, f.hasher.Verify("secret", user.PasswordHash))
	assert.Equal(t, []events.EventType{events.EventUserRegistered}, f.dispatcher.types())

	_, err = f.users.Register(ctx, UserInput{Username: "alice", Email: "other@example.com", Password: "x"})
	requireStatus(t, err, http.StatusBadRequest, "Username already exists")

	_, err = f.users.Register(ctx, UserInput{Username: "bob", Email: "alice@example.com", Password: "x"})
	requireStatus(t, err, http.StatusBadRequest, "Email already exists")
}

func TestUserService_ListClampsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		_, err := f.users.Register(ctx, UserInput{Username: name, Email: name + "@example.com", Password: "pw"})
		require.NoError(t, err)
	}

	users, err := f.users.List(ctx, 0, -5)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	users, err = f.users.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b", users[0].Username)
}

func TestUserService_GetNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.Get(context.Background(), 666)
	requireStatus(t, err, http.StatusNotFound, "User not found")
}

func TestUserService_UpdateOwnRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, err := f.users.Register(ctx, UserInput{Username: "alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)

	updated, err := f.users.Update(ctx, alice, alice.ID, UserInput{Username: "alice_updated", Email: "alice@example.com", Password: "new_secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice_updated", updated.Username)
	assert.True(t, f.hasher.Verify("new_secret", updated.PasswordHash))
	assert.False(t, f.hasher.Verify("secret", updated.PasswordHash))
	assert.Equal(t, []events.EventType{events.EventUserRegistered, events.EventUserUpdated}, f.dispatcher.types())
}

func TestUserService_UpdateRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, err := f.users.Register(ctx, UserInput{Username: "alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	bob, err := f.users.Register(ctx, UserInput{Username: "bob", Email: "bob@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = f.users.Update(ctx, alice, bob.ID, UserInput{Username: "hijack", Email: "bob@example.com", Password: "x"})
	requireStatus(t, err, http.StatusForbidden, "Not enough permissions")

	_, err = f.users.Update(ctx, alice, alice.ID, UserInput{Username: "bob", Email: "alice@example.com", Password: "x"})
	requireStatus(t, err, http.StatusConflict, "Email or username already exists")
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, err := f.users.Register(ctx, UserInput{Username: "alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	bob, err := f.users.Register(ctx, UserInput{Username: "bob", Email: "bob@example.com", Password: "secret"})
	require.NoError(t, err)

	err = f.users.Delete(ctx, bob, alice.ID)
	requireStatus(t, err, http.StatusForbidden, "Not enough permissions")

	require.NoError(t, f.users.Delete(ctx, alice, alice.ID))
	_, err = f.users.Get(ctx, alice.ID)
	requireStatus(t, err, http.StatusNotFound, "")
}
