package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/user-service/internal/domain"
)

func seed(t *testing.T, repo UserRepository, users ...domain.User) []*domain.User {
	t.Helper()
	out := make([]*domain.User, 0, len(users))
	for i := range users {
		u := users[i]
		require.NoError(t, repo.Create(context.Background(), &u))
		out = append(out, &u)
	}
	return out
}

func TestMemoryUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	created := seed(t, repo,
		domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h1"},
		domain.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h2"},
	)
	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, int64(2), created[1].ID)
	assert.False(t, created[0].CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "bob", byID.Username)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), byEmail.ID)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	seed(t, repo,
		domain.User{Username: "alice", Email: "alice@example.com"},
		domain.User{Username: "bob", Email: "bob@example.com"},
	)

	err := repo.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
	err = repo.Create(ctx, &domain.User{Username: "carol", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = repo.Update(ctx, &domain.User{ID: 2, Username: "alice", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = repo.Update(ctx, &domain.User{ID: 2, Username: "bobby", Email: "bob@example.com"})
	assert.NoError(t, err)

	found, err := repo.FindByUsernameOrEmail(ctx, "nobody", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bobby", found.Username)
}

func TestMemoryUserRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	users := seed(t, repo, domain.User{Username: "alice", Email: "alice@example.com"})

	err := repo.Update(ctx, &domain.User{ID: 42, Username: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, users[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, users[0].ID), ErrNotFound)

	_, err = repo.GetByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	seed(t, repo,
		domain.User{Username: "a", Email: "a@example.com"},
		domain.User{Username: "b", Email: "b@example.com"},
		domain.User{Username: "c", Email: "c@example.com"},
	)

	page, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a", page[0].Username)
	assert.Equal(t, "b", page[1].Username)

	page, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].Username)

	page, err = repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, page)
}
