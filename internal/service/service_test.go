package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/user-service/internal/auth"
	"github.com/behnamfe76/user-service/internal/events"
	"github.com/behnamfe76/user-service/internal/repository"
	apperrors "github.com/behnamfe76/user-service/pkg/util"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	repo       repository.UserRepository
	hasher     *auth.PasswordHasher
	tokens     *auth.TokenManager
	dispatcher *recordingDispatcher
	users      *UserService
	auth       *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:       repository.NewMemoryUserRepository(),
		hasher:     auth.NewPasswordHasher(auth.Argon2Config{MemoryKiB: 1024, Iterations: 1, Parallelism: 1}),
		tokens:     auth.NewTokenManager("test-secret", 0, nil),
		dispatcher: &recordingDispatcher{},
	}
	f.users = NewUserService(UserDependencies{UserRepo: f.repo, Hasher: f.hasher, Dispatcher: f.dispatcher})
	f.auth = NewAuthService(AuthDependencies{UserRepo: f.repo, Hasher: f.hasher, Tokens: f.tokens})
	return f
}

func requireStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, status, de.HTTPStatus, de.Error())
	if message != "" {
		require.Equal(t, message, de.Message)
	}
}

