package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/behnamfe76/user-service/internal/auth"
	"github.com/behnamfe76/user-service/internal/domain"
	"github.com/behnamfe76/user-service/internal/events"
	"github.com/behnamfe76/user-service/internal/repository"
	apperrors "github.com/behnamfe76/user-service/pkg/util"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// UserInput carries the writable account fields.
type UserInput struct {
	Username string
	Email    string
	Password string
}

// UserService implements account registration and owner-only mutation.
type UserService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies encapsulates requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.PasswordHasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Register creates an account after checking username then email uniqueness.
func (s *UserService) Register(ctx context.Context, in UserInput) (*domain.User, error) {
	existing, err := s.users.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil && existing.Username == in.Username:
		return nil, apperrors.NewBadRequest("Username already exists")
	case err == nil:
		return nil, apperrors.NewBadRequest("Email already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewBadRequest("Username or email already exists")
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID, nil, events.UserRegisteredPayload{
		Username: user.Username,
		Email:    user.Email,
	}))
	return user, nil
}

// List returns a page of users. limit falls back to DefaultListLimit and is capped at MaxListLimit.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return user, nil
}

// Update replaces the actor's own username, email and password.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, in UserInput) (*domain.User, error) {
	if !actor.IsOwner(id) {
		return nil, apperrors.NewForbidden(auth.PermissionErrorMessage)
	}

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	updated := *current
	updated.Username = in.Username
	updated.Email = in.Email
	updated.PasswordHash = hash
	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Email or username already exists", nil)
		}
		return nil, notFoundOrInternal(err)
	}

	actorID := actor.ID
	s.publish(ctx, events.NewEvent(events.EventUserUpdated, updated.ID, &actorID, events.UserUpdatedPayload{
		OldUsername: current.Username,
		NewUsername: updated.Username,
		OldEmail:    current.Email,
		NewEmail:    updated.Email,
	}))
	return &updated, nil
}

// Delete removes the actor's own account.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !actor.IsOwner(id) {
		return apperrors.NewForbidden(auth.PermissionErrorMessage)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err)
	}

	actorID := actor.ID
	s.publish(ctx, events.NewEvent(events.EventUserDeleted, id, &actorID, events.UserDeletedPayload{Email: actor.Email}))
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("User", nil)
	}
	return apperrors.NewInternalError(err)
}
