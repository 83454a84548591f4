package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/behnamfe76/user-service/internal/auth"
	"github.com/behnamfe76/user-service/internal/domain"
	"github.com/behnamfe76/user-service/internal/repository"
	apperrors "github.com/behnamfe76/user-service/pkg/util"
)

// LoginErrorMessage is returned for unknown emails and wrong passwords alike.
const LoginErrorMessage = "Incorrect username or password"

// AuthService coordinates the login flow.
type AuthService struct {
	users     repository.UserRepository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenManager
	logger    *zap.Logger
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Hasher   *auth.PasswordHasher
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthService{
		users:  deps.UserRepo,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		logger: logger,
	}
	// Unknown emails still pay for one Argon2 verification.
	if hash, err := deps.Hasher.Hash("not-a-real-password"); err == nil {
		s.dummyHash = hash
	}
	return s
}

// Login verifies email and password and issues an access token whose subject is the email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.AccessToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
		}
		s.hasher.Verify(password, s.dummyHash)
		return nil, domain.AccessToken{}, loginFailed()
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.AccessToken{}, loginFailed()
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, password)
	}

	token, exp, err := s.tokens.IssueFor(user.Email)
	if err != nil {
		return nil, domain.AccessToken{}, apperrors.NewInternalError(err)
	}
	return user, domain.AccessToken{Value: token, Subject: user.Email, ExpiresAt: exp}, nil
}

// rehash upgrades a stored hash to the current Argon2 parameters. Failures are logged only.
func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Warn("password rehash failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}
	updated := *user
	updated.PasswordHash = hash
	if err := s.users.Update(ctx, &updated); err != nil {
		s.logger.Warn("password rehash not stored", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}
	*user = updated
}

func loginFailed() error {
	return apperrors.NewDomainError("UNAUTHORIZED", LoginErrorMessage, http.StatusUnauthorized, nil).
		WithHeader("WWW-Authenticate", domain.TokenType)
}
