package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/user-service/internal/domain"
	apperrors "github.com/behnamfe76/user-service/pkg/util"
)

const principalKey = "auth_principal"

// CredentialsErrorMessage is returned for every rejected bearer token.
const CredentialsErrorMessage = "Could not validate credentials"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	authenticator *Authenticator
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(authenticator *Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return unauthorized()
	}

	user, err := m.authenticator.ResolveCurrentUser(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return unauthorized()
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil && principal.User != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], domain.TokenType) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized() error {
	return apperrors.NewDomainError("UNAUTHORIZED", CredentialsErrorMessage, fiber.StatusUnauthorized, nil).
		WithHeader(fiber.HeaderWWWAuthenticate, domain.TokenType)
}
