package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/behnamfe76/user-service/pkg/util"
)

// PermissionErrorMessage is returned when a caller touches a record it does not own.
const PermissionErrorMessage = "Not enough permissions"

// RequireAuthenticated ensures a principal was loaded by AuthMiddleware.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return unauthorized()
		}
		return c.Next()
	}
}

// RequireOwner ensures the route parameter names the authenticated user's own record.
func RequireOwner(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return unauthorized()
		}
		id, err := c.ParamsInt(param)
		if err != nil {
			return apperrors.NewValidationError("invalid "+param, nil)
		}
		if !principal.User.IsOwner(int64(id)) {
			return apperrors.NewForbidden(PermissionErrorMessage)
		}
		return c.Next()
	}
}
