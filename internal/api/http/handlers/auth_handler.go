package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/user-service/internal/api/dto"
	"github.com/behnamfe76/user-service/internal/domain"
	"github.com/behnamfe76/user-service/internal/service"
	apperrors "github.com/behnamfe76/user-service/pkg/util"
)

// AuthHandler exposes the token endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Token handles POST /token. Accepts form or JSON bodies; username is the account email.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	_, token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{
		AccessToken: token.Value,
		TokenType:   domain.TokenType,
		ExpiresAt:   token.ExpiresAt,
	})
}
