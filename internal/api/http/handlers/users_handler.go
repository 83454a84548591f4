package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/user-service/internal/api/dto"
	"github.com/behnamfe76/user-service/internal/auth"
	"github.com/behnamfe76/user-service/internal/service"
	apperrors "github.com/behnamfe76/user-service/pkg/util"
)

// UsersHandler exposes the /users endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles POST /users/.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	in, err := parseUserRequest(c)
	if err != nil {
		return err
	}

	user, err := h.users.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserPublic(user))
}

// List handles GET /users/.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	query := dto.ListUsersQuery{Limit: service.DefaultListLimit}
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if err := dto.Validate(query); err != nil {
		return err
	}

	users, err := h.users.List(c.UserContext(), query.Limit, query.Offset)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserList(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserPublic(user))
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.CredentialsErrorMessage)
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	in, err := parseUserRequest(c)
	if err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), principal.User, id, in)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserPublic(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.CredentialsErrorMessage)
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.UserContext(), principal.User, id); err != nil {
		return err
	}
	return c.JSON(dto.Message{Message: "User deleted"})
}

func parseUserRequest(c *fiber.Ctx) (service.UserInput, error) {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return service.UserInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return service.UserInput{}, err
	}
	return service.UserInput{Username: req.Username, Email: req.Email, Password: req.Password}, nil
}

func userID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid user id", nil)
	}
	return int64(id), nil
}
