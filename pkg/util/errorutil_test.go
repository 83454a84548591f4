package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	forbidden := NewForbidden("nope")
	wrapped := fmt.Errorf("handler: %w", forbidden)
	assert.Same(t, forbidden, ToDomainError(wrapped))

	de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /x"))
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "Cannot GET /x", de.Message)

	cause := errors.New("db down")
	de = ToDomainError(cause)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}

func TestDomainError_WithHeader(t *testing.T) {
	de := NewDomainError("UNAUTHORIZED", "no", http.StatusUnauthorized, nil).WithHeader("WWW-Authenticate", "Bearer")
	assert.Equal(t, map[string]string{"WWW-Authenticate": "Bearer"}, de.Headers)
}

func TestNewNotFound(t *testing.T) {
	de := ToDomainError(NewNotFound("User", nil))
	assert.Equal(t, "User not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}
