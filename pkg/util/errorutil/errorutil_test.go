package errorutil

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

	wrapped := fmt.Errorf("proxy: %w", NewBadGateway(errors.New("dial tcp")))
	de := ToDomainError(wrapped)
	assert.Equal(t, "BAD_GATEWAY", de.Code)
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)

	de = ToDomainError(fiber.NewError(fiber.StatusNotFound, "Cannot GET /nope"))
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "Cannot GET /nope", de.Message)

	de = ToDomainError(fiber.NewError(fiber.StatusMethodNotAllowed))
	assert.Equal(t, "METHOD_NOT_ALLOWED", de.Code)

	de = ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error: boom", de.Error())
}
