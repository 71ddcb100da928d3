package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: title is required", apperror.ErrValidation), 400},
		{apperror.ErrUnauthenticated, 401},
		{apperror.ErrInvalidCredentials, 401},
		{fmt.Errorf("note %w", apperror.ErrNotFound), 404},
		{apperror.ErrEmailTaken, 409},
		{fiber.NewError(fiber.StatusUnprocessableEntity, "bad body"), 422},
		{errors.New("connection refused"), 500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestErrorHandler_HidesInternalDetail(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger.NewNopLogger())})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("pq: password authentication failed for user \"notes\"")
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return fmt.Errorf("note %w", apperror.ErrNotFound)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Internal server error", payload["error"])

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "note not found", payload["error"])
}

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(sampleRequest{Email: "a@b.co", Password: "secret1"}))

	err := ValidateRequest(sampleRequest{Email: "nope", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "password must be at least 6 characters")

	err = ValidateRequest(sampleRequest{})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "email is required")
}
