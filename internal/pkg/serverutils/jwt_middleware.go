// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"strings"

	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIdKey = "user_id"

// NewJwtMiddleware rejects the request before any handler runs unless it carries
// "Authorization: Bearer <token>" with a token the service accepts.
func NewJwtMiddleware(tokens token.IService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("No token, authorization denied"))
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid token format"))
		}

		userId, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Token is not valid"))
		}

		ctx.Locals(userIdKey, userId)
		return ctx.Next()
	}
}

// UserIdFromCtx reads the id stored by the JWT middleware.
func UserIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(userIdKey).(uuid.UUID)
	if !ok || userId == uuid.Nil {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	return userId, nil
}
