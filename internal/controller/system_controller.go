package controller

import (
	"ai-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Protected(ctx *fiber.Ctx) error
}

type systemController struct {
	authMiddleware fiber.Handler
}

func NewSystemController(authMiddleware fiber.Handler) ISystemController {
	return &systemController{authMiddleware: authMiddleware}
}

// RegisterRoutes expects the app root, not the /api group.
func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/api/protected", c.authMiddleware, c.Protected)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *systemController) Protected(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"message": "Access granted",
		"userId":  userId,
	})
}
