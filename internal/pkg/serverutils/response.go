package serverutils

import "github.com/gofiber/fiber/v2"

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}

func MessageResponse(message string) fiber.Map {
	return fiber.Map{"message": message}
}
