package validate

import (
	"gym_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CheckIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.CheckInInput](c, "input")
	}
}

func PublicCheckIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.PublicCheckInInput](c, "input")
	}
}
