package validate

import (
	"gym_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.CreateStaffInput](c, "input")
	}
}

func UpdateStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.UpdateStaffInput](c, "input")
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.ForgotPasswordRequest](c, "input")
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.ResetPasswordRequest](c, "ResetPassword")
	}
}
