package validate

import (
	"gym_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.CreateCustomerInput](c, "input")
	}
}

func EditCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.EditCustomerInput](c, "input")
	}
}

func ChangePin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.ChangePinInput](c, "input")
	}
}
