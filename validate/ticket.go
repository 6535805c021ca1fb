package validate

import (
	"gym_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.CreateTicketInput](c, "input")
	}
}

func EditTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.EditTicketInput](c, "input")
	}
}
