package validate

import (
	"gym_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.CreateTenantInput](c, "input")
	}
}

func EditTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.EditTenantInput](c, "input")
	}
}

func CreateBranch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.CreateBranchInput](c, "input")
	}
}

func EditBranch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseBody[model.EditBranchInput](c, "input")
	}
}
