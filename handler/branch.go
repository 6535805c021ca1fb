package handler

import (
	"errors"

	"gym_manager/constants"
	"gym_manager/database"
	"gym_manager/helper"
	"gym_manager/model"
	"gym_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func CreateBranch(c *fiber.Ctx) error {
	claim, _, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	input, ok := c.Locals("input").(model.CreateBranchInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	newBranch := model.Branch{}
	copier.Copy(&newBranch, &input)
	newBranch.TenantId = *claim.TenantId
	newBranch.Active = true

	if err := database.DB.Create(&newBranch).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, newBranch)
}

func GetBranches(c *fiber.Ctx) error {
	claim, isAdmin, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	db := database.DB
	condition := db.Model(&model.Branch{})
	scope := helper.ScopeFromClaim(claim)
	if scope.Filtered() {
		condition = condition.Where("tenant_id = ?", *scope.TenantID)
	}

	var branches []model.Branch
	if err := condition.Order("created_at asc").Find(&branches).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, branches)
}

func EditBranch(c *fiber.Ctx) error {
	claim, _, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	branchId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}
	input, ok := c.Locals("input").(model.EditBranchInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	db := database.DB
	var branch model.Branch
	if err := db.Where("id = ? AND tenant_id = ?", branchId, *claim.TenantId).First(&branch).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	copier.CopyWithOption(&branch, &input, copier.Option{IgnoreEmpty: true})
	if input.Active != nil {
		branch.Active = *input.Active
	}

	if err := db.Save(&branch).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, branch)
}
