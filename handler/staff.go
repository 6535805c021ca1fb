package handler

import (
	"errors"

	"gym_manager/constants"
	"gym_manager/database"
	"gym_manager/helper"
	"gym_manager/model"
	"gym_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateStaff: chủ phòng tạo tài khoản nhân viên gắn với một chi nhánh.
func CreateStaff(c *fiber.Ctx) error {
	claim, _, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	input, ok := c.Locals("input").(model.CreateStaffInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	db := database.DB
	var branch model.Branch
	if err := db.Where("id = ? AND tenant_id = ?", input.BranchId, *claim.TenantId).First(&branch).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Chi nhánh không tồn tại", err)
	}

	var count int64
	db.Model(&model.Account{}).Where("username = ?", input.Username).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_USERNAME, errors.New("username exists"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	account := model.Account{
		Username: input.Username,
		Password: hash,
		Role:     constants.ROLE_STAFF,
		Active:   true,
		TenantId: claim.TenantId,
		BranchId: &input.BranchId,
	}
	if err := db.Create(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

func GetStaffs(c *fiber.Ctx) error {
	claim, isAdmin, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterAccount)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Account{}).Preload("Branch").Where("role = ?", constants.ROLE_STAFF)
	scope := helper.ScopeFromClaim(claim)
	if scope.Filtered() {
		condition = condition.Where("tenant_id = ?", *scope.TenantID)
	}
	if filterInput.SearchKey != "" {
		condition = condition.Where("username ILIKE ?", "%"+filterInput.SearchKey+"%")
	}
	if filterInput.Active != nil {
		condition = condition.Where("active = ?", *filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var staffs []model.Account
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&staffs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       staffs,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// UpdateStaff đổi chi nhánh hoặc bật/tắt tài khoản nhân viên.
func UpdateStaff(c *fiber.Ctx) error {
	claim, _, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	staffId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}
	input, ok := c.Locals("input").(model.UpdateStaffInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	db := database.DB
	var account model.Account
	if err := db.Where("id = ? AND role = ? AND tenant_id = ?", staffId, constants.ROLE_STAFF, *claim.TenantId).First(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if input.BranchId != nil {
		var branch model.Branch
		if err := db.Where("id = ? AND tenant_id = ?", *input.BranchId, *claim.TenantId).First(&branch).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Chi nhánh không tồn tại", err)
		}
		account.BranchId = input.BranchId
	}
	if input.Active != nil {
		account.Active = *input.Active
	}

	if err := db.Save(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}
