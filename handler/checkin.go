package handler

import (
	"errors"

	"gym_manager/constants"
	"gym_manager/database"
	"gym_manager/helper"
	"gym_manager/model"
	"gym_manager/service"
	"gym_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CheckIn xử lý quét ở console nhân viên (QR_RIENG hoặc MANUAL).
func CheckIn(c *fiber.Ctx) error {
	claim, _, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	input, ok := c.Locals("input").(model.CheckInInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	outcome := checkinService.Authorize(helper.ScopeFromClaim(claim), service.AuthorizeInput{
		Identifier:  input.Identifier,
		Method:      input.Method,
		BranchId:    input.BranchId,
		PerformedBy: claim.Username,
		Pin:         input.Pin,
	})

	// rule fail vẫn là 200: client phân biệt qua success/message/requirePin
	return c.Status(fiber.StatusOK).JSON(outcome)
}

// PublicCheckIn là luồng kiosk: khách tự quét QR chung đặt tại quầy.
// Method luôn là QR_CHUNG — danh tính không được chứng minh nên vé nào
// bật require_pin đều phải nhập PIN.
func PublicCheckIn(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.PublicCheckInInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	var tenant model.Tenant
	if err := database.DB.Where("slug = ? AND active = true", input.TenantSlug).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	outcome := checkinService.Authorize(helper.ScopeForTenant(tenant.ID), service.AuthorizeInput{
		Identifier: input.Identifier,
		Method:     constants.METHOD_QR_CHUNG,
		BranchId:   input.BranchId,
		Pin:        input.Pin,
	})

	return c.Status(fiber.StatusOK).JSON(outcome)
}

// GetCheckInLogs trả lịch sử check-in, mới nhất trước.
func GetCheckInLogs(c *fiber.Ctx) error {
	claim, isAdmin, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterCheckInLog)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	logs, total, err := auditRecorder.List(helper.ScopeFromClaim(claim), *filterInput)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       logs,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
