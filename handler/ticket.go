package handler

import (
	"encoding/base64"
	"errors"
	"strings"

	"gym_manager/constants"
	"gym_manager/database"
	"gym_manager/helper"
	"gym_manager/model"
	"gym_manager/service"
	"gym_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

func CreateTicket(c *fiber.Ctx) error {
	claim, _, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	input, ok := c.Locals("input").(model.CreateTicketInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	db := database.DB
	var branch model.Branch
	if err := db.Where("id = ? AND tenant_id = ?", input.BranchId, *claim.TenantId).First(&branch).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Chi nhánh không tồn tại", err)
	}

	var tenant model.Tenant
	db.First(&tenant, *claim.TenantId)

	newTicket := model.Ticket{}
	copier.Copy(&newTicket, &input)
	newTicket.Code = "TKT-" + strings.ToUpper(uuid.New().String()[:8])
	newTicket.TenantId = *claim.TenantId
	newTicket.RemainingUses = input.TotalUses
	newTicket.Status = constants.TICKET_ACTIVE

	if err := db.Create(&newTicket).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	token, err := helper.EncodeToken(constants.TOKEN_STATIC_CARD, helper.TokenFields{
		TicketCode: newTicket.Code,
		Name:       newTicket.OwnerName,
		TenantName: tenant.Name,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Gửi vé + QR qua email (async)
	if input.Email != "" {
		qrBytes, qrErr := utils.GenerateQRCode(token, 256)
		if qrErr == nil {
			utils.SendTicketIssuedEmail(input.Email, utils.TicketIssuedData{
				TicketCode: newTicket.Code,
				OwnerName:  newTicket.OwnerName,
				TenantName: tenant.Name,
				Type:       newTicket.Type,
				TotalUses:  newTicket.TotalUses,
				ExpiresAt:  newTicket.ExpiresAt.Format("02/01/2006"),
			}, qrBytes)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticket":    newTicket,
		"token":     token,
		"emailSent": input.Email != "",
	})
}

func GetTickets(c *fiber.Ctx) error {
	claim, isAdmin, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterTicketInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Ticket{})
	scope := helper.ScopeFromClaim(claim)
	if scope.Filtered() {
		condition = condition.Where("tenant_id = ?", *scope.TenantID)
	}
	if filterInput.BranchId > 0 {
		condition = condition.Where("branch_id = ?", filterInput.BranchId)
	}
	if filterInput.OwnerPhone != "" {
		condition = condition.Where("owner_phone = ?", filterInput.OwnerPhone)
	}
	if filterInput.Type != "" {
		condition = condition.Where("type = ?", filterInput.Type)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var tickets []model.Ticket
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       tickets,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetTicketsByPhone(c *fiber.Ctx) error {
	claim, isAdmin, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	phone := c.Params("phone")
	tickets, err := entStore.TicketsByPhone(helper.ScopeFromClaim(claim), phone)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

// IssueTicketToken sinh payload QR cho một vé theo kind yêu cầu.
func IssueTicketToken(c *fiber.Ctx) error {
	claim, _, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	code := c.Params("code")
	kind := c.Query("kind", constants.TOKEN_STATIC_CARD)

	ticket, err := entStore.FindTicketByCode(code)
	if errors.Is(err, service.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_TICKET_NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	scope := helper.ScopeFromClaim(claim)
	if !scope.Owns(ticket.TenantId) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FOREIGN_TENANT, errors.New("cross tenant"))
	}

	var tenant model.Tenant
	database.DB.First(&tenant, ticket.TenantId)

	token, err := helper.EncodeToken(kind, helper.TokenFields{
		TicketCode: ticket.Code,
		Phone:      ticket.OwnerPhone,
		Name:       ticket.OwnerName,
		TenantName: tenant.Name,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	qrBytes, err := utils.GenerateQRCode(token, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticketCode": ticket.Code,
		"kind":       kind,
		"token":      token,
		"qrImage":    "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes),
	})
}

// EditTicket ghi đè trực tiếp các field từ dashboard chủ phòng.
func EditTicket(c *fiber.Ctx) error {
	claim, _, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	input, ok := c.Locals("input").(model.EditTicketInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	fields := map[string]any{}
	if input.OwnerName != nil {
		fields["owner_name"] = *input.OwnerName
	}
	if input.RemainingUses != nil {
		fields["remaining_uses"] = *input.RemainingUses
	}
	if input.ExpiresAt != nil {
		fields["expires_at"] = *input.ExpiresAt
	}
	if input.RequirePin != nil {
		fields["require_pin"] = *input.RequirePin
	}
	if len(fields) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("empty update"))
	}

	ticket, err := entStore.SetTicketFields(helper.ScopeFromClaim(claim), c.Params("code"), fields)
	if errors.Is(err, service.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_TICKET_NOT_FOUND, err)
	}
	if errors.Is(err, service.ErrCrossTenant) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FOREIGN_TENANT, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

// LockTicket bật/tắt khoá vé: vé LOCKED từ chối mọi lượt check-in.
func LockTicket(c *fiber.Ctx) error {
	claim, _, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	status := constants.TICKET_ACTIVE
	if c.Params("locked") == "true" {
		status = constants.TICKET_LOCKED
	}

	ticket, err := entStore.SetTicketFields(helper.ScopeFromClaim(claim), c.Params("code"), map[string]any{"status": status})
	if errors.Is(err, service.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_TICKET_NOT_FOUND, err)
	}
	if errors.Is(err, service.ErrCrossTenant) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FOREIGN_TENANT, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

// DeleteTicket xoá cứng; CheckInLog của vé vẫn giữ nguyên.
func DeleteTicket(c *fiber.Ctx) error {
	claim, isAdmin, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	ticket, err := entStore.FindTicketByCode(c.Params("code"))
	if errors.Is(err, service.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MSG_TICKET_NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !helper.ScopeFromClaim(claim).Owns(ticket.TenantId) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FOREIGN_TENANT, errors.New("cross tenant"))
	}

	if err := database.DB.Delete(&model.Ticket{}, ticket.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": ticket.Code})
}
