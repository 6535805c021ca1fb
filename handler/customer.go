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

func CreateCustomer(c *fiber.Ctx) error {
	claim, _, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	input, ok := c.Locals("input").(model.CreateCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	db := database.DB
	var count int64
	db.Model(&model.Customer{}).Where("tenant_id = ? AND phone = ?", *claim.TenantId, input.Phone).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.PHONE_EXISTS, errors.New("phone exists"))
	}

	pinHash, err := helper.HashPin(input.Pin)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	newCustomer := model.Customer{}
	copier.Copy(&newCustomer, &input)
	newCustomer.TenantId = *claim.TenantId
	newCustomer.PinHash = pinHash
	newCustomer.IsActive = true

	if err := db.Create(&newCustomer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, newCustomer)
}

func GetCustomers(c *fiber.Ctx) error {
	claim, isAdmin, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterCustomer)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Customer{})
	scope := helper.ScopeFromClaim(claim)
	if scope.Filtered() {
		condition = condition.Where("tenant_id = ?", *scope.TenantID)
	}
	if filterInput.Phone != "" {
		condition = condition.Where("phone = ?", filterInput.Phone)
	}
	if filterInput.SearchKey != "" {
		condition = condition.Where("name ILIKE ? OR phone LIKE ?", "%"+filterInput.SearchKey+"%", "%"+filterInput.SearchKey+"%")
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", *filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)

	var customers []model.Customer
	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&customers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := &model.ResponseCustom{
		Rows:       customers,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func EditCustomer(c *fiber.Ctx) error {
	claim, _, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}
	input, ok := c.Locals("input").(model.EditCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	db := database.DB
	var customer model.Customer
	query := db.Where("id = ?", customerId)
	scope := helper.ScopeFromClaim(claim)
	if scope.Filtered() {
		query = query.Where("tenant_id = ?", *scope.TenantID)
	}
	if err := query.First(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	copier.CopyWithOption(&customer, &input, copier.Option{IgnoreEmpty: true})
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := db.Save(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

// DeleteCustomers xoá nhiều khách một lần; vé và log của họ giữ nguyên.
func DeleteCustomers(c *fiber.Ctx) error {
	claim, _, isOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	result := database.DB.Where("tenant_id = ?", *claim.TenantId).Delete(&model.Customer{}, input.IDs)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": result.RowsAffected})
}

// ChangePin đổi PIN 4 số của khách (chủ phòng hoặc nhân viên quầy thao tác).
func ChangePin(c *fiber.Ctx) error {
	claim, _, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}
	if claim.TenantId == nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("account has no tenant"))
	}

	input, ok := c.Locals("input").(model.ChangePinInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse locals fail"))
	}

	db := database.DB
	var customer model.Customer
	if err := db.Where("tenant_id = ? AND phone = ?", *claim.TenantId, input.Phone).First(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	pinHash, err := helper.HashPin(input.NewPin)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Model(&customer).Update("pin_hash", pinHash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"phone": customer.Phone})
}
