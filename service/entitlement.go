package service

import (
	"errors"

	"gym_manager/helper"
	"gym_manager/model"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrCrossTenant = errors.New("cross tenant access")
	ErrNoRemaining = errors.New("no remaining uses")
)

// EntitlementStore là lớp truy cập vé + khách hàng cho luồng check-in.
// Store được inject vào authorizer (không dùng global) để test được và để
// gom toàn bộ ràng buộc tenant về một chỗ.
type EntitlementStore interface {
	// FindTicketByCode tra vé không filter tenant — authorizer cần biết vé
	// thuộc tenant nào để chặn cross-tenant TRƯỚC khi đánh giá rule nghiệp vụ.
	FindTicketByCode(code string) (*model.Ticket, error)

	TicketsByPhone(scope helper.Scope, phone string) ([]model.Ticket, error)

	// ConsumeUse trừ đúng 1 buổi bằng một UPDATE có điều kiện
	// remaining_uses > 0. Không match dòng nào (thua race hoặc đã hết buổi)
	// → ErrNoRemaining; remaining_uses không bao giờ âm.
	ConsumeUse(tenantID uint, code string) (*model.Ticket, error)

	// SetTicketFields ghi đè trực tiếp field do chủ phòng sửa (remaining,
	// expiry, lock...). Ghi lên vé của tenant khác → ErrCrossTenant.
	SetTicketFields(scope helper.Scope, code string, fields map[string]any) (*model.Ticket, error)

	CustomerByPhone(tenantID uint, phone string) (*model.Customer, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewEntitlementStore(db *gorm.DB) EntitlementStore {
	return &gormStore{db: db}
}

func (s *gormStore) FindTicketByCode(code string) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := s.db.Where("code = ?", code).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (s *gormStore) TicketsByPhone(scope helper.Scope, phone string) ([]model.Ticket, error) {
	var tickets []model.Ticket
	query := s.db.Where("owner_phone = ?", phone)
	if scope.Filtered() {
		query = query.Where("tenant_id = ?", *scope.TenantID)
	}
	if err := query.Order("created_at desc").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *gormStore) ConsumeUse(tenantID uint, code string) (*model.Ticket, error) {
	result := s.db.Model(&model.Ticket{}).
		Where("tenant_id = ? AND code = ? AND remaining_uses > 0", tenantID, code).
		UpdateColumn("remaining_uses", gorm.Expr("remaining_uses - 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNoRemaining
	}

	var ticket model.Ticket
	if err := s.db.Where("tenant_id = ? AND code = ?", tenantID, code).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *gormStore) SetTicketFields(scope helper.Scope, code string, fields map[string]any) (*model.Ticket, error) {
	ticket, err := s.FindTicketByCode(code)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(ticket.TenantId) {
		return nil, ErrCrossTenant
	}

	if err := s.db.Model(&model.Ticket{}).
		Where("id = ?", ticket.ID).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return s.FindTicketByCode(code)
}

func (s *gormStore) CustomerByPhone(tenantID uint, phone string) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.Where("tenant_id = ? AND phone = ?", tenantID, phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}
