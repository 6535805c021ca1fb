package service

import (
	"errors"
	"log"
	"time"

	"gym_manager/constants"
	"gym_manager/helper"
	"gym_manager/model"
)

// CheckInService là state machine cho một lượt check-in:
// resolve credential → chặn cross-tenant → rule nghiệp vụ theo thứ tự cố
// định → trừ buổi atomic → ghi audit + đẩy feed.
type CheckInService struct {
	store EntitlementStore
	audit AuditRecorder
	feed  Feed

	// now tách ra để test ép được thời điểm hết hạn
	now func() time.Time
}

func NewCheckInService(store EntitlementStore, audit AuditRecorder, feed Feed) *CheckInService {
	return &CheckInService{
		store: store,
		audit: audit,
		feed:  feed,
		now:   time.Now,
	}
}

type AuthorizeInput struct {
	Identifier  string
	Method      string
	BranchId    uint
	PerformedBy string
	Pin         string
}

func ticketInfo(t *model.Ticket) *model.TicketInfo {
	return &model.TicketInfo{
		Code:          t.Code,
		OwnerName:     t.OwnerName,
		OwnerPhone:    t.OwnerPhone,
		Type:          t.Type,
		TotalUses:     t.TotalUses,
		RemainingUses: t.RemainingUses,
		ExpiresAt:     t.ExpiresAt,
	}
}

// Authorize chạy trọn một lượt check-in và LUÔN trả về Outcome có cấu trúc;
// rule fail là kết quả bình thường, chỉ sự cố storage mới log mức error.
//
// Thứ tự rule cố định, rule fail đầu tiên thắng:
//  1. hết buổi
//  2. hết hạn
//  3. vé đang khoá
//  4. yêu cầu PIN (MANUAL được bỏ qua — nhân viên tự chịu trách nhiệm)
func (s *CheckInService) Authorize(scope helper.Scope, input AuthorizeInput) model.Outcome {
	// RESOLVING: decode credential về mã vé
	decoded, err := helper.DecodeToken(input.Identifier)
	if err != nil || decoded.TicketCode == "" {
		// chưa resolve được vé thì không ghi audit
		return model.Outcome{Success: false, Message: constants.MSG_TICKET_NOT_FOUND}
	}

	ticket, err := s.store.FindTicketByCode(decoded.TicketCode)
	if errors.Is(err, ErrNotFound) {
		return model.Outcome{Success: false, Message: constants.MSG_TICKET_NOT_FOUND}
	}
	if err != nil {
		log.Printf("[ERROR] lookup ticket %s: %v", decoded.TicketCode, err)
		return model.Outcome{Success: false, Message: constants.MSG_CHECKIN_FAILED}
	}

	// Ranh giới tenant đi trước mọi rule nghiệp vụ; không ghi audit và không
	// trả thêm thông tin gì của vé thuộc hệ thống khác.
	if !scope.Owns(ticket.TenantId) {
		return model.Outcome{Success: false, Message: constants.MSG_FOREIGN_TENANT}
	}

	// VALIDATING
	if ticket.RemainingUses <= 0 {
		return s.reject(ticket, input, constants.MSG_NO_SESSIONS)
	}
	if !s.now().Before(ticket.ExpiresAt) {
		return s.reject(ticket, input, constants.MSG_TICKET_EXPIRED)
	}
	if ticket.Status == constants.TICKET_LOCKED {
		return s.reject(ticket, input, constants.MSG_TICKET_LOCKED)
	}
	if ticket.RequirePin && input.Method != constants.METHOD_MANUAL {
		if input.Pin == "" {
			// chưa có PIN: đây là tín hiệu điều khiển luồng, không phải từ
			// chối cuối cùng — client gọi lại cùng identifier kèm PIN
			return model.Outcome{Success: false, RequirePin: true, TicketInfo: ticketInfo(ticket)}
		}
		customer, err := s.store.CustomerByPhone(ticket.TenantId, ticket.OwnerPhone)
		if err != nil || !helper.CheckPin(input.Pin, customer.PinHash) {
			// PIN sai: requirePin KHÔNG set lại, client tự quyết có nhập lại
			// hay không; tầng này không khoá sau N lần sai
			return s.reject(ticket, input, constants.MSG_WRONG_PIN)
		}
	}

	// COMMITTING: UPDATE có điều kiện; thua race với máy quét khác thì coi
	// như hết buổi
	updated, err := s.store.ConsumeUse(ticket.TenantId, ticket.Code)
	if errors.Is(err, ErrNoRemaining) {
		return s.reject(ticket, input, constants.MSG_NO_SESSIONS)
	}
	if err != nil {
		log.Printf("[ERROR] consume use %s: %v", ticket.Code, err)
		return s.reject(ticket, input, constants.MSG_CHECKIN_FAILED)
	}

	s.record(updated, input, constants.CHECKIN_SUCCESS, constants.MSG_CHECKIN_OK)

	remaining := updated.RemainingUses
	return model.Outcome{
		Success:    true,
		Message:    constants.MSG_CHECKIN_OK,
		Remaining:  &remaining,
		TicketInfo: ticketInfo(updated),
	}
}

func (s *CheckInService) reject(ticket *model.Ticket, input AuthorizeInput, message string) model.Outcome {
	s.record(ticket, input, constants.CHECKIN_FAILED, message)
	return model.Outcome{Success: false, Message: message}
}

// record ghi audit cho mọi kết quả cuối cùng sau khi đã resolve được vé,
// rồi đẩy lên feed của chi nhánh.
func (s *CheckInService) record(ticket *model.Ticket, input AuthorizeInput, status, message string) {
	entry := &model.CheckInLog{
		TenantId:        ticket.TenantId,
		TicketCode:      ticket.Code,
		UserPhone:       ticket.OwnerPhone,
		UserName:        ticket.OwnerName,
		Timestamp:       s.now(),
		Method:          input.Method,
		BranchId:        input.BranchId,
		Status:          status,
		Message:         message,
		IsManualByStaff: input.Method == constants.METHOD_MANUAL,
		PerformedBy:     input.PerformedBy,
	}
	if err := s.audit.Append(entry); err != nil {
		log.Printf("[ERROR] append checkin log %s: %v", ticket.Code, err)
	}

	if s.feed != nil {
		event := FeedEvent{
			TicketCode: ticket.Code,
			Method:     input.Method,
			Status:     status,
			Message:    message,
			Timestamp:  entry.Timestamp,
		}
		if status == constants.CHECKIN_SUCCESS {
			event.TicketInfo = ticketInfo(ticket)
		}
		s.feed.PublishCheckIn(input.BranchId, event)
	}
}
