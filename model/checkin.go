package model

import "time"

// CheckInLog là bản ghi append-only cho một lượt check-in đã resolve được vé.
// Không update/delete trong nghiệp vụ bình thường; chỉ bị xoá theo tenant.
// TicketCode giữ nguyên kể cả khi vé đã bị xoá.
type CheckInLog struct {
	DTO
	TenantId        uint      `gorm:"not null;index" json:"tenantId"`
	TicketCode      string    `gorm:"size:30;not null;index" json:"ticketCode"`
	UserPhone       string    `json:"userPhone"`
	UserName        string    `json:"userName"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`
	Method          string    `gorm:"not null" json:"method"`
	BranchId        uint      `gorm:"not null;index" json:"branchId"`
	Status          string    `gorm:"not null" json:"status"`
	Message         string    `json:"message"`
	IsManualByStaff bool      `gorm:"not null;default:false" json:"isManualByStaff"`
	PerformedBy     string    `json:"performedBy"`

	Tenant Tenant `gorm:"foreignKey:TenantId;constraint:OnDelete:CASCADE" json:"-"`
}

type CheckInLogs []CheckInLog

type CheckInInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Method     string `json:"method" validate:"required,oneof=QR_CHUNG QR_RIENG MANUAL"`
	BranchId   uint   `json:"branchId" validate:"required"`
	Pin        string `json:"pin" validate:"omitempty,len=4,numeric"`
}

type PublicCheckInInput struct {
	Identifier string `json:"identifier" validate:"required"`
	BranchId   uint   `json:"branchId" validate:"required"`
	TenantSlug string `json:"tenant" validate:"required"`
	Pin        string `json:"pin" validate:"omitempty,len=4,numeric"`
}

type FilterCheckInLog struct {
	Pagination
	BranchId uint   `json:"branchId" validate:"omitempty,gt=0"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status   string `json:"status" validate:"omitempty,oneof=SUCCESS FAILED"`
}

// TicketInfo là phần thông tin vé trả về cho màn hình quét.
type TicketInfo struct {
	Code          string    `json:"code"`
	OwnerName     string    `json:"ownerName"`
	OwnerPhone    string    `json:"ownerPhone"`
	Type          string    `json:"type"`
	TotalUses     int       `json:"totalUses"`
	RemainingUses int       `json:"remainingUses"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Outcome là kết quả có cấu trúc của một lượt authorize; rule fail là kết quả
// bình thường, không phải lỗi hệ thống.
type Outcome struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	RequirePin bool        `json:"requirePin,omitempty"`
	Remaining  *int        `json:"remaining,omitempty"`
	TicketInfo *TicketInfo `json:"ticketInfo,omitempty"`
}
