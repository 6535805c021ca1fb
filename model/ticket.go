package model

import "time"

type Ticket struct {
	DTO
	Code          string    `gorm:"size:30;uniqueIndex;not null" json:"code"`
	TenantId      uint      `gorm:"not null;index" json:"tenantId"`
	BranchId      uint      `gorm:"not null" json:"branchId"`
	OwnerPhone    string    `gorm:"not null;index" json:"ownerPhone"`
	OwnerName     string    `json:"ownerName"`
	Type          string    `gorm:"not null" validate:"required,oneof=12_SESSION 20_SESSION MONTHLY EVENT" json:"type"`
	TotalUses     int       `gorm:"not null" json:"totalUses"`
	RemainingUses int       `gorm:"not null" json:"remainingUses"`
	ExpiresAt     time.Time `gorm:"not null" json:"expiresAt"`
	Status        string    `gorm:"not null;default:'ACTIVE'" json:"status"`
	RequirePin    bool      `gorm:"not null;default:false" json:"requirePin"`

	Tenant Tenant `gorm:"foreignKey:TenantId;constraint:OnDelete:CASCADE" json:"-"`
	Branch Branch `gorm:"foreignKey:BranchId" json:"-"`
}

type Tickets []Ticket

type CreateTicketInput struct {
	BranchId   uint      `json:"branchId" validate:"required"`
	OwnerPhone string    `json:"ownerPhone" validate:"required"`
	OwnerName  string    `json:"ownerName" validate:"omitempty"`
	Type       string    `json:"type" validate:"required,oneof=12_SESSION 20_SESSION MONTHLY EVENT"`
	TotalUses  int       `json:"totalUses" validate:"required,gt=0"`
	ExpiresAt  time.Time `json:"expiresAt" validate:"required"`
	RequirePin bool      `json:"requirePin"`
	Email      string    `json:"email" validate:"omitempty,email"`
}

// EditTicketInput ghi đè trực tiếp các field chủ phòng tập sửa trên dashboard.
type EditTicketInput struct {
	OwnerName     *string    `json:"ownerName"`
	RemainingUses *int       `json:"remainingUses" validate:"omitempty,gte=0"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	RequirePin    *bool      `json:"requirePin"`
}

type FilterTicketInput struct {
	Pagination
	BranchId   uint   `json:"branchId" validate:"omitempty,gt=0"`
	OwnerPhone string `json:"ownerPhone"`
	Type       string `json:"type" validate:"omitempty,oneof=12_SESSION 20_SESSION MONTHLY EVENT"`
	Status     string `json:"status" validate:"omitempty,oneof=ACTIVE LOCKED"`
}
