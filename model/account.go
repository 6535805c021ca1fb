package model

import "time"

// Account là tài khoản đăng nhập console: PLATFORM_ADMIN (TenantId nil),
// OWNER, STAFF (STAFF gắn với một chi nhánh). Khách hàng không có account —
// họ xác thực bằng PIN, xem model.Customer.
type Account struct {
	DTO
	Username     string  `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password     string  `gorm:"not null" validate:"required,min=6,max=50" json:"-"`
	Role         string  `gorm:"not null" json:"role"`
	Active       bool    `gorm:"not null;default:true" json:"active"`
	TenantId     *uint   `json:"tenantId"`
	BranchId     *uint   `json:"branchId"`
	RefreshToken string  `json:"-"`
	Tenant       *Tenant `gorm:"foreignKey:TenantId;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
	Branch       *Branch `gorm:"foreignKey:BranchId;constraint:OnDelete:SET NULL" json:"branch,omitempty"`
}

type Accounts []Account

type CreateStaffInput struct {
	Username string `json:"username" validate:"required,min=4"`
	Password string `json:"password" validate:"required,min=6"`
	BranchId uint   `json:"branchId" validate:"required"`
}

type UpdateStaffInput struct {
	BranchId *uint `json:"branchId"`
	Active   *bool `json:"active"`
}

type FilterAccount struct {
	Pagination
	SearchKey string  `json:"searchKey"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type PasswordResetToken struct {
	DTO
	AccountId uint      `gorm:"not null" json:"accountId"`
	Token     string    `gorm:"type:varchar(64);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Account   Account   `gorm:"foreignKey:AccountId;constraint:OnDelete:CASCADE" json:"-"`
}
