package model

type Customer struct {
	DTO
	TenantId uint   `gorm:"not null;uniqueIndex:idx_customer_tenant_phone" json:"tenantId"`
	Phone    string `gorm:"not null;uniqueIndex:idx_customer_tenant_phone" json:"phone"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PinHash  string `gorm:"not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	Tenant Tenant `gorm:"foreignKey:TenantId;constraint:OnDelete:CASCADE" json:"-"`
}

type Customers []Customer

type CreateCustomerInput struct {
	Phone string `json:"phone" validate:"required,min=9"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Pin   string `json:"pin" validate:"required,len=4,numeric"`
}

type EditCustomerInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsActive *bool   `json:"isActive"`
}

type ChangePinInput struct {
	Phone  string `json:"phone" validate:"required"`
	NewPin string `json:"newPin" validate:"required,len=4,numeric"`
}

type FilterCustomer struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Phone     string `json:"phone"`
	Active    *bool  `json:"active"`
}
