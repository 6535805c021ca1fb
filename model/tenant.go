package model

type Tenant struct {
	DTO
	Slug        string  `gorm:"uniqueIndex" json:"slug"`
	Name        string  `gorm:"not null" validate:"required" json:"name"`
	Phone       string  `json:"phone"`
	LogoUrl     *string `json:"logoUrl"`
	Description *string `json:"description"`
	Active      bool    `gorm:"not null;default:true" json:"isActive"`

	Branches []Branch `gorm:"foreignKey:TenantId" json:"branches"`
}

type Tenants []Tenant

type CreateTenantInput struct {
	Name        string  `json:"name" validate:"required"`
	Phone       string  `json:"phone"`
	Description *string `json:"description"`
}

type EditTenantInput struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	LogoUrl     *string `json:"logoUrl" validate:"omitempty,url"`
	Description *string `json:"description"`
	Active      *bool   `json:"isActive"`
}

type FilterTenant struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Active    *bool  `json:"active"`
}

type Branch struct {
	DTO
	TenantId uint   `gorm:"not null;index" json:"tenantId"`
	Name     string `gorm:"not null" validate:"required" json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Active   bool   `gorm:"not null;default:true" json:"isActive"`

	Tenant Tenant `gorm:"foreignKey:TenantId;constraint:OnDelete:CASCADE" json:"-"`
}

type Branches []Branch

type CreateBranchInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type EditBranchInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"isActive"`
}
