package helper

import (
	"gym_manager/constants"
	"gym_manager/model"
)

// Scope là phạm vi tenant của request hiện tại. TenantID nil chỉ dành cho
// PLATFORM_ADMIN (không filter); owner/staff luôn bị ràng về tenant của mình.
type Scope struct {
	TenantID *uint
}

// ScopeFromClaim dựng Scope từ claim đã load lại từ DB.
func ScopeFromClaim(claim model.TokenClaim) Scope {
	if claim.Role == constants.ROLE_PLATFORM_ADMIN {
		return Scope{TenantID: nil}
	}
	return Scope{TenantID: claim.TenantId}
}

// ScopeForTenant dùng cho luồng kiosk public, tenant resolve từ slug.
func ScopeForTenant(tenantID uint) Scope {
	return Scope{TenantID: &tenantID}
}

// Filtered báo scope này có filter theo tenant hay không.
func (s Scope) Filtered() bool {
	return s.TenantID != nil
}

// Owns kiểm tra entity thuộc tenant của scope. Scope không filter
// (platform admin) sở hữu mọi tenant.
func (s Scope) Owns(tenantID uint) bool {
	if s.TenantID == nil {
		return true
	}
	return *s.TenantID == tenantID
}
