package helper

import (
	"testing"

	"gym_manager/constants"
	"gym_manager/model"
	"gym_manager/utils"

	"github.com/stretchr/testify/assert"
)

func TestScopeFromClaim(t *testing.T) {
	admin := ScopeFromClaim(model.TokenClaim{Role: constants.ROLE_PLATFORM_ADMIN})
	assert.False(t, admin.Filtered())
	assert.True(t, admin.Owns(1))
	assert.True(t, admin.Owns(99))

	owner := ScopeFromClaim(model.TokenClaim{
		Role:     constants.ROLE_OWNER,
		TenantId: utils.Ptr(uint(5)),
	})
	assert.True(t, owner.Filtered())
	assert.True(t, owner.Owns(5))
	assert.False(t, owner.Owns(6))
}

func TestScopeForTenant(t *testing.T) {
	scope := ScopeForTenant(3)
	assert.True(t, scope.Filtered())
	assert.True(t, scope.Owns(3))
	assert.False(t, scope.Owns(1))
}
