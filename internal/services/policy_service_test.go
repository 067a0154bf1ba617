package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/mocks"
)

func TestPolicyService_GrantAndCheck(t *testing.T) {
	enforcer := mocks.NewMockEnforcer()
	svc := NewPolicyServiceWithEnforcer(enforcer)

	require.NoError(t, svc.GrantPermission("moderator", "posts", "review"))

	allowed, err := svc.CheckPermission([]string{"moderator"}, "posts", "review")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.CheckPermission([]string{"member"}, "posts", "review")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Holding the grant through any one role is enough.
	allowed, err = svc.CheckPermission([]string{"member", "moderator"}, "posts", "review")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestPolicyService_RevokePermission(t *testing.T) {
	enforcer := mocks.NewMockEnforcer()
	svc := NewPolicyServiceWithEnforcer(enforcer)

	require.NoError(t, svc.GrantPermission("admin", "users", "manage"))
	require.NoError(t, svc.RevokePermission("admin", "users", "manage"))

	allowed, err := svc.CheckPermission([]string{"admin"}, "users", "manage")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPolicyService_ReplaceRolePermissions(t *testing.T) {
	enforcer := mocks.NewMockEnforcer()
	svc := NewPolicyServiceWithEnforcer(enforcer)

	require.NoError(t, svc.GrantPermission("moderator", "posts", "review"))
	require.NoError(t, svc.GrantPermission("moderator", "categories", "manage"))

	// The matrix row is swapped wholesale; old grants vanish.
	require.NoError(t, svc.ReplaceRolePermissions("moderator", []*domain.Permission{
		{Resource: "posts", Action: "read"},
	}))

	allowed, err := svc.CheckPermission([]string{"moderator"}, "posts", "review")
	require.NoError(t, err)
	assert.False(t, allowed)
	allowed, err = svc.CheckPermission([]string{"moderator"}, "categories", "manage")
	require.NoError(t, err)
	assert.False(t, allowed)
	allowed, err = svc.CheckPermission([]string{"moderator"}, "posts", "read")
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.Equal(t, [][]string{{"posts", "read"}}, svc.RolePermissions("moderator"))
	assert.Positive(t, enforcer.SaveCount(), "matrix edits must be persisted")
}

func TestPolicyService_ReplaceDoesNotTouchOtherRoles(t *testing.T) {
	enforcer := mocks.NewMockEnforcer()
	svc := NewPolicyServiceWithEnforcer(enforcer)

	require.NoError(t, svc.GrantPermission("admin", "users", "manage"))
	require.NoError(t, svc.GrantPermission("moderator", "posts", "review"))

	require.NoError(t, svc.ReplaceRolePermissions("moderator", nil))

	allowed, err := svc.CheckPermission([]string{"admin"}, "users", "manage")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Empty(t, svc.RolePermissions("moderator"))
}

func TestPolicyService_RemoveRole(t *testing.T) {
	enforcer := mocks.NewMockEnforcer()
	svc := NewPolicyServiceWithEnforcer(enforcer)

	require.NoError(t, svc.GrantPermission("moderator", "posts", "review"))
	require.NoError(t, svc.RemoveRole("moderator"))

	allowed, err := svc.CheckPermission([]string{"moderator"}, "posts", "review")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Empty(t, svc.RolePermissions("moderator"))
}
