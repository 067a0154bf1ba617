package mocks

import (
	"github.com/you/communitysvc/domain"
)

// MockPolicyService implements domain.PolicyService for testing
type MockPolicyService struct {
	GrantPermissionFunc        func(role, resource, action string) error
	RevokePermissionFunc       func(role, resource, action string) error
	ReplaceRolePermissionsFunc func(role string, perms []*domain.Permission) error
	RemoveRoleFunc             func(role string) error
	CheckPermissionFunc        func(roles []string, resource, action string) (bool, error)
	RolePermissionsFunc        func(role string) [][]string
}

func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) GrantPermission(role, resource, action string) error {
	if m.GrantPermissionFunc != nil {
		return m.GrantPermissionFunc(role, resource, action)
	}
	return nil
}

func (m *MockPolicyService) RevokePermission(role, resource, action string) error {
	if m.RevokePermissionFunc != nil {
		return m.RevokePermissionFunc(role, resource, action)
	}
	return nil
}

func (m *MockPolicyService) ReplaceRolePermissions(role string, perms []*domain.Permission) error {
	if m.ReplaceRolePermissionsFunc != nil {
		return m.ReplaceRolePermissionsFunc(role, perms)
	}
	return nil
}

func (m *MockPolicyService) RemoveRole(role string) error {
	if m.RemoveRoleFunc != nil {
		return m.RemoveRoleFunc(role)
	}
	return nil
}

func (m *MockPolicyService) CheckPermission(roles []string, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(roles, resource, action)
	}
	return false, nil
}

func (m *MockPolicyService) RolePermissions(role string) [][]string {
	if m.RolePermissionsFunc != nil {
		return m.RolePermissionsFunc(role)
	}
	return nil
}

var _ domain.PolicyService = (*MockPolicyService)(nil)
