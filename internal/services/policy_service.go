package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/you/communitysvc/domain"
)

// Role names get a "role_" prefix inside the enforcer so policy subjects
// can never collide with other identifier kinds.
const rolePrefix = "role_"

// EnforcerWrapper adapts the real casbin enforcer to domain.Enforcer.
type EnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewEnforcerWrapper wraps a casbin enforcer.
func NewEnforcerWrapper(enforcer *casbin.Enforcer) domain.Enforcer {
	return &EnforcerWrapper{enforcer: enforcer}
}

func (w *EnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *EnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *EnforcerWrapper) RemoveFilteredPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	return w.enforcer.RemoveFilteredPolicy(fieldIndex, fieldValues...)
}

func (w *EnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *EnforcerWrapper) GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error) {
	return w.enforcer.GetFilteredPolicy(fieldIndex, fieldValues...)
}

func (w *EnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService on casbin. The policy
// table is the storage of the role→(resource,action) matrix; the catalog of
// known permissions lives in the relational store.
type PolicyServiceImpl struct {
	enforcer domain.Enforcer
}

// NewPolicyService creates a new policy service.
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: NewEnforcerWrapper(enforcer)}
}

// NewPolicyServiceWithEnforcer creates a policy service from the interface
// (for testing).
func NewPolicyServiceWithEnforcer(enforcer domain.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// GrantPermission implements domain.PolicyService
func (p *PolicyServiceImpl) GrantPermission(role, resource, action string) error {
	if _, err := p.enforcer.AddPolicy(rolePrefix+role, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RevokePermission implements domain.PolicyService
func (p *PolicyServiceImpl) RevokePermission(role, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(rolePrefix+role, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// ReplaceRolePermissions implements domain.PolicyService. The role's whole
// matrix row is swapped wholesale, mirroring how the admin console edits it.
func (p *PolicyServiceImpl) ReplaceRolePermissions(role string, perms []*domain.Permission) error {
	if _, err := p.enforcer.RemoveFilteredPolicy(0, rolePrefix+role); err != nil {
		return err
	}
	for _, perm := range perms {
		if _, err := p.enforcer.AddPolicy(rolePrefix+role, perm.Resource, perm.Action); err != nil {
			return err
		}
	}
	return p.enforcer.SavePolicy()
}

// RemoveRole implements domain.PolicyService
func (p *PolicyServiceImpl) RemoveRole(role string) error {
	if _, err := p.enforcer.RemoveFilteredPolicy(0, rolePrefix+role); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService. Holding the capability
// through any one role suffices.
func (p *PolicyServiceImpl) CheckPermission(roles []string, resource, action string) (bool, error) {
	for _, role := range roles {
		allowed, err := p.enforcer.Enforce(rolePrefix+role, resource, action)
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// RolePermissions implements domain.PolicyService. Returns the role's
// (resource, action) pairs.
func (p *PolicyServiceImpl) RolePermissions(role string) [][]string {
	policies, err := p.enforcer.GetFilteredPolicy(0, rolePrefix+role)
	if err != nil {
		return nil
	}
	pairs := make([][]string, 0, len(policies))
	for _, policy := range policies {
		if len(policy) >= 3 {
			pairs = append(pairs, []string{policy[1], policy[2]})
		}
	}
	return pairs
}
