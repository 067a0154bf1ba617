package mocks

import (
	"sync"

	"github.com/you/communitysvc/domain"
)

// MockEnforcer implements domain.Enforcer for testing. The default
// behavior keeps policies in memory and enforces exact-match rules, which
// is enough to test the policy service end to end without casbin.
type MockEnforcer struct {
	AddPolicyFunc            func(params ...interface{}) (bool, error)
	RemovePolicyFunc         func(params ...interface{}) (bool, error)
	RemoveFilteredPolicyFunc func(fieldIndex int, fieldValues ...string) (bool, error)
	EnforceFunc              func(rvals ...interface{}) (bool, error)
	GetFilteredPolicyFunc    func(fieldIndex int, fieldValues ...string) ([][]string, error)
	SavePolicyFunc           func() error

	mu       sync.Mutex
	policies [][]string
	saves    int
}

func NewMockEnforcer() *MockEnforcer {
	return &MockEnforcer{}
}

func toStrings(params []interface{}) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		if s, ok := p.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *MockEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toStrings(params)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.policies {
		if equal(p, rule) {
			return false, nil
		}
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

func (m *MockEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	rule := toStrings(params)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.policies {
		if equal(p, rule) {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEnforcer) RemoveFilteredPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	if m.RemoveFilteredPolicyFunc != nil {
		return m.RemoveFilteredPolicyFunc(fieldIndex, fieldValues...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.policies[:0]
	removed := false
	for _, p := range m.policies {
		match := true
		for i, v := range fieldValues {
			if v != "" && (fieldIndex+i >= len(p) || p[fieldIndex+i] != v) {
				match = false
				break
			}
		}
		if match {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	m.policies = kept
	return removed, nil
}

func (m *MockEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	req := toStrings(rvals)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.policies {
		if equal(p, req) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEnforcer) GetFilteredPolicy(fieldIndex int, fieldValues ...string) ([][]string, error) {
	if m.GetFilteredPolicyFunc != nil {
		return m.GetFilteredPolicyFunc(fieldIndex, fieldValues...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]string
	for _, p := range m.policies {
		match := true
		for i, v := range fieldValues {
			if v != "" && (fieldIndex+i >= len(p) || p[fieldIndex+i] != v) {
				match = false
				break
			}
		}
		if match {
			out = append(out, append([]string(nil), p...))
		}
	}
	return out, nil
}

func (m *MockEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return nil
}

// SaveCount reports how many times SavePolicy ran with default behavior.
func (m *MockEnforcer) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var _ domain.Enforcer = (*MockEnforcer)(nil)
