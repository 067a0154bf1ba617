package domain

import (
	"testing"
	"time"
)

func TestUser_IsBanned(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{name: "active user", status: UserStatusActive, want: false},
		{name: "banned user", status: UserStatusBanned, want: true},
		{name: "empty status", status: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Status: tt.status}
			if got := u.IsBanned(); got != tt.want {
				t.Errorf("IsBanned() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_Roles(t *testing.T) {
	u := &User{Roles: []string{RoleMember, RoleModerator}}

	if !u.HasRole(RoleModerator) {
		t.Error("expected user to hold moderator role")
	}
	if u.HasRole(RoleAdmin) {
		t.Error("did not expect user to hold admin role")
	}
	if !u.HasAnyRole(RoleAdmin, RoleModerator) {
		t.Error("expected HasAnyRole to match moderator")
	}
	if u.HasAnyRole(RoleAdmin, RoleSuperAdmin) {
		t.Error("did not expect HasAnyRole to match any admin role")
	}
	if u.IsAdmin() {
		t.Error("moderator must not count as admin")
	}

	admin := &User{Roles: []string{RoleAdmin}}
	if !admin.IsAdmin() {
		t.Error("expected admin role to count as admin")
	}
}

func TestIdentity_HasAnyRole(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		check    []string
		want     bool
	}{
		{
			name:     "match single role",
			identity: &Identity{Roles: []string{RoleMember}},
			check:    []string{RoleMember},
			want:     true,
		},
		{
			name:     "match one of several",
			identity: &Identity{Roles: []string{RoleMember}},
			check:    []string{RoleAdmin, RoleMember},
			want:     true,
		},
		{
			name:     "no intersection",
			identity: &Identity{Roles: []string{RoleMember}},
			check:    []string{RoleAdmin, RoleSuperAdmin},
			want:     false,
		},
		{
			name:     "no roles at all",
			identity: &Identity{},
			check:    []string{RoleMember},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.HasAnyRole(tt.check...); got != tt.want {
				t.Errorf("HasAnyRole(%v) = %v, want %v", tt.check, got, tt.want)
			}
		})
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Now()

	live := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	if live.Expired(now) {
		t.Error("token expiring in an hour must not be expired")
	}

	stale := &RefreshToken{ExpiresAt: now.Add(-time.Minute)}
	if !stale.Expired(now) {
		t.Error("token past its expiry must be expired")
	}
}

func TestBanner_ActiveAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		banner *Banner
		want   bool
	}{
		{
			name:   "active without window",
			banner: &Banner{IsActive: true},
			want:   true,
		},
		{
			name:   "inactive flag wins",
			banner: &Banner{IsActive: false},
			want:   false,
		},
		{
			name:   "inside window",
			banner: &Banner{IsActive: true, StartAt: &past, EndAt: &future},
			want:   true,
		},
		{
			name:   "before start",
			banner: &Banner{IsActive: true, StartAt: &future},
			want:   false,
		},
		{
			name:   "after end",
			banner: &Banner{IsActive: true, EndAt: &past},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.banner.ActiveAt(now); got != tt.want {
				t.Errorf("ActiveAt() = %v, want %v", got, tt.want)
			}
		})
	}
}
