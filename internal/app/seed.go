package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/config"
)

// seedRBAC brings the permission catalog, the built-in roles and their
// policy grants in line with the declarative seed file. Existing entries
// are kept; the seed only fills gaps, so runtime matrix edits survive
// restarts.
func seedRBAC(ctx context.Context, c *Container, seed *config.RBACSeed) error {
	byPair := make(map[string]*domain.Permission, len(seed.Permissions))
	for _, sp := range seed.Permissions {
		p := &domain.Permission{
			Resource:    sp.Resource,
			Action:      sp.Action,
			Description: sp.Description,
		}
		if err := c.RoleRepo.EnsurePermission(ctx, p); err != nil {
			return fmt.Errorf("seed permission %s:%s: %w", sp.Resource, sp.Action, err)
		}
		byPair[sp.Resource+":"+sp.Action] = p
	}

	for _, sr := range seed.Roles {
		role, err := c.RoleRepo.FindByName(ctx, sr.Name)
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrRoleNotFound) {
			role = &domain.Role{Name: sr.Name, Description: sr.Description}
			if err := c.RoleRepo.Create(ctx, role); err != nil {
				return fmt.Errorf("seed role %s: %w", sr.Name, err)
			}
		} else if err != nil {
			return err
		}

		// Only grant policies for roles that have none yet.
		if len(c.PolicySvc.RolePermissions(role.Name)) > 0 {
			continue
		}
		for _, grant := range expandGrants(sr.Grants, seed.Permissions) {
			if err := c.PolicySvc.GrantPermission(role.Name, grant.Resource, grant.Action); err != nil {
				return fmt.Errorf("seed grant %s -> %s:%s: %w", role.Name, grant.Resource, grant.Action, err)
			}
		}
	}

	log.Printf("rbac seed applied: %d permissions, %d roles", len(seed.Permissions), len(seed.Roles))
	return nil
}

// seedAdmin creates the bootstrap super admin account when one is
// configured and no user holds that username yet.
func seedAdmin(ctx context.Context, c *Container) error {
	if c.Config.AdminPassword == "" {
		return nil
	}
	if _, err := c.UserRepo.FindByUsername(ctx, c.Config.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := c.PasswordSvc.Hash(c.Config.AdminPassword)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Username:     c.Config.AdminUsername,
		PasswordHash: hash,
		Nickname:     "管理员",
		Status:       domain.UserStatusActive,
	}
	if err := c.UserRepo.Create(ctx, admin); err != nil {
		return err
	}
	if err := c.UserRepo.AssignRole(ctx, admin.ID, domain.RoleSuperAdmin); err != nil {
		return err
	}
	log.Printf("bootstrap admin account %q created", c.Config.AdminUsername)
	return nil
}

// expandGrants resolves "resource:action" pairs, with "*" meaning the
// whole catalog.
func expandGrants(grants []string, catalog []config.SeedPermission) []config.SeedPermission {
	for _, g := range grants {
		if g == "*" {
			return catalog
		}
	}
	out := make([]config.SeedPermission, 0, len(grants))
	for _, g := range grants {
		for _, p := range catalog {
			if g == p.Resource+":"+p.Action {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
