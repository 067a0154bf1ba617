package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// RoleHandler serves role and permission-matrix administration. Grants are
// mirrored into the policy engine so checks see edits immediately.
type RoleHandler struct {
	roleRepo  domain.RoleRepository
	policySvc domain.PolicyService
}

func NewRoleHandler(roleRepo domain.RoleRepository, policySvc domain.PolicyService) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo, policySvc: policySvc}
}

type roleRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

type replacePermissionsRequest struct {
	PermissionIDs []string `json:"permissionIds" binding:"required"`
}

// List handles GET /roles, resolving each role's current grants from the
// policy engine.
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleRepo.List(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	catalog, err := h.roleRepo.ListPermissions(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	byPair := make(map[string]*domain.Permission, len(catalog))
	for _, p := range catalog {
		byPair[p.Resource+":"+p.Action] = p
	}

	views := make([]*roleView, 0, len(roles))
	for _, role := range roles {
		v := &roleView{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Permissions: make([]*permissionView, 0),
		}
		for _, pair := range h.policySvc.RolePermissions(role.Name) {
			if len(pair) != 2 {
				continue
			}
			if p, ok := byPair[pair[0]+":"+pair[1]]; ok {
				v.Permissions = append(v.Permissions, toPermissionView(p))
			}
		}
		views = append(views, v)
	}
	response.OK(c, views)
}

// Permissions handles GET /roles/permissions, the full capability catalog.
func (h *RoleHandler) Permissions(c *gin.Context) {
	catalog, err := h.roleRepo.ListPermissions(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	views := make([]*permissionView, 0, len(catalog))
	for _, p := range catalog {
		views = append(views, toPermissionView(p))
	}
	response.OK(c, views)
}

// Create handles POST /admin/roles.
func (h *RoleHandler) Create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "角色名称不能为空")
		return
	}
	if existing, err := h.roleRepo.FindByName(c.Request.Context(), req.Name); err == nil && existing != nil {
		response.FailFromError(c, domain.ErrDuplicateName)
		return
	}
	role := &domain.Role{Name: req.Name, Description: req.Description}
	if err := h.roleRepo.Create(c.Request.Context(), role); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, &roleView{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: make([]*permissionView, 0),
	})
}

// Update handles PUT /admin/roles/:id. Renames keep policy rows in step
// by re-homing the role's grants under the new name.
func (h *RoleHandler) Update(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "角色名称不能为空")
		return
	}
	role, err := h.roleRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	oldName := role.Name
	role.Name = req.Name
	role.Description = req.Description
	if err := h.roleRepo.Update(c.Request.Context(), role); err != nil {
		response.FailFromError(c, err)
		return
	}
	if oldName != role.Name {
		pairs := h.policySvc.RolePermissions(oldName)
		if err := h.policySvc.RemoveRole(oldName); err != nil {
			response.FailFromError(c, err)
			return
		}
		for _, pair := range pairs {
			if len(pair) != 2 {
				continue
			}
			if err := h.policySvc.GrantPermission(role.Name, pair[0], pair[1]); err != nil {
				response.FailFromError(c, err)
				return
			}
		}
	}
	response.OK(c, nil)
}

// Delete handles DELETE /admin/roles/:id, removing the role's user links
// and its policy rows.
func (h *RoleHandler) Delete(c *gin.Context) {
	role, err := h.roleRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if err := h.roleRepo.Delete(c.Request.Context(), role.ID); err != nil {
		response.FailFromError(c, err)
		return
	}
	if err := h.policySvc.RemoveRole(role.Name); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}

// ReplacePermissions handles PATCH /admin/roles/:id/permissions. The role's
// grant set is replaced wholesale with the referenced catalog entries.
func (h *RoleHandler) ReplacePermissions(c *gin.Context) {
	var req replacePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "权限列表不能为空")
		return
	}
	role, err := h.roleRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	perms, err := h.roleRepo.FindPermissionsByIDs(c.Request.Context(), req.PermissionIDs)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if len(perms) != len(req.PermissionIDs) {
		response.FailFromError(c, domain.ErrNotFound)
		return
	}
	if err := h.policySvc.ReplaceRolePermissions(role.Name, perms); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
