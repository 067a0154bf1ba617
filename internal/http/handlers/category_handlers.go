package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// CategoryHandler serves post categories.
type CategoryHandler struct {
	categoryRepo domain.CategoryRepository
}

func NewCategoryHandler(categoryRepo domain.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
	SortOrder   int    `json:"sortOrder"`
}

// List handles GET /categories, ordered by sort order with post counts.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryRepo.List(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	views := make([]*categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, toCategoryView(cat))
	}
	response.OK(c, views)
}

// Create handles POST /admin/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "分类名称不能为空")
		return
	}
	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if err := h.categoryRepo.Create(c.Request.Context(), category); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, toCategoryView(category))
}

// Update handles PUT /admin/categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "分类名称不能为空")
		return
	}
	category, err := h.categoryRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	category.Name = req.Name
	category.Description = req.Description
	category.SortOrder = req.SortOrder
	if err := h.categoryRepo.Update(c.Request.Context(), category); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toCategoryView(category))
}

// Delete handles DELETE /admin/categories/:id. Deletion is refused while
// posts still reference the category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
