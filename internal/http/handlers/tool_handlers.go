package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// ToolHandler serves the curated tool directory.
type ToolHandler struct {
	toolRepo domain.ToolRepository
}

func NewToolHandler(toolRepo domain.ToolRepository) *ToolHandler {
	return &ToolHandler{toolRepo: toolRepo}
}

type toolRequest struct {
	Name          string   `json:"name" binding:"required,min=1,max=100"`
	Description   string   `json:"description" binding:"omitempty,max=1000"`
	IconURL       string   `json:"iconUrl" binding:"omitempty,max=500"`
	Link          string   `json:"link" binding:"required,max=500"`
	CategoryName  string   `json:"categoryName" binding:"omitempty,max=50"`
	Tags          []string `json:"tags"`
	IsRecommended bool     `json:"isRecommended"`
	SortOrder     int      `json:"sortOrder"`
	IsPublished   bool     `json:"isPublished"`
}

// List handles GET /tools, showing published tools with optional
// categoryName and recommended filters.
func (h *ToolHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	filter := domain.ToolFilter{
		OnlyPublished:   true,
		CategoryName:    c.Query("categoryName"),
		OnlyRecommended: c.Query("recommended") == "true",
		Page:            page,
		PageSize:        pageSize,
	}
	result, err := h.toolRepo.List(c.Request.Context(), filter)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toToolView))
}

// ListAdmin handles GET /admin/tools, including unpublished entries.
func (h *ToolHandler) ListAdmin(c *gin.Context) {
	page, pageSize := pagination(c)
	filter := domain.ToolFilter{
		CategoryName: c.Query("categoryName"),
		Page:         page,
		PageSize:     pageSize,
	}
	result, err := h.toolRepo.List(c.Request.Context(), filter)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toToolView))
}

// Create handles POST /admin/tools.
func (h *ToolHandler) Create(c *gin.Context) {
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "工具名称和链接不能为空")
		return
	}
	tool := &domain.Tool{
		Name:          req.Name,
		Description:   req.Description,
		IconURL:       req.IconURL,
		Link:          req.Link,
		CategoryName:  req.CategoryName,
		Tags:          req.Tags,
		IsRecommended: req.IsRecommended,
		SortOrder:     req.SortOrder,
		IsPublished:   req.IsPublished,
	}
	if err := h.toolRepo.Create(c.Request.Context(), tool); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, toToolView(tool))
}

// Update handles PUT /admin/tools/:id.
func (h *ToolHandler) Update(c *gin.Context) {
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "工具名称和链接不能为空")
		return
	}
	tool, err := h.toolRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	tool.Name = req.Name
	tool.Description = req.Description
	tool.IconURL = req.IconURL
	tool.Link = req.Link
	tool.CategoryName = req.CategoryName
	tool.Tags = req.Tags
	tool.IsRecommended = req.IsRecommended
	tool.SortOrder = req.SortOrder
	tool.IsPublished = req.IsPublished
	if err := h.toolRepo.Update(c.Request.Context(), tool); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toToolView(tool))
}

// Delete handles DELETE /admin/tools/:id.
func (h *ToolHandler) Delete(c *gin.Context) {
	if err := h.toolRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
