package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/middleware"
	"github.com/you/communitysvc/internal/http/response"
)

// CaseHandler serves the success-case showcase.
type CaseHandler struct {
	caseRepo domain.CaseRepository
}

func NewCaseHandler(caseRepo domain.CaseRepository) *CaseHandler {
	return &CaseHandler{caseRepo: caseRepo}
}

type caseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Summary     string `json:"summary" binding:"omitempty,max=500"`
	Content     string `json:"content" binding:"omitempty"`
	CoverURL    string `json:"coverUrl" binding:"omitempty,max=500"`
	AuthorName  string `json:"authorName" binding:"omitempty,max=50"`
	Revenue     string `json:"revenue" binding:"omitempty,max=50"`
	SortOrder   int    `json:"sortOrder"`
	IsPublished bool   `json:"isPublished"`
}

// List handles GET /cases (published only).
func (h *CaseHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	result, err := h.caseRepo.List(c.Request.Context(), true, page, pageSize)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toCaseView))
}

// ListAdmin handles GET /admin/cases, including unpublished entries.
func (h *CaseHandler) ListAdmin(c *gin.Context) {
	page, pageSize := pagination(c)
	result, err := h.caseRepo.List(c.Request.Context(), false, page, pageSize)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, pageOf(result, toCaseView))
}

// Get handles GET /cases/:id.
func (h *CaseHandler) Get(c *gin.Context) {
	item, err := h.caseRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !item.IsPublished {
		identity, ok := middleware.IdentityFrom(c)
		if !ok || !identity.IsAdmin() {
			response.FailFromError(c, domain.ErrNotFound)
			return
		}
	}
	response.OK(c, toCaseView(item))
}

// Create handles POST /admin/cases.
func (h *CaseHandler) Create(c *gin.Context) {
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "案例标题不能为空")
		return
	}
	item := &domain.Case{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		CoverURL:    req.CoverURL,
		AuthorName:  req.AuthorName,
		Revenue:     req.Revenue,
		SortOrder:   req.SortOrder,
		IsPublished: req.IsPublished,
	}
	if err := h.caseRepo.Create(c.Request.Context(), item); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, toCaseView(item))
}

// Update handles PUT /admin/cases/:id.
func (h *CaseHandler) Update(c *gin.Context) {
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "案例标题不能为空")
		return
	}
	item, err := h.caseRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	item.Title = req.Title
	item.Summary = req.Summary
	item.Content = req.Content
	item.CoverURL = req.CoverURL
	item.AuthorName = req.AuthorName
	item.Revenue = req.Revenue
	item.SortOrder = req.SortOrder
	item.IsPublished = req.IsPublished
	if err := h.caseRepo.Update(c.Request.Context(), item); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toCaseView(item))
}

// Delete handles DELETE /admin/cases/:id.
func (h *CaseHandler) Delete(c *gin.Context) {
	if err := h.caseRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
