package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/response"
)

// BannerHandler serves promotional banners.
type BannerHandler struct {
	bannerRepo domain.BannerRepository
}

func NewBannerHandler(bannerRepo domain.BannerRepository) *BannerHandler {
	return &BannerHandler{bannerRepo: bannerRepo}
}

type bannerRequest struct {
	ImageURL  string     `json:"imageUrl" binding:"required,max=500"`
	Link      string     `json:"link" binding:"omitempty,max=500"`
	Position  string     `json:"position" binding:"required,oneof=HOME_TOP HOME_MIDDLE"`
	StartAt   *time.Time `json:"startAt"`
	EndAt     *time.Time `json:"endAt"`
	IsActive  bool       `json:"isActive"`
	SortOrder int        `json:"sortOrder"`
}

// Active handles GET /banners, returning banners live right now for the
// requested position.
func (h *BannerHandler) Active(c *gin.Context) {
	position := c.DefaultQuery("position", domain.BannerPositionHomeTop)
	banners, err := h.bannerRepo.ListActive(c.Request.Context(), position, time.Now())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	views := make([]*bannerView, 0, len(banners))
	for _, banner := range banners {
		views = append(views, toBannerView(banner))
	}
	response.OK(c, views)
}

// List handles GET /admin/banners, regardless of window or active flag.
func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.bannerRepo.List(c.Request.Context())
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	views := make([]*bannerView, 0, len(banners))
	for _, banner := range banners {
		views = append(views, toBannerView(banner))
	}
	response.OK(c, views)
}

// Create handles POST /admin/banners.
func (h *BannerHandler) Create(c *gin.Context) {
	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "图片地址和位置不能为空")
		return
	}
	banner := &domain.Banner{
		ImageURL:  req.ImageURL,
		Link:      req.Link,
		Position:  req.Position,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	}
	if err := h.bannerRepo.Create(c.Request.Context(), banner); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, toBannerView(banner))
}

// Update handles PUT /admin/banners/:id.
func (h *BannerHandler) Update(c *gin.Context) {
	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "图片地址和位置不能为空")
		return
	}
	banner, err := h.bannerRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	banner.ImageURL = req.ImageURL
	banner.Link = req.Link
	banner.Position = req.Position
	banner.StartAt = req.StartAt
	banner.EndAt = req.EndAt
	banner.IsActive = req.IsActive
	banner.SortOrder = req.SortOrder
	if err := h.bannerRepo.Update(c.Request.Context(), banner); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toBannerView(banner))
}

// Delete handles DELETE /admin/banners/:id.
func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.bannerRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}
