package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/middleware"
	"github.com/you/communitysvc/internal/http/response"
)

// CourseHandler serves courses and per-user learning records.
type CourseHandler struct {
	courseRepo domain.CourseRepository
	recordRepo domain.LearningRecordRepository
}

func NewCourseHandler(courseRepo domain.CourseRepository, recordRepo domain.LearningRecordRepository) *CourseHandler {
	return &CourseHandler{courseRepo: courseRepo, recordRepo: recordRepo}
}

type courseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	CoverURL    string `json:"coverUrl" binding:"omitempty,max=500"`
	SortOrder   int    `json:"sortOrder"`
	IsPublished bool   `json:"isPublished"`
}

type upsertRecordRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Progress int    `json:"progress" binding:"min=0,max=100"`
}

// List handles GET /courses. Unpublished courses appear only when an admin
// asks for them with all=true.
func (h *CourseHandler) List(c *gin.Context) {
	onlyPublished := true
	if c.Query("all") == "true" {
		if identity, ok := middleware.IdentityFrom(c); ok && identity.IsAdmin() {
			onlyPublished = false
		}
	}
	courses, err := h.courseRepo.List(c.Request.Context(), onlyPublished)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	views := make([]*courseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, toCourseView(course))
	}
	response.OK(c, views)
}

// Get handles GET /courses/:id.
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courseRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	if !course.IsPublished {
		identity, ok := middleware.IdentityFrom(c)
		if !ok || !identity.IsAdmin() {
			response.FailFromError(c, domain.ErrNotFound)
			return
		}
	}
	response.OK(c, toCourseView(course))
}

// Create handles POST /admin/courses.
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "课程标题不能为空")
		return
	}
	course := &domain.Course{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		SortOrder:   req.SortOrder,
		IsPublished: req.IsPublished,
	}
	if err := h.courseRepo.Create(c.Request.Context(), course); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.Created(c, toCourseView(course))
}

// Update handles PUT /admin/courses/:id.
func (h *CourseHandler) Update(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "课程标题不能为空")
		return
	}
	course, err := h.courseRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	course.Title = req.Title
	course.Description = req.Description
	course.CoverURL = req.CoverURL
	course.SortOrder = req.SortOrder
	course.IsPublished = req.IsPublished
	if err := h.courseRepo.Update(c.Request.Context(), course); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toCourseView(course))
}

// Delete handles DELETE /admin/courses/:id.
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courseRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, nil)
}

// MyRecords handles GET /learning-records/me.
func (h *CourseHandler) MyRecords(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	records, err := h.recordRepo.ListByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		response.FailFromError(c, err)
		return
	}
	views := make([]*learningRecordView, 0, len(records))
	for _, record := range records {
		views = append(views, toLearningRecordView(record))
	}
	response.OK(c, views)
}

// UpsertRecord handles POST /learning-records. Reaching 100 stamps the
// completion time; dropping back below 100 clears it.
func (h *CourseHandler) UpsertRecord(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "登录已失效，请重新登录")
		return
	}
	var req upsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "学习进度不正确")
		return
	}
	if _, err := h.courseRepo.FindByID(c.Request.Context(), req.CourseID); err != nil {
		response.FailFromError(c, err)
		return
	}
	record := &domain.LearningRecord{
		UserID:   identity.UserID,
		CourseID: req.CourseID,
		Progress: req.Progress,
	}
	if req.Progress == 100 {
		now := time.Now()
		record.CompletedAt = &now
	}
	if err := h.recordRepo.Upsert(c.Request.Context(), record); err != nil {
		response.FailFromError(c, err)
		return
	}
	response.OK(c, toLearningRecordView(record))
}
