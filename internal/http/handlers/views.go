package handlers

import (
	"time"

	"github.com/you/communitysvc/domain"
)

// View types shape the JSON the API returns. Domain entities stay free of
// serialization concerns; handlers convert at the boundary.

type userView struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone,omitempty"`
	Username  string    `json:"username,omitempty"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Status    string    `json:"status"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u *domain.User) *userView {
	return &userView{
		ID:        u.ID,
		Phone:     u.Phone,
		Username:  u.Username,
		Nickname:  u.Nickname,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		Status:    u.Status,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}
}

type postView struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Status       string             `json:"status"`
	Author       *domain.PostAuthor `json:"author,omitempty"`
	CategoryID   string             `json:"categoryId,omitempty"`
	Category     *categoryView      `json:"category,omitempty"`
	ViewCount    int64              `json:"viewCount"`
	CommentCount int64              `json:"commentCount"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func toPostView(p *domain.Post) *postView {
	v := &postView{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Status:       p.Status,
		Author:       p.Author,
		CategoryID:   p.CategoryID,
		ViewCount:    p.ViewCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Category != nil {
		v.Category = toCategoryView(p.Category)
	}
	return v
}

type commentView struct {
	ID        string             `json:"id"`
	PostID    string             `json:"postId"`
	Author    *domain.PostAuthor `json:"author,omitempty"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
}

func toCommentView(c *domain.Comment) *commentView {
	return &commentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    c.Author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

type categoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sortOrder"`
	PostCount   int64  `json:"postCount"`
}

func toCategoryView(c *domain.Category) *categoryView {
	return &categoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		PostCount:   c.PostCount,
	}
}

type courseView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCourseView(c *domain.Course) *courseView {
	return &courseView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CoverURL:    c.CoverURL,
		SortOrder:   c.SortOrder,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
	}
}

type learningRecordView struct {
	ID          string      `json:"id"`
	CourseID    string      `json:"courseId"`
	Course      *courseView `json:"course,omitempty"`
	Progress    int         `json:"progress"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toLearningRecordView(r *domain.LearningRecord) *learningRecordView {
	v := &learningRecordView{
		ID:          r.ID,
		CourseID:    r.CourseID,
		Progress:    r.Progress,
		CompletedAt: r.CompletedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Course != nil {
		v.Course = toCourseView(r.Course)
	}
	return v
}

type toolView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	IconURL       string   `json:"iconUrl,omitempty"`
	Link          string   `json:"link"`
	CategoryName  string   `json:"categoryName,omitempty"`
	Tags          []string `json:"tags"`
	IsRecommended bool     `json:"isRecommended"`
	SortOrder     int      `json:"sortOrder"`
	IsPublished   bool     `json:"isPublished"`
}

func toToolView(t *domain.Tool) *toolView {
	return &toolView{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		IconURL:       t.IconURL,
		Link:          t.Link,
		CategoryName:  t.CategoryName,
		Tags:          t.Tags,
		IsRecommended: t.IsRecommended,
		SortOrder:     t.SortOrder,
		IsPublished:   t.IsPublished,
	}
}

type caseView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Content     string    `json:"content,omitempty"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	AuthorName  string    `json:"authorName,omitempty"`
	Revenue     string    `json:"revenue,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCaseView(c *domain.Case) *caseView {
	return &caseView{
		ID:          c.ID,
		Title:       c.Title,
		Summary:     c.Summary,
		Content:     c.Content,
		CoverURL:    c.CoverURL,
		AuthorName:  c.AuthorName,
		Revenue:     c.Revenue,
		SortOrder:   c.SortOrder,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
	}
}

type bannerView struct {
	ID        string     `json:"id"`
	ImageURL  string     `json:"imageUrl"`
	Link      string     `json:"link,omitempty"`
	Position  string     `json:"position"`
	StartAt   *time.Time `json:"startAt,omitempty"`
	EndAt     *time.Time `json:"endAt,omitempty"`
	IsActive  bool       `json:"isActive"`
	SortOrder int        `json:"sortOrder"`
}

func toBannerView(b *domain.Banner) *bannerView {
	return &bannerView{
		ID:        b.ID,
		ImageURL:  b.ImageURL,
		Link:      b.Link,
		Position:  b.Position,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		IsActive:  b.IsActive,
		SortOrder: b.SortOrder,
	}
}

type permissionView struct {
	ID          string `json:"id"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

func toPermissionView(p *domain.Permission) *permissionView {
	return &permissionView{
		ID:          p.ID,
		Resource:    p.Resource,
		Action:      p.Action,
		Description: p.Description,
	}
}

type roleView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Permissions []*permissionView `json:"permissions"`
}

// pageOf converts a domain page into one of view items.
func pageOf[D, V any](p *domain.Page[D], conv func(D) V) *domain.Page[V] {
	out := &domain.Page[V]{
		Data:     make([]V, 0, len(p.Data)),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, item := range p.Data {
		out.Data = append(out.Data, conv(item))
	}
	return out
}
