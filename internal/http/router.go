package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/http/handlers"
	"github.com/you/communitysvc/internal/http/middleware"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	PostHandler      *handlers.PostHandler
	CommentHandler   *handlers.CommentHandler
	CategoryHandler  *handlers.CategoryHandler
	CourseHandler    *handlers.CourseHandler
	ToolHandler      *handlers.ToolHandler
	CaseHandler      *handlers.CaseHandler
	BannerHandler    *handlers.BannerHandler
	RoleHandler      *handlers.RoleHandler
	DashboardHandler *handlers.DashboardHandler
	AuthMW           *middleware.AuthMiddleware
	PolicySvc        domain.PolicyService
	AllowedOrigins   []string
}

// NewRouter assembles the gin engine. All API routes live under /api;
// anything mutating content requires authentication and, where noted,
// specific roles.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/send-code", deps.AuthHandler.SendCode)
		auth.POST("/login", deps.AuthHandler.Login)
		auth.POST("/admin-login", deps.AuthHandler.AdminLogin)
		auth.POST("/refresh", deps.AuthHandler.Refresh)
		auth.POST("/logout", deps.AuthMW.Handle(), deps.AuthHandler.Logout)
	}

	// Public reads. Optional auth lets authors and moderators see their
	// hidden content through the same endpoints.
	public := api.Group("", deps.AuthMW.Optional())
	{
		public.GET("/posts", deps.PostHandler.List)
		public.GET("/posts/:id", deps.PostHandler.Get)
		public.GET("/posts/:id/comments", deps.CommentHandler.ListByPost)
		public.GET("/categories", deps.CategoryHandler.List)
		public.GET("/courses", deps.CourseHandler.List)
		public.GET("/courses/:id", deps.CourseHandler.Get)
		public.GET("/tools", deps.ToolHandler.List)
		public.GET("/cases", deps.CaseHandler.List)
		public.GET("/cases/:id", deps.CaseHandler.Get)
		public.GET("/banners", deps.BannerHandler.Active)
	}

	authed := api.Group("", deps.AuthMW.Handle())
	{
		authed.GET("/users/me", deps.UserHandler.Me)
		authed.PATCH("/users/me", deps.UserHandler.UpdateMe)

		authed.GET("/posts/mine", deps.PostHandler.ListMine)
		authed.POST("/posts", deps.PostHandler.Create)
		authed.PUT("/posts/:id", deps.PostHandler.Update)
		authed.DELETE("/posts/:id", deps.PostHandler.Delete)
		authed.POST("/posts/:id/comments", deps.CommentHandler.Create)
		authed.DELETE("/comments/:id", deps.CommentHandler.Delete)

		authed.GET("/learning-records/me", deps.CourseHandler.MyRecords)
		authed.POST("/learning-records", deps.CourseHandler.UpsertRecord)
	}

	staff := api.Group("", deps.AuthMW.Handle(),
		middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleModerator))
	{
		staff.GET("/admin/posts", deps.PostHandler.ListAdmin)
		staff.PATCH("/admin/posts/:id/review", deps.PostHandler.Review)
		staff.GET("/dashboard/stats",
			middleware.RequirePermission(deps.PolicySvc, "dashboard", "read"),
			deps.DashboardHandler.Stats)
	}

	admin := api.Group("", deps.AuthMW.Handle(),
		middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin))
	{
		admin.GET("/users", deps.UserHandler.List)
		admin.PATCH("/users/:id/status", deps.UserHandler.UpdateStatus)

		admin.POST("/admin/categories", deps.CategoryHandler.Create)
		admin.PUT("/admin/categories/:id", deps.CategoryHandler.Update)
		admin.DELETE("/admin/categories/:id", deps.CategoryHandler.Delete)

		admin.POST("/admin/courses", deps.CourseHandler.Create)
		admin.PUT("/admin/courses/:id", deps.CourseHandler.Update)
		admin.DELETE("/admin/courses/:id", deps.CourseHandler.Delete)

		admin.GET("/admin/tools", deps.ToolHandler.ListAdmin)
		admin.POST("/admin/tools", deps.ToolHandler.Create)
		admin.PUT("/admin/tools/:id", deps.ToolHandler.Update)
		admin.DELETE("/admin/tools/:id", deps.ToolHandler.Delete)

		admin.GET("/admin/cases", deps.CaseHandler.ListAdmin)
		admin.POST("/admin/cases", deps.CaseHandler.Create)
		admin.PUT("/admin/cases/:id", deps.CaseHandler.Update)
		admin.DELETE("/admin/cases/:id", deps.CaseHandler.Delete)

		admin.GET("/admin/banners", deps.BannerHandler.List)
		admin.POST("/admin/banners", deps.BannerHandler.Create)
		admin.PUT("/admin/banners/:id", deps.BannerHandler.Update)
		admin.DELETE("/admin/banners/:id", deps.BannerHandler.Delete)

		admin.GET("/roles", deps.RoleHandler.List)
		admin.GET("/roles/permissions", deps.RoleHandler.Permissions)
	}

	super := api.Group("", deps.AuthMW.Handle(), middleware.RequireRoles(domain.RoleSuperAdmin))
	{
		super.PATCH("/users/:id/roles", deps.UserHandler.UpdateRoles)
		super.POST("/admin/roles", deps.RoleHandler.Create)
		super.PUT("/admin/roles/:id", deps.RoleHandler.Update)
		super.DELETE("/admin/roles/:id", deps.RoleHandler.Delete)
		super.PATCH("/admin/roles/:id/permissions", deps.RoleHandler.ReplacePermissions)
	}

	return r
}
