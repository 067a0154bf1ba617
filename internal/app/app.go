package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/communitysvc/internal/config"
	httpx "github.com/you/communitysvc/internal/http"
	"github.com/you/communitysvc/internal/http/handlers"
	"github.com/you/communitysvc/internal/http/middleware"
)

// Run wires the application together and serves it until the listener
// fails.
func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := context.Background()
	seed, err := config.LoadRBACSeed(cfg.RBACSeedPath)
	if err != nil {
		return err
	}
	if err := seedRBAC(ctx, c, seed); err != nil {
		return err
	}
	if err := seedAdmin(ctx, c); err != nil {
		return err
	}

	authMW := middleware.NewAuthMiddleware(c.AuthSvc)
	r := httpx.NewRouter(httpx.RouterDeps{
		AuthHandler:      handlers.NewAuthHandler(c.AuthSvc),
		UserHandler:      handlers.NewUserHandler(c.UserRepo, c.PolicySvc),
		PostHandler:      handlers.NewPostHandler(c.PostSvc),
		CommentHandler:   handlers.NewCommentHandler(c.CommentRepo, c.PostRepo),
		CategoryHandler:  handlers.NewCategoryHandler(c.CategoryRepo),
		CourseHandler:    handlers.NewCourseHandler(c.CourseRepo, c.RecordRepo),
		ToolHandler:      handlers.NewToolHandler(c.ToolRepo),
		CaseHandler:      handlers.NewCaseHandler(c.CaseRepo),
		BannerHandler:    handlers.NewBannerHandler(c.BannerRepo),
		RoleHandler:      handlers.NewRoleHandler(c.RoleRepo, c.PolicySvc),
		DashboardHandler: handlers.NewDashboardHandler(c.UserRepo, c.PostRepo, c.CourseRepo, c.ToolRepo),
		AuthMW:           authMW,
		PolicySvc:        c.PolicySvc,
		AllowedOrigins:   cfg.AllowedOrigins,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
