package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/communitysvc/domain"
	"github.com/you/communitysvc/internal/config"
	"github.com/you/communitysvc/internal/infrastructure/auth"
	"github.com/you/communitysvc/internal/infrastructure/database"
	"github.com/you/communitysvc/internal/infrastructure/notifications"
	"github.com/you/communitysvc/internal/infrastructure/repositories"
	"github.com/you/communitysvc/internal/services"
)

// Container holds all wired dependencies.
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	UserRepo     domain.UserRepository
	RoleRepo     domain.RoleRepository
	RefreshRepo  domain.RefreshTokenRepository
	PostRepo     domain.PostRepository
	CommentRepo  domain.CommentRepository
	CategoryRepo domain.CategoryRepository
	CourseRepo   domain.CourseRepository
	RecordRepo   domain.LearningRecordRepository
	ToolRepo     domain.ToolRepository
	CaseRepo     domain.CaseRepository
	BannerRepo   domain.BannerRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	CodeSvc         domain.CodeService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService
	PostSvc         *services.PostServiceImpl
}

// NewContainer creates and initializes all dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.DB = db
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	return database.Ping(context.Background(), c.RedisClient)
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.RoleRepo = repositories.NewRoleRepository(c.DB)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(c.DB)
	c.PostRepo = repositories.NewPostRepository(c.DB)
	c.CommentRepo = repositories.NewCommentRepository(c.DB)
	c.CategoryRepo = repositories.NewCategoryRepository(c.DB)
	c.CourseRepo = repositories.NewCourseRepository(c.DB)
	c.RecordRepo = repositories.NewLearningRecordRepository(c.DB)
	c.ToolRepo = repositories.NewToolRepository(c.DB)
	c.CaseRepo = repositories.NewCaseRepository(c.DB)
	c.BannerRepo = repositories.NewBannerRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.AccessSecret,
		c.Config.RefreshSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)

	codeStore := repositories.NewRedisCodeStore(c.RedisClient)
	c.CodeSvc = services.NewSMSCodeService(codeStore, c.NotificationSvc, services.CodeConfig{
		Length:      6,
		TTL:         c.Config.CodeTTL,
		MockEnabled: c.Config.SMSMockEnabled,
		MockCode:    c.Config.SMSMockCode,
	})

	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.RefreshRepo, c.PasswordSvc, c.TokenSvc, c.CodeSvc)
	c.PostSvc = services.NewPostService(c.PostRepo)
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
