package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries all runtime settings. Everything is environment-driven;
// the RBAC seed matrix is the one file-based input (see seed.go).
type Config struct {
	Port    string
	GinMode string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Access and refresh tokens are signed with distinct secrets.
	AccessSecret  string
	RefreshSecret string
	JWTIssuer     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	CodeTTL time.Duration

	SMSMockEnabled bool
	SMSMockCode    string
	TwilioSID      string
	TwilioToken    string
	TwilioFrom     string

	CasbinModelPath string
	RBACSeedPath    string

	// Bootstrap super admin account. Creation is skipped when the
	// password is left empty.
	AdminUsername string
	AdminPassword string

	AllowedOrigins []string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k, def string) (time.Duration, error) {
	d, err := time.ParseDuration(env(k, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}

// Load builds the configuration from the environment.
func Load() (*Config, error) {
	accessTTL, err := envDuration("JWT_ACCESS_TTL", "15m")
	if err != nil {
		return nil, err
	}
	refreshTTL, err := envDuration("JWT_REFRESH_TTL", "168h")
	if err != nil {
		return nil, err
	}
	codeTTL, err := envDuration("SMS_CODE_TTL", "300s")
	if err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(env("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	accessSecret := env("JWT_ACCESS_SECRET", "")
	refreshSecret := env("JWT_REFRESH_SECRET", "")
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	origins := []string{}
	for _, o := range strings.Split(env("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:            env("PORT", "3000"),
		GinMode:         env("GIN_MODE", "debug"),
		DSN:             env("DATABASE_DSN", "host=localhost user=postgres dbname=communitysvc sslmode=disable"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   env("REDIS_PASSWORD", ""),
		RedisDB:         redisDB,
		AccessSecret:    accessSecret,
		RefreshSecret:   refreshSecret,
		JWTIssuer:       env("JWT_ISSUER", "communitysvc"),
		AccessTTL:       accessTTL,
		RefreshTTL:      refreshTTL,
		CodeTTL:         codeTTL,
		SMSMockEnabled:  env("SMS_MOCK_ENABLED", "true") == "true",
		SMSMockCode:     env("SMS_MOCK_CODE", "123456"),
		TwilioSID:       env("TWILIO_ACCOUNT_SID", ""),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", ""),
		CasbinModelPath: env("CASBIN_MODEL_PATH", "config/rbac_model.conf"),
		RBACSeedPath:    env("RBAC_SEED_PATH", "config/rbac_seed.yml"),
		AdminUsername:   env("ADMIN_USERNAME", "admin"),
		AdminPassword:   env("ADMIN_PASSWORD", ""),
		AllowedOrigins:  origins,
	}, nil
}
