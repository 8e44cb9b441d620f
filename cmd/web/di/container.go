package di

import (
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"users-page-service/internal/adapter/gin/handler"
	"users-page-service/internal/adapter/gin/locale"
	"users-page-service/internal/adapter/gin/middleware"
	"users-page-service/internal/adapter/gin/templates"
	"users-page-service/internal/adapter/upstream"
	"users-page-service/internal/config"
	"users-page-service/internal/infrastructure"
	"users-page-service/internal/usecase/user"
	redisclient "users-page-service/pkg/redis"
)

// Container holds all dependencies of the users page
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client
	UserUC      user.Usecase
	Templates   *template.Template
	RateLimiter *middleware.RateLimiter
	PageHandler *handler.PageHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	locales, err := locale.NewMatcher(cfg.UI.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize locales: %w", err)
	}

	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Redis is optional; a nil client leaves the limiter out
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	var rateLimiter *middleware.RateLimiter
	if rdb != nil {
		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	source := upstream.NewClient(upstream.Config{
		URL:     cfg.Upstream.UsersURL,
		Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
	}, l)

	userUC := user.New(source, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		RedisClient: rdb,
		UserUC:      userUC,
		Templates:   tmpl,
		RateLimiter: rateLimiter,
		PageHandler: handler.NewPageHandler(userUC, locales, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}
