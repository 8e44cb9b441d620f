package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"users-page-service/internal/adapter/cache"
	"users-page-service/internal/adapter/db/gormstore"
	"users-page-service/internal/adapter/gin/handler"
	"users-page-service/internal/adapter/gin/router"
	"users-page-service/internal/adapter/repository/cached"
	"users-page-service/internal/config"
	"users-page-service/internal/devseed"
	"users-page-service/internal/infrastructure"
	"users-page-service/internal/usecase/directory"
	redisclient "users-page-service/pkg/redis"
)

// container holds the users API dependencies
type container struct {
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Router      *gin.Engine
}

func newContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c := &container{DB: db}

	if err := gormstore.Migrate(db); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	c.RedisClient = rdb

	// The list cache is only wired when Redis is enabled
	var listCache cache.UserListCache
	if rdb != nil {
		listCache = cache.NewRedisUserListCache(rdb.Client, time.Duration(cfg.Redis.CacheTTL)*time.Second, l)
	}

	dbRepo := gormstore.NewUserRepo(db, l)
	repo := cached.NewUserRepository(dbRepo, listCache, l)

	if _, err := devseed.Run(ctx, repo, cfg.DB.SeedUsers, l); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	c.Router = router.SetupDirectoryRouter(handler.NewDirectoryHandler(directory.New(repo, l), l), l)
	return c, nil
}

// Close closes all resources held by the container
func (c *container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if err := infrastructure.CloseDatabase(c.DB); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}

	return errors.Join(errs...)
}
