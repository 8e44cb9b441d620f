package cached

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"users-page-service/internal/adapter/cache"
	domain "users-page-service/internal/domain/user"
	"users-page-service/internal/usecase/directory"
)

// UserRepository implements directory.Repository with a cached users list.
// It wraps a persistent repository (DB) and a list cache.
type UserRepository struct {
	dbRepo directory.Repository
	cache  cache.UserListCache
	log    *zap.Logger
	group  singleflight.Group

	// generation is bumped on every write; a load only caches what it read
	// if no write happened in between
	generation atomic.Uint64
}

// NewUserRepository creates a new instance of UserRepository.
// A nil cache disables caching but keeps list loads deduplicated.
func NewUserRepository(dbRepo directory.Repository, c cache.UserListCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  c,
		log:    log,
	}
}

// Create stores the user and invalidates the cached list.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created, err := r.dbRepo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	r.generation.Add(1)
	r.group.Forget(cache.ListKey)

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx); err != nil {
			r.log.Warn("failed to invalidate cache after create", zap.Int64("id", created.ID), zap.Error(err))
		}
	}

	return created, nil
}

// GetByID delegates to the DB repository.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.dbRepo.GetByID(ctx, id)
}

// GetByEmail delegates to the DB repository.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// Count delegates to the DB repository.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.dbRepo.Count(ctx)
}

// ListAll returns the users list using the Cache-Aside pattern.
func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	if r.cache != nil {
		users, err := r.cache.Get(ctx)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Error(err))
		} else if users != nil {
			return users, nil
		}
	}

	// Cache miss or cache disabled; only one load reaches the database.
	// The load outlives any single caller, so it runs detached from ctx.
	ch := r.group.DoChan(cache.ListKey, func() (any, error) {
		return r.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			r.log.Debug("users list load shared between callers")
		}
		return res.Val.([]domain.User), nil
	}
}

func (r *UserRepository) load(ctx context.Context) ([]domain.User, error) {
	gen := r.generation.Load()

	users, err := r.dbRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if r.cache == nil || r.generation.Load() != gen {
		return users, nil
	}

	if err := r.cache.Set(ctx, users); err != nil {
		r.log.Warn("failed to cache users", zap.Error(err))
		return users, nil
	}

	// a write that landed during Set may have invalidated before it
	if r.generation.Load() != gen {
		if err := r.cache.Invalidate(ctx); err != nil {
			r.log.Warn("failed to drop stale users list", zap.Error(err))
		}
	}

	return users, nil
}
