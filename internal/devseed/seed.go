// Package devseed fills an empty users directory with deterministic sample users.
package devseed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "users-page-service/internal/domain/user"
)

// Store is the part of the users repository the seeder needs.
type Store interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

var (
	firstNames = []string{"Ivan", "Anna", "Petr", "Olga", "Sergey", "Maria", "Dmitry", "Elena", "Alexey", "Natalia"}
	lastNames  = []string{"Ivanov", "Smirnova", "Kuznetsov", "Popova", "Vasiliev", "Petrova", "Sokolov", "Mikhailova", "Novikov", "Fedorova"}
)

// SampleUser returns the i-th sample user (1-based).
func SampleUser(i int) *domain.User {
	return &domain.User{
		FirstName: firstNames[(i-1)%len(firstNames)],
		LastName:  lastNames[((i-1)/len(firstNames))%len(lastNames)],
		Email:     fmt.Sprintf("user%03d@example.com", i),
		Phone:     fmt.Sprintf("+7900%07d", i),
	}
}

// Run inserts n sample users when the store is empty. It returns the number inserted.
func Run(ctx context.Context, store Store, n int, log *zap.Logger) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	existing, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		log.Info("users directory already populated, skipping seed", zap.Int64("count", existing))
		return 0, nil
	}

	for i := 1; i <= n; i++ {
		if _, err := store.Create(ctx, SampleUser(i)); err != nil {
			return i - 1, fmt.Errorf("seed user %d: %w", i, err)
		}
	}

	log.Info("seeded users directory", zap.Int("count", n))
	return n, nil
}
