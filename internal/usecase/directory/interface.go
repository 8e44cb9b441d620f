package directory

import (
	"context"

	domain "users-page-service/internal/domain/user"
)

// Usecase defines the directory operations exposed by the users API
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, in GetUserRequest) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
