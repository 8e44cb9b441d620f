// Package directory implements the users API backing the users page.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "users-page-service/internal/domain/user"
	pkgerrors "users-page-service/pkg/errors"
	"users-page-service/pkg/logger"
	"users-page-service/pkg/security"
)

// Repository defines the data access the directory needs.
// GetByID returns a *pkgerrors.NotFoundError for unknown IDs;
// GetByEmail returns nil, nil when no user has the email.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// Service implements the directory operations
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new directory Service
func New(r Repository, log *zap.Logger) *Service {
	validate := validator.New()
	if err := security.RegisterValidations(validate); err != nil {
		panic(fmt.Sprintf("register validations: %v", err))
	}
	return &Service{repo: r, log: log, validate: validate}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return pkgerrors.NewValidationError("", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		case "personname":
			messages = append(messages, fmt.Sprintf("%s must be a valid name", e.Field()))
		case "phone":
			messages = append(messages, fmt.Sprintf("%s must be a valid phone number", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
}

// CreateUser validates the request, checks email uniqueness and stores the user.
func (uc *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*domain.User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", existing.ID))
		return nil, pkgerrors.NewAlreadyExistsError("user", "email already exists")
	}

	created, err := uc.repo.Create(ctx, &domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return created, nil
}

// GetUser retrieves a user by ID
func (uc *Service) GetUser(ctx context.Context, in GetUserRequest) (*domain.User, error) {
	if in.ID <= 0 {
		logger.WithContext(ctx, uc.log).Warn("get user validation failed", zap.Int64("id", in.ID))
		return nil, pkgerrors.NewValidationError("id", "must be a positive number")
	}

	return uc.repo.GetByID(ctx, in.ID)
}

// ListUsers returns every user ordered by ID
func (uc *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.repo.ListAll(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}
