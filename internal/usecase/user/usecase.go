package user

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	domain "users-page-service/internal/domain/user"
	pkgerrors "users-page-service/pkg/errors"
	"users-page-service/pkg/logger"
)

// Source provides the full list of user records. The upstream HTTP client
// implements it.
type Source interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
}

// Service implements the users page: one fetch per call, then pagination
// over the in-memory list.
type Service struct {
	src Source      // Source of user records
	log *zap.Logger // Logger for structured logging
}

// New creates a new users page service.
func New(src Source, log *zap.Logger) *Service {
	return &Service{src: src, log: log}
}

// ListUsers fetches all records and returns the requested page of them.
// Fetch failures are terminal for the call: the response carries the status
// code and no records.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) *ListUsersResponse {
	log := logger.WithContext(ctx, s.log)

	records, err := s.src.FetchUsers(ctx)
	if err != nil {
		code := pkgerrors.StatusCode(err)
		log.Warn("users page rendered without data", zap.Int("status", code), zap.Error(err))
		return &ListUsersResponse{
			StatusCode: code,
			Users:      []User{},
			Pagination: toPagination(domain.NewPagination(0, 1, domain.PageSize)),
		}
	}

	p := domain.NewPagination(len(records), in.Page, domain.PageSize)
	if in.Page != 0 && in.Page != p.Page {
		log.Debug("requested page clamped", zap.Int("requested", in.Page), zap.Int("page", p.Page))
	}

	current := domain.Slice(records, p)
	users := make([]User, len(current))
	for i, du := range current {
		users[i] = User{
			ID:        du.ID,
			FirstName: du.FirstName,
			LastName:  du.LastName,
			Email:     du.Email,
			Phone:     du.Phone,
			UpdatedAt: du.UpdatedAt,
		}
	}

	log.Info("users page loaded",
		zap.Int("total", p.Total),
		zap.Int("page", p.Page),
		zap.Int("total_pages", p.TotalPages),
		zap.Int("rows", len(users)),
	)

	return &ListUsersResponse{
		StatusCode: http.StatusOK,
		Users:      users,
		Pagination: toPagination(p),
	}
}

func toPagination(p domain.Pagination) Pagination {
	return Pagination{
		Total:        p.Total,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   p.TotalPages,
		VisiblePages: p.VisiblePages(),
		HasPrev:      p.HasPrev(),
		HasNext:      p.HasNext(),
		FirstPage:    p.First().Page,
		PrevPage:     p.Prev().Page,
		NextPage:     p.Next().Page,
		LastPage:     p.Last().Page,
	}
}
