package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"users-page-service/internal/adapter/gin/handler"
	"users-page-service/internal/adapter/gin/locale"
	"users-page-service/internal/adapter/gin/templates"
	domain "users-page-service/internal/domain/user"
	"users-page-service/internal/usecase/directory"
	"users-page-service/internal/usecase/user"
	"users-page-service/pkg/logger"
)

type fixedSource struct {
	users []domain.User
}

func (s fixedSource) FetchUsers(context.Context) ([]domain.User, error) {
	return s.users, nil
}

type memoryRepo struct {
	users []domain.User
}

func (r *memoryRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	created := *u
	created.ID = int64(len(r.users) + 1)
	r.users = append(r.users, created)
	return &created, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) ListAll(context.Context) ([]domain.User, error) {
	return r.users, nil
}

func (r *memoryRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func setupPageRouter(t *testing.T) http.Handler {
	log := zaptest.NewLogger(t)

	users := make([]domain.User, 25)
	for i := range users {
		users[i] = domain.User{ID: int64(i + 1)}
	}

	locales, err := locale.NewMatcher("en")
	require.NoError(t, err)
	tmpl, err := templates.Parse()
	require.NoError(t, err)

	h := handler.NewPageHandler(user.New(fixedSource{users: users}, log), locales, log)
	return SetupRouter(h, tmpl, nil, log)
}

func TestSetupRouter_Routes(t *testing.T) {
	r := setupPageRouter(t)

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"page", "/", http.StatusOK, "<table"},
		{"second page", "/?page=2", http.StatusOK, `<li class="page-item active"><a class="page-link" href="?page=2">2</a></li>`},
		{"json view", "/api/users?page=2", http.StatusOK, `"total_pages":2`},
		{"health", "/health", http.StatusOK, "healthy"},
		{"metrics", "/metrics", http.StatusOK, "users_page_renders_total"},
		{"unknown", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
		})
	}
}

func TestSetupDirectoryRouter_Routes(t *testing.T) {
	log := zaptest.NewLogger(t)
	repo := &memoryRepo{users: []domain.User{{ID: 1, FirstName: "Ivan", Email: "ivan@example.com"}}}
	r := SetupDirectoryRouter(handler.NewDirectoryHandler(directory.New(repo, log), log), log)

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var users []handler.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		assert.Len(t, users, 1)
	})

	t.Run("get", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"firstname":"Ivan"`)
	})

	t.Run("openapi document", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-docs/users.swagger.json", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "2.0", doc["swagger"])
	})

	t.Run("swagger ui", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "swagger-ui")
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "users-api")
	})
}
