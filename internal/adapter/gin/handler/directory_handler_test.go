package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "users-page-service/internal/domain/user"
	"users-page-service/internal/usecase/directory"
	pkgerrors "users-page-service/pkg/errors"
)

// MockDirectoryUsecase is a mock implementation of directory.Usecase
type MockDirectoryUsecase struct {
	mock.Mock
}

func (m *MockDirectoryUsecase) CreateUser(ctx context.Context, req directory.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDirectoryUsecase) GetUser(ctx context.Context, req directory.GetUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDirectoryUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func setupDirectoryTest(t *testing.T) (*gin.Engine, *MockDirectoryUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockDirectoryUsecase)
	h := NewDirectoryHandler(mockUsecase, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.POST("/users", h.CreateUser)
	return r, mockUsecase
}

var ivan = domain.User{
	ID:        1,
	FirstName: "Ivan",
	LastName:  "Petrov",
	Email:     "ivan@example.com",
	Phone:     "+79990000001",
	UpdatedAt: "2024-05-06T07:08:09Z",
}

func TestDirectoryListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return([]domain.User{ivan}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":1,"firstname":"Ivan","lastname":"Petrov","email":"ivan@example.com","phone":"+79990000001","updatedAt":"2024-05-06T07:08:09Z"}]`, w.Body.String())
	})

	t.Run("Empty", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return([]domain.User{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Internal Error", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("ListUsers", mock.Anything).Return(nil, errors.New("db down"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestDirectoryGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("GetUser", mock.Anything, directory.GetUserRequest{ID: 1}).Return(&ivan, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Ivan", resp.FirstName)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, _ := setupDirectoryTest(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_id")
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("GetUser", mock.Anything, directory.GetUserRequest{ID: 9}).
			Return(nil, pkgerrors.NewNotFoundError("user", "user not found: id=9"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/9", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})
}

func TestDirectoryCreateUser(t *testing.T) {
	body := `{"firstname":"Ivan","lastname":"Petrov","email":"ivan@example.com","phone":"+79990000001"}`

	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("CreateUser", mock.Anything, directory.CreateUserRequest{
			FirstName: "Ivan",
			LastName:  "Petrov",
			Email:     "ivan@example.com",
			Phone:     "+79990000001",
		}).Return(&ivan, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":1`)
	})

	t.Run("Missing Field", func(t *testing.T) {
		r, _ := setupDirectoryTest(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"firstname":"Ivan"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Validation Error", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewValidationError("", "Email must be a valid email"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email must be a valid email")
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		r, mockUsecase := setupDirectoryTest(t)
		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewAlreadyExistsError("user", "email already exists"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already_exists")
	})
}

func TestDirectoryErrorStatus(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantLabel string
		hidden    string
	}{
		{"wrapped not found", fmt.Errorf("lookup: %w", pkgerrors.NewNotFoundError("user", "")), http.StatusNotFound, "not_found", ""},
		{"internal hides cause", pkgerrors.NewInternalError("failed to get user", errors.New("dial tcp 10.0.0.5:5432")), http.StatusInternalServerError, "internal_error", "10.0.0.5"},
		{"plain error", errors.New("sql: connection reset"), http.StatusInternalServerError, "internal_error", "connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mockUsecase := setupDirectoryTest(t)
			mockUsecase.On("GetUser", mock.Anything, directory.GetUserRequest{ID: 5}).Return(nil, tt.err)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/5", nil))

			assert.Equal(t, tt.wantCode, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantLabel, resp.Error)
			if tt.hidden != "" {
				assert.NotContains(t, w.Body.String(), tt.hidden)
			}
		})
	}
}
