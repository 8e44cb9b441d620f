package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "users-page-service/internal/domain/user"
	"users-page-service/internal/usecase/directory"
	"users-page-service/pkg/logger"
)

// DirectoryHandler serves the users API the page reads from
type DirectoryHandler struct {
	uc  directory.Usecase
	log *zap.Logger
}

// NewDirectoryHandler creates a new DirectoryHandler instance
func NewDirectoryHandler(uc directory.Usecase, log *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

func newUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		UpdatedAt: u.UpdatedAt,
	}
}

// ListUsers handles GET /users
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = newUserResponse(u)
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser handles GET /users/:id
func (h *DirectoryHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid user ID", zap.String("id", idStr))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a valid number",
		})
		return
	}

	u, err := h.uc.GetUser(c.Request.Context(), directory.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(*u))
}

// CreateUser handles POST /users
func (h *DirectoryHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), directory.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(*u))
}

// errorLabels names the error field of the JSON body per status code
var errorLabels = map[codes.Code]string{
	codes.InvalidArgument: "validation_error",
	codes.NotFound:        "not_found",
	codes.AlreadyExists:   "already_exists",
}

// handleError converts usecase errors to HTTP responses using their gRPC status
func (h *DirectoryHandler) handleError(c *gin.Context, err error) {
	st, _ := status.FromError(err)
	httpStatus := runtime.HTTPStatusFromCode(st.Code())

	label, known := errorLabels[st.Code()]
	if !known {
		logger.WithContext(c.Request.Context(), h.log).Error("request failed",
			zap.Error(err),
			zap.String("code", st.Code().String()),
		)
		c.JSON(httpStatus, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	c.JSON(httpStatus, ErrorResponse{Error: label, Message: st.Message()})
}
