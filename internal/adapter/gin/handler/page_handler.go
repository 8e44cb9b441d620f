package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"users-page-service/internal/adapter/gin/locale"
	"users-page-service/internal/adapter/gin/templates"
	"users-page-service/internal/usecase/user"
	"users-page-service/pkg/logger"
)

var pageRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "users_page_renders_total",
	Help: "Users page renders by upstream status code",
}, []string{"status"})

// PageHandler serves the users page and its JSON view
type PageHandler struct {
	uc      user.Usecase
	locales *locale.Matcher
	log     *zap.Logger
}

// NewPageHandler creates a new PageHandler instance
func NewPageHandler(uc user.Usecase, locales *locale.Matcher, log *zap.Logger) *PageHandler {
	return &PageHandler{
		uc:      uc,
		locales: locales,
		log:     log,
	}
}

// PageQuery is the query string of the page and the JSON view
type PageQuery struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

// pageView is the data of the users page template
type pageView struct {
	Lang       string
	Messages   locale.Messages
	Banner     string
	Users      []user.User
	Pagination paginationView
}

type paginationView struct {
	First pageControl
	Prev  pageControl
	Items []pageItem
	Next  pageControl
	Last  pageControl
}

type pageControl struct {
	Name     string
	Label    string
	Target   int
	Disabled bool
}

type pageItem struct {
	Number int
	Active bool
}

// UserResponse represents the JSON view of one user
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	UpdatedAt string `json:"updatedAt"`
}

// Pagination represents pagination information
type Pagination struct {
	Total        int   `json:"total"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"total_pages"`
	VisiblePages []int `json:"visible_pages"`
	HasPrev      bool  `json:"has_prev"`
	HasNext      bool  `json:"has_next"`
}

// ListUsersResponse represents the JSON view of a users page
type ListUsersResponse struct {
	StatusCode int            `json:"status_code"`
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	resp := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{Page: h.page(c)})
	tag, msgs := h.locales.Match(c.GetHeader("Accept-Language"))

	view := pageView{
		Lang:     tag.String(),
		Messages: msgs,
	}

	status := http.StatusOK
	if resp.OK() {
		view.Users = resp.Users
		view.Pagination = newPaginationView(resp.Pagination, msgs)
	} else {
		view.Banner = msgs.LoadError(resp.StatusCode)
		// the banner still renders; 502 keeps the upstream failure visible to
		// clients and to the render metric instead of a plain 200
		status = http.StatusBadGateway
	}

	pageRendersTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	c.HTML(status, templates.UsersPage, view)
}

// ListUsers handles GET /api/users
func (h *PageHandler) ListUsers(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid page query", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{Page: q.Page})

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Phone:     u.Phone,
			UpdatedAt: u.UpdatedAt,
		}
	}

	status := http.StatusOK
	if !resp.OK() {
		status = http.StatusBadGateway
	}

	c.JSON(status, ListUsersResponse{
		StatusCode: resp.StatusCode,
		Users:      users,
		Pagination: Pagination{
			Total:        resp.Pagination.Total,
			Page:         resp.Pagination.Page,
			Limit:        resp.Pagination.Limit,
			TotalPages:   resp.Pagination.TotalPages,
			VisiblePages: resp.Pagination.VisiblePages,
			HasPrev:      resp.Pagination.HasPrev,
			HasNext:      resp.Pagination.HasNext,
		},
	})
}

// page reads the requested page for the HTML view. A malformed value
// falls back to the first page instead of failing the render.
func (h *PageHandler) page(c *gin.Context) int {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Debug("ignoring invalid page query",
			zap.String("page", c.Query("page")),
			zap.Error(err),
		)
		return 1
	}
	return q.Page
}

func newPaginationView(p user.Pagination, msgs locale.Messages) paginationView {
	items := make([]pageItem, len(p.VisiblePages))
	for i, n := range p.VisiblePages {
		items[i] = pageItem{Number: n, Active: n == p.Page}
	}

	return paginationView{
		First: pageControl{Name: "first", Label: msgs.First, Target: p.FirstPage, Disabled: !p.HasPrev},
		Prev:  pageControl{Name: "prev", Label: msgs.Prev, Target: p.PrevPage, Disabled: !p.HasPrev},
		Items: items,
		Next:  pageControl{Name: "next", Label: msgs.Next, Target: p.NextPage, Disabled: !p.HasNext},
		Last:  pageControl{Name: "last", Label: msgs.Last, Target: p.LastPage, Disabled: !p.HasNext},
	}
}
