package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"users-page-service/internal/adapter/gin/handler"
	"users-page-service/internal/adapter/gin/middleware"
)

// SetupRouter configures the users page router with all routes and middleware.
// rateLimiter may be nil when rate limiting is disabled.
func SetupRouter(
	pageHandler *handler.PageHandler,
	tmpl *template.Template,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "users-page",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := router.Group("/")
	limited.Use(rateLimiter.Middleware())
	{
		limited.GET("/", pageHandler.Index)
		limited.GET("/api/users", pageHandler.ListUsers)
	}

	return router
}
