package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"users-page-service/api/swagger"
	"users-page-service/internal/adapter/gin/handler"
	"users-page-service/internal/adapter/gin/middleware"
)

// SetupDirectoryRouter configures the users API router
func SetupDirectoryRouter(h *handler.DirectoryHandler, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "users-api",
		})
	})

	router.GET(swagger.DocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", swagger.UsersDoc)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL(swagger.DocPath),
	)))

	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.POST("", h.CreateUser)
	}

	return router
}
