package server

import (
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"users-page-service/internal/adapter/gin/handler"
	"users-page-service/internal/adapter/gin/middleware"
	ginrouter "users-page-service/internal/adapter/gin/router"
)

// SetupGinServer creates the HTTP server of the users page
func SetupGinServer(
	pageHandler *handler.PageHandler,
	tmpl *template.Template,
	rateLimiter *middleware.RateLimiter,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(pageHandler, tmpl, rateLimiter, l)

	l.Info("users page configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
