package router

import (
	"context"
	"net/http"

	"messagely/internal/handler"
	"messagely/internal/middleware"
	"messagely/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports storage health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the HTTP layer is built from
type Deps struct {
	Auth     service.AuthService
	Users    service.UserService
	Messages service.MessageService
	Store    Pinger
}

// New builds the gin engine with every route mounted
func New(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS())

	jwtAuthMW := middleware.JWTAuthMiddleware(d.Auth)

	api := router.Group("/")
	handler.NewAuthHandler(d.Auth).RegisterAuthRoutes(api)
	handler.NewUserHandler(d.Users).RegisterUserRoutes(api, jwtAuthMW)
	handler.NewMessageHandler(d.Messages).RegisterMessageRoutes(api, jwtAuthMW)

	router.GET("/health", func(c *gin.Context) {
		if err := d.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
