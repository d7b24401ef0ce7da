package handler

import (
	"net/http"

	"messagely/internal/middleware"
	"messagely/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves user listings, profiles and message lists
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// List => {users: [{username, first_name, last_name}, ...]}
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Get => {user: {username, first_name, last_name, phone, join_at, last_login_at}}
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// MessagesFrom => {messages: [{id, to_user, body, sent_at, read_at}, ...]}
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	messages, err := h.service.MessagesFrom(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MessagesTo => {messages: [{id, from_user, body, sent_at, read_at}, ...]}
func (h *UserHandler) MessagesTo(c *gin.Context) {
	messages, err := h.service.MessagesTo(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// RegisterUserRoutes registers user routes behind authMW; per-user routes are self-only
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	usersGroup := rg.Group("/users", authMW)
	{
		usersGroup.GET("", h.List)

		self := usersGroup.Group("/:username", middleware.EnsureCorrectUser("username"))
		self.GET("", h.Get)
		self.GET("/to", h.MessagesTo)
		self.GET("/from", h.MessagesFrom)
	}
}
