package handler

import (
	"net/http"
	"strconv"

	"messagely/internal/apperror"
	"messagely/internal/middleware"
	"messagely/internal/model"
	"messagely/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// MessageHandler handles message requests
type MessageHandler struct {
	service service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(s service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// messageID parses :id; a malformed id can never name a message, so it is a 404
func messageID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.NotFound("No such message: " + c.Param("id"))
	}
	return id, nil
}

// Get => {message: {id, body, sent_at, read_at, from_user, to_user}}
func (h *MessageHandler) Get(c *gin.Context) {
	id, err := messageID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, err := h.service.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Create {to_username, body} => {message: {id, from_username, to_username, body, sent_at}}
func (h *MessageHandler) Create(c *gin.Context) {
	var req model.CreateMessageRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondError(c, apperror.Validation("Must specify recipient and must include body"))
		return
	}

	msg, err := h.service.Create(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// MarkRead => {message: {id, read_at}}
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, err := messageID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	receipt, err := h.service.MarkRead(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": receipt})
}

// RegisterMessageRoutes registers message routes behind authMW
func (h *MessageHandler) RegisterMessageRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	messagesGroup := rg.Group("/messages", authMW)
	{
		messagesGroup.POST("", h.Create)
		messagesGroup.GET("/:id", h.Get)
		messagesGroup.POST("/:id/read", h.MarkRead)
	}
}
