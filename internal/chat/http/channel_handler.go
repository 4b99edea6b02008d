package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/devsync/internal/auth/http"
	"github.com/allisson/devsync/internal/chat/http/dto"
	chatUseCase "github.com/allisson/devsync/internal/chat/usecase"
	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/httputil"
	customValidation "github.com/allisson/devsync/internal/validation"
)

// ChannelHandler handles HTTP requests for workspace channels.
type ChannelHandler struct {
	channelUseCase chatUseCase.ChannelUseCase
	logger         *slog.Logger
}

// NewChannelHandler creates a new channel handler with required dependencies.
func NewChannelHandler(channelUseCase chatUseCase.ChannelUseCase, logger *slog.Logger) *ChannelHandler {
	return &ChannelHandler{
		channelUseCase: channelUseCase,
		logger:         logger,
	}
}

// CreateChannelHandler creates a workspace channel.
// POST /v1/channels - Requires the ADMIN global role.
// Returns 201 Created.
func (h *ChannelHandler) CreateChannelHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateChannelRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	channel, err := h.channelUseCase.Create(c.Request.Context(), user.ID, chatUseCase.CreateChannelInput{
		Name:      req.Name,
		Topic:     req.Topic,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapChannelToResponse(channel))
}

// GetChannelHandler retrieves a channel.
// GET /v1/channels/:id - Requires a global role (ADMIN or MEMBER).
func (h *ChannelHandler) GetChannelHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	channel, err := h.channelUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChannelToResponse(channel))
}

// ListChannelsHandler lists workspace channels ordered by name.
// GET /v1/channels - Requires a global role (ADMIN or MEMBER).
// Supports offset/limit pagination.
func (h *ChannelHandler) ListChannelsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	channels, err := h.channelUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": dto.MapChannelsToResponse(channels),
		"offset":   offset,
		"limit":    limit,
	})
}

// DeleteChannelHandler removes a channel.
// DELETE /v1/channels/:id - Requires the ADMIN global role.
func (h *ChannelHandler) DeleteChannelHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.channelUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
