// Package http provides HTTP handlers for the chat module.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/devsync/internal/auth/http"
	"github.com/allisson/devsync/internal/chat/http/dto"
	chatUseCase "github.com/allisson/devsync/internal/chat/usecase"
	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/httputil"
	membershipDomain "github.com/allisson/devsync/internal/membership/domain"
	customValidation "github.com/allisson/devsync/internal/validation"
)

// ConversationHandler handles HTTP requests for conversations, their members
// and their messages.
type ConversationHandler struct {
	conversationUseCase chatUseCase.ConversationUseCase
	logger              *slog.Logger
}

// NewConversationHandler creates a new conversation handler with required dependencies.
func NewConversationHandler(conversationUseCase chatUseCase.ConversationUseCase, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
		logger:              logger,
	}
}

// parseIDParam parses a UUID path parameter or replies with 400.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user or replies with 401.
func (h *ConversationHandler) currentUser(c *gin.Context) (uuid.UUID, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return user.ID, true
}

// CreateConversationHandler creates a conversation owned by the caller.
// POST /v1/conversations - Requires authentication.
// Returns 201 Created; the caller becomes the conversation's ADMIN member.
func (h *ConversationHandler) CreateConversationHandler(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	conversation, err := h.conversationUseCase.Create(c.Request.Context(), userID, chatUseCase.CreateConversationInput{
		Name: req.Name,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapConversationToResponse(conversation))
}

// GetConversationHandler retrieves a conversation.
// GET /v1/conversations/:id - Requires MEMBER or higher.
func (h *ConversationHandler) GetConversationHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	conversation, err := h.conversationUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConversationToResponse(conversation))
}

// ListConversationsHandler lists the caller's conversations.
// GET /v1/conversations - Requires authentication.
func (h *ConversationHandler) ListConversationsHandler(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	conversations, err := h.conversationUseCase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": dto.MapConversationsToResponse(conversations)})
}

// DeleteConversationHandler removes a conversation with its memberships and messages.
// DELETE /v1/conversations/:id - Requires conversation ADMIN.
func (h *ConversationHandler) DeleteConversationHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.conversationUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// JoinConversationHandler adds the caller as a MEMBER.
// POST /v1/conversations/:id/join - Requires authentication.
func (h *ConversationHandler) JoinConversationHandler(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.conversationUseCase.Join(c.Request.Context(), id, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// LeaveConversationHandler removes the caller's membership.
// POST /v1/conversations/:id/leave - Requires authentication.
func (h *ConversationHandler) LeaveConversationHandler(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.conversationUseCase.Leave(c.Request.Context(), id, userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembersHandler lists the conversation's members.
// GET /v1/conversations/:id/members - Requires MEMBER or higher.
func (h *ConversationHandler) ListMembersHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.conversationUseCase.ListMembers(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.MapMembersToResponse(members)})
}

// ChangeMemberRoleHandler updates a member's role.
// PUT /v1/conversations/:id/members/:user_id - Requires conversation ADMIN.
func (h *ConversationHandler) ChangeMemberRoleHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	memberID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req dto.ChangeMemberRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.conversationUseCase.ChangeMemberRole(c.Request.Context(), id, memberID, membershipDomain.Role(req.Role))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// PostMessageHandler appends a message to the conversation.
// POST /v1/conversations/:id/messages - Requires MEMBER or higher.
// Returns 201 Created with the stored message.
func (h *ConversationHandler) PostMessageHandler(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PostMessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	message, err := h.conversationUseCase.PostMessage(c.Request.Context(), id, userID, chatUseCase.PostMessageInput{
		Content: req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMessageToResponse(message))
}

// ListMessagesHandler lists conversation messages newest first.
// GET /v1/conversations/:id/messages - Requires MEMBER or higher.
// Supports offset/limit pagination.
func (h *ConversationHandler) ListMessagesHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	messages, err := h.conversationUseCase.ListMessages(c.Request.Context(), id, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": dto.MapMessagesToResponse(messages),
		"offset":   offset,
		"limit":    limit,
	})
}
