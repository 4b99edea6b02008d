// Package http provides HTTP handlers for user settings.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/devsync/internal/auth/http"
	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/httputil"
	settingsDomain "github.com/allisson/devsync/internal/settings/domain"
	"github.com/allisson/devsync/internal/settings/http/dto"
	settingsUseCase "github.com/allisson/devsync/internal/settings/usecase"
)

// SettingsHandler handles HTTP requests for user settings. All routes are
// owner-only: the authenticated user must match the user_id path parameter.
type SettingsHandler struct {
	settingsUseCase settingsUseCase.SettingsUseCase
	logger          *slog.Logger
}

// NewSettingsHandler creates a new settings handler with required dependencies.
func NewSettingsHandler(settingsUseCase settingsUseCase.SettingsUseCase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsUseCase: settingsUseCase,
		logger:          logger,
	}
}

// ownerID parses the user_id path parameter and checks it against the
// authenticated user. Replies with 401, 400, or 403 on failure.
func (h *SettingsHandler) ownerID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}

	pathID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "invalid user_id format",
		})
		return uuid.Nil, false
	}

	if pathID != user.ID {
		httputil.HandleErrorGin(c, apperrors.ErrForbidden, h.logger)
		return uuid.Nil, false
	}
	return pathID, true
}

// InitializeSettingsHandler creates the default settings row for the user.
// POST /v1/users/:user_id/settings - Owner only.
// Returns 201 Created, or 409 Conflict when the row already exists.
func (h *SettingsHandler) InitializeSettingsHandler(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	settings, err := h.settingsUseCase.Initialize(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSettingsToResponse(settings))
}

// GetSettingsHandler retrieves the user's settings aggregate.
// GET /v1/users/:user_id/settings - Owner only.
func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	settings, err := h.settingsUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToResponse(settings))
}

// UpdateSectionHandler replaces one section of the settings aggregate.
// PUT /v1/users/:user_id/settings/:section - Owner only.
// The body is the section payload; unknown sections return 422.
func (h *SettingsHandler) UpdateSectionHandler(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	section := settingsDomain.Section(c.Param("section"))
	settings, err := h.settingsUseCase.UpdateSection(c.Request.Context(), userID, section, payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToResponse(settings))
}

// ResetSettingsHandler restores the user's settings to defaults.
// POST /v1/users/:user_id/settings/reset - Owner only.
func (h *SettingsHandler) ResetSettingsHandler(c *gin.Context) {
	userID, ok := h.ownerID(c)
	if !ok {
		return
	}

	settings, err := h.settingsUseCase.Reset(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToResponse(settings))
}
