// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	settingsDomain "github.com/allisson/devsync/internal/settings/domain"
)

// UserSettingsResponse represents the settings aggregate in API responses.
type UserSettingsResponse struct {
	UserID        string                               `json:"user_id"`
	Notifications settingsDomain.NotificationSettings  `json:"notifications"`
	Calls         settingsDomain.CallSettings          `json:"calls"`
	Privacy       settingsDomain.PrivacySettings       `json:"privacy"`
	Theme         settingsDomain.ThemeSettings         `json:"theme"`
	Workspace     settingsDomain.WorkspaceSettings     `json:"workspace"`
	CreatedAt     time.Time                            `json:"created_at"`
	UpdatedAt     time.Time                            `json:"updated_at"`
}

// MapSettingsToResponse converts a domain settings aggregate to an API response.
func MapSettingsToResponse(settings *settingsDomain.UserSettings) UserSettingsResponse {
	return UserSettingsResponse{
		UserID:        settings.UserID.String(),
		Notifications: settings.Notifications,
		Calls:         settings.Calls,
		Privacy:       settings.Privacy,
		Theme:         settings.Theme,
		Workspace:     settings.Workspace,
		CreatedAt:     settings.CreatedAt,
		UpdatedAt:     settings.UpdatedAt,
	}
}
