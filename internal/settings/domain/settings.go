// Package domain contains the user settings aggregate.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/errors"
)

// Settings errors.
var (
	ErrSettingsNotFound     = errors.Wrap(errors.ErrNotFound, "settings not found")
	ErrSettingsAlreadyExist = errors.Wrap(errors.ErrConflict, "settings already exist")
	ErrUnknownSection       = errors.Wrap(errors.ErrInvalidInput, "unknown settings section")
)

// Section identifies one updatable part of the settings aggregate.
type Section string

// Settings sections.
const (
	SectionNotifications Section = "notifications"
	SectionCalls         Section = "calls"
	SectionPrivacy       Section = "privacy"
	SectionTheme         Section = "theme"
	SectionWorkspace     Section = "workspace"
)

// Screen share quality levels.
const (
	ScreenShareQualityLow    = "LOW"
	ScreenShareQualityMedium = "MEDIUM"
	ScreenShareQualityHigh   = "HIGH"
)

// Direct message permission values.
const (
	DirectMessagesEveryone    = "EVERYONE"
	DirectMessagesTeamMembers = "TEAM_MEMBERS"
	DirectMessagesNobody      = "NOBODY"
)

// Profile visibility values.
const (
	ProfileVisibilityPublic   = "PUBLIC"
	ProfileVisibilityTeamOnly = "TEAM_ONLY"
	ProfileVisibilityPrivate  = "PRIVATE"
)

// Theme mode values.
const (
	ThemeModeLight  = "LIGHT"
	ThemeModeDark   = "DARK"
	ThemeModeSystem = "SYSTEM"
)

// Font size values.
const (
	FontSizeSmall  = "SMALL"
	FontSizeMedium = "MEDIUM"
	FontSizeLarge  = "LARGE"
)

// Density values.
const (
	DensityCompact     = "COMPACT"
	DensityComfortable = "COMFORTABLE"
	DensitySpacious    = "SPACIOUS"
)

// NotificationSettings controls which events notify the user.
type NotificationSettings struct {
	DesktopEnabled         bool     `json:"desktop_enabled"`
	MobileEnabled          bool     `json:"mobile_enabled"`
	EmailEnabled           bool     `json:"email_enabled"`
	MentionsEnabled        bool     `json:"mentions_enabled"`
	DirectMessagesEnabled  bool     `json:"direct_messages_enabled"`
	ChannelMessagesEnabled bool     `json:"channel_messages_enabled"`
	ThreadsEnabled         bool     `json:"threads_enabled"`
	ReactionsEnabled       bool     `json:"reactions_enabled"`
	RemindersEnabled       bool     `json:"reminders_enabled"`
	Keywords               []string `json:"keywords"`
}

// CallSettings holds audio and video call preferences.
type CallSettings struct {
	MicrophoneID             string `json:"microphone_id"`
	CameraID                 string `json:"camera_id"`
	SpeakerID                string `json:"speaker_id"`
	NoiseCancellationEnabled bool   `json:"noise_cancellation_enabled"`
	AutoJoinAudio            bool   `json:"auto_join_audio"`
	AutoJoinVideo            bool   `json:"auto_join_video"`
	ScreenShareQuality       string `json:"screen_share_quality"`
	BackgroundBlurEnabled    bool   `json:"background_blur_enabled"`
}

// PrivacySettings controls profile and presence visibility.
type PrivacySettings struct {
	ShowOnlineStatus        bool   `json:"show_online_status"`
	AllowDirectMessages     string `json:"allow_direct_messages"`
	ProfileVisibility       string `json:"profile_visibility"`
	SearchableByEmail       bool   `json:"searchable_by_email"`
	ReadReceiptsEnabled     bool   `json:"read_receipts_enabled"`
	TypingIndicatorsEnabled bool   `json:"typing_indicators_enabled"`
}

// ThemeSettings holds appearance preferences.
type ThemeSettings struct {
	Mode        string `json:"mode"`
	AccentColor string `json:"accent_color"`
	FontSize    string `json:"font_size"`
	Density     string `json:"density"`
}

// WorkspaceSettings holds workspace layout and composer preferences.
type WorkspaceSettings struct {
	DefaultChannel         string   `json:"default_channel"`
	SidebarOrder           []string `json:"sidebar_order"`
	ShowChannelSuggestions bool     `json:"show_channel_suggestions"`
	AutoMarkAsRead         bool     `json:"auto_mark_as_read"`
	EnterToSend            bool     `json:"enter_to_send"`
	FormatMessages         bool     `json:"format_messages"`
}

// UserSettings is the per-user settings aggregate. One row per user.
type UserSettings struct {
	UserID        uuid.UUID            `json:"user_id"`
	Notifications NotificationSettings `json:"notifications"`
	Calls         CallSettings         `json:"calls"`
	Privacy       PrivacySettings      `json:"privacy"`
	Theme         ThemeSettings        `json:"theme"`
	Workspace     WorkspaceSettings    `json:"workspace"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID: userID,
		Notifications: NotificationSettings{
			DesktopEnabled:        true,
			MobileEnabled:         true,
			MentionsEnabled:       true,
			DirectMessagesEnabled: true,
			ThreadsEnabled:        true,
			RemindersEnabled:      true,
			Keywords:              []string{},
		},
		Calls: CallSettings{
			MicrophoneID:             "default",
			CameraID:                 "default",
			SpeakerID:                "default",
			NoiseCancellationEnabled: true,
			AutoJoinAudio:            true,
			ScreenShareQuality:       ScreenShareQualityMedium,
		},
		Privacy: PrivacySettings{
			ShowOnlineStatus:        true,
			AllowDirectMessages:     DirectMessagesEveryone,
			ProfileVisibility:       ProfileVisibilityPublic,
			SearchableByEmail:       true,
			ReadReceiptsEnabled:     true,
			TypingIndicatorsEnabled: true,
		},
		Theme: ThemeSettings{
			Mode:        ThemeModeLight,
			AccentColor: "#2563EB",
			FontSize:    FontSizeMedium,
			Density:     DensityComfortable,
		},
		Workspace: WorkspaceSettings{
			DefaultChannel:         "general",
			SidebarOrder:           []string{"channels", "direct-messages", "threads"},
			ShowChannelSuggestions: true,
			EnterToSend:            true,
			FormatMessages:         true,
		},
	}
}

// ValidSection reports whether s names a known settings section.
func ValidSection(s Section) bool {
	switch s {
	case SectionNotifications, SectionCalls, SectionPrivacy, SectionTheme, SectionWorkspace:
		return true
	}
	return false
}
