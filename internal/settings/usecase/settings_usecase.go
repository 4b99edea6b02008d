// Package usecase implements the user settings business logic.
package usecase

import (
	"context"
	"encoding/json"
	"regexp"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/settings/domain"
	appValidation "github.com/allisson/devsync/internal/validation"
)

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// SettingsUseCase defines the user settings business logic operations.
// Owner-only access is enforced at the route layer.
type SettingsUseCase interface {
	// Initialize creates the default settings row for the user. Fails with
	// conflict when the row already exists.
	Initialize(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// CreateDefaults creates the default settings row without returning it.
	// Used by the signup flow inside its transaction.
	CreateDefaults(ctx context.Context, userID uuid.UUID) error

	// Get retrieves the user's settings aggregate.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// UpdateSection replaces one section of the aggregate from a JSON payload.
	UpdateSection(ctx context.Context, userID uuid.UUID, section domain.Section, payload json.RawMessage) (*domain.UserSettings, error)

	// Reset restores every section to its defaults.
	Reset(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

// SettingsRepository defines settings persistence operations.
type SettingsRepository interface {
	Create(ctx context.Context, settings *domain.UserSettings) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Update(ctx context.Context, settings *domain.UserSettings) error
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}

// UserSettingsUseCase handles settings-related business logic.
type UserSettingsUseCase struct {
	settingsRepo SettingsRepository
}

// NewSettingsUseCase creates a new UserSettingsUseCase.
func NewSettingsUseCase(settingsRepo SettingsRepository) SettingsUseCase {
	return &UserSettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

// Initialize creates the default settings row for the user.
func (uc *UserSettingsUseCase) Initialize(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	exists, err := uc.settingsRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSettingsAlreadyExist
	}

	settings := domain.DefaultSettings(userID)
	if err := uc.settingsRepo.Create(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// CreateDefaults creates the default settings row for a new user.
func (uc *UserSettingsUseCase) CreateDefaults(ctx context.Context, userID uuid.UUID) error {
	return uc.settingsRepo.Create(ctx, domain.DefaultSettings(userID))
}

// Get retrieves the user's settings aggregate.
func (uc *UserSettingsUseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	return uc.settingsRepo.GetByUserID(ctx, userID)
}

// UpdateSection decodes the payload into the named section, validates it, and
// persists the full aggregate.
func (uc *UserSettingsUseCase) UpdateSection(
	ctx context.Context,
	userID uuid.UUID,
	section domain.Section,
	payload json.RawMessage,
) (*domain.UserSettings, error) {
	if !domain.ValidSection(section) {
		return nil, domain.ErrUnknownSection
	}

	settings, err := uc.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := applySection(settings, section, payload); err != nil {
		return nil, err
	}

	if err := validateSection(settings, section); err != nil {
		return nil, err
	}

	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Reset restores every section to its defaults, keeping the row.
func (uc *UserSettingsUseCase) Reset(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings := domain.DefaultSettings(userID)
	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// applySection decodes the payload into the matching part of the aggregate.
func applySection(settings *domain.UserSettings, section domain.Section, payload json.RawMessage) error {
	var dst any
	switch section {
	case domain.SectionNotifications:
		dst = &settings.Notifications
	case domain.SectionCalls:
		dst = &settings.Calls
	case domain.SectionPrivacy:
		dst = &settings.Privacy
	case domain.SectionTheme:
		dst = &settings.Theme
	case domain.SectionWorkspace:
		dst = &settings.Workspace
	default:
		return domain.ErrUnknownSection
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "malformed section payload")
	}
	return nil
}

// validateSection validates the updated part of the aggregate.
func validateSection(settings *domain.UserSettings, section domain.Section) error {
	var err error
	switch section {
	case domain.SectionNotifications:
		n := settings.Notifications
		err = validation.ValidateStruct(&n,
			validation.Field(&n.Keywords, validation.Length(0, 50).Error("at most 50 keywords allowed")),
		)
	case domain.SectionCalls:
		c := settings.Calls
		err = validation.ValidateStruct(&c,
			validation.Field(&c.MicrophoneID, validation.Length(0, 100).Error("microphone_id must be at most 100 characters")),
			validation.Field(&c.CameraID, validation.Length(0, 100).Error("camera_id must be at most 100 characters")),
			validation.Field(&c.SpeakerID, validation.Length(0, 100).Error("speaker_id must be at most 100 characters")),
			validation.Field(&c.ScreenShareQuality, validation.In(
				domain.ScreenShareQualityLow, domain.ScreenShareQualityMedium, domain.ScreenShareQualityHigh,
			).Error("invalid screen share quality")),
		)
	case domain.SectionPrivacy:
		p := settings.Privacy
		err = validation.ValidateStruct(&p,
			validation.Field(&p.AllowDirectMessages, validation.In(
				domain.DirectMessagesEveryone, domain.DirectMessagesTeamMembers, domain.DirectMessagesNobody,
			).Error("invalid direct message permission")),
			validation.Field(&p.ProfileVisibility, validation.In(
				domain.ProfileVisibilityPublic, domain.ProfileVisibilityTeamOnly, domain.ProfileVisibilityPrivate,
			).Error("invalid profile visibility")),
		)
	case domain.SectionTheme:
		th := settings.Theme
		err = validation.ValidateStruct(&th,
			validation.Field(&th.Mode, validation.In(
				domain.ThemeModeLight, domain.ThemeModeDark, domain.ThemeModeSystem,
			).Error("invalid theme mode")),
			validation.Field(&th.AccentColor, validation.Match(hexColorPattern).Error("invalid hex color format")),
			validation.Field(&th.FontSize, validation.In(
				domain.FontSizeSmall, domain.FontSizeMedium, domain.FontSizeLarge,
			).Error("invalid font size")),
			validation.Field(&th.Density, validation.In(
				domain.DensityCompact, domain.DensityComfortable, domain.DensitySpacious,
			).Error("invalid density")),
		)
	case domain.SectionWorkspace:
		w := settings.Workspace
		err = validation.ValidateStruct(&w,
			validation.Field(&w.DefaultChannel, validation.Length(0, 50).Error("default_channel must be at most 50 characters")),
			validation.Field(&w.SidebarOrder, validation.Length(0, 20).Error("at most 20 sidebar items allowed")),
		)
	}
	return appValidation.WrapValidationError(err)
}
