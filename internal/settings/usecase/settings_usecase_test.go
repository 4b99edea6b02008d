package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/settings/domain"
)

// MockSettingsRepository is a mock implementation of SettingsRepository.
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Create(ctx context.Context, settings *domain.UserSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, settings *domain.UserSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func TestUserSettingsUseCase_Initialize(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("ExistsByUserID", mock.Anything, userID).Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.UserSettings) bool {
			return s.UserID == userID && s.Theme.Mode == domain.ThemeModeLight
		})).Return(nil)

		useCase := NewSettingsUseCase(repo)
		settings, err := useCase.Initialize(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, settings.UserID)
		assert.True(t, settings.Notifications.DesktopEnabled)
		assert.Equal(t, "general", settings.Workspace.DefaultChannel)
		repo.AssertExpectations(t)
	})

	t.Run("Error_AlreadyExists", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("ExistsByUserID", mock.Anything, userID).Return(true, nil)

		useCase := NewSettingsUseCase(repo)
		_, err := useCase.Initialize(context.Background(), userID)

		assert.ErrorIs(t, err, domain.ErrSettingsAlreadyExist)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserSettingsUseCase_CreateDefaults(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	repo := new(MockSettingsRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.UserSettings) bool {
		return s.UserID == userID
	})).Return(nil)

	useCase := NewSettingsUseCase(repo)
	err := useCase.CreateDefaults(context.Background(), userID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserSettingsUseCase_UpdateSection(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_Theme", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("GetByUserID", mock.Anything, userID).Return(domain.DefaultSettings(userID), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.UserSettings) bool {
			return s.Theme.Mode == domain.ThemeModeDark && s.Theme.AccentColor == "#FF8800"
		})).Return(nil)

		useCase := NewSettingsUseCase(repo)
		payload := json.RawMessage(`{"mode":"DARK","accent_color":"#FF8800","font_size":"LARGE","density":"COMPACT"}`)
		settings, err := useCase.UpdateSection(context.Background(), userID, domain.SectionTheme, payload)

		require.NoError(t, err)
		assert.Equal(t, domain.ThemeModeDark, settings.Theme.Mode)
		assert.Equal(t, domain.FontSizeLarge, settings.Theme.FontSize)
	})

	t.Run("Success_NotificationsKeepsOtherSections", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		current := domain.DefaultSettings(userID)
		current.Theme.Mode = domain.ThemeModeDark
		repo.On("GetByUserID", mock.Anything, userID).Return(current, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.UserSettings) bool {
			return !s.Notifications.DesktopEnabled && s.Theme.Mode == domain.ThemeModeDark
		})).Return(nil)

		useCase := NewSettingsUseCase(repo)
		payload := json.RawMessage(`{"desktop_enabled":false,"keywords":["deploy"]}`)
		settings, err := useCase.UpdateSection(context.Background(), userID, domain.SectionNotifications, payload)

		require.NoError(t, err)
		assert.False(t, settings.Notifications.DesktopEnabled)
		assert.Equal(t, []string{"deploy"}, settings.Notifications.Keywords)
	})

	t.Run("Error_UnknownSection", func(t *testing.T) {
		repo := new(MockSettingsRepository)

		useCase := NewSettingsUseCase(repo)
		_, err := useCase.UpdateSection(context.Background(), userID, domain.Section("sounds"), json.RawMessage(`{}`))

		assert.ErrorIs(t, err, domain.ErrUnknownSection)
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidThemeMode", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("GetByUserID", mock.Anything, userID).Return(domain.DefaultSettings(userID), nil)

		useCase := NewSettingsUseCase(repo)
		payload := json.RawMessage(`{"mode":"NEON","accent_color":"#FF8800","font_size":"LARGE","density":"COMPACT"}`)
		_, err := useCase.UpdateSection(context.Background(), userID, domain.SectionTheme, payload)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidAccentColor", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("GetByUserID", mock.Anything, userID).Return(domain.DefaultSettings(userID), nil)

		useCase := NewSettingsUseCase(repo)
		payload := json.RawMessage(`{"mode":"DARK","accent_color":"blue","font_size":"LARGE","density":"COMPACT"}`)
		_, err := useCase.UpdateSection(context.Background(), userID, domain.SectionTheme, payload)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_MalformedPayload", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("GetByUserID", mock.Anything, userID).Return(domain.DefaultSettings(userID), nil)

		useCase := NewSettingsUseCase(repo)
		_, err := useCase.UpdateSection(context.Background(), userID, domain.SectionCalls, json.RawMessage(`{not json`))

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_SettingsMissing", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrSettingsNotFound)

		useCase := NewSettingsUseCase(repo)
		_, err := useCase.UpdateSection(context.Background(), userID, domain.SectionPrivacy, json.RawMessage(`{}`))

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUserSettingsUseCase_Reset(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.UserSettings) bool {
			return s.UserID == userID &&
				s.Theme.Mode == domain.ThemeModeLight &&
				s.Privacy.AllowDirectMessages == domain.DirectMessagesEveryone
		})).Return(nil)

		useCase := NewSettingsUseCase(repo)
		settings, err := useCase.Reset(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSettings(userID), settings)
	})

	t.Run("Error_SettingsMissing", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrSettingsNotFound)

		useCase := NewSettingsUseCase(repo)
		_, err := useCase.Reset(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
