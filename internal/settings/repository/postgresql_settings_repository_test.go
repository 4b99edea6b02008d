package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/devsync/internal/errors"
	"github.com/allisson/devsync/internal/settings/domain"
)

var settingsColumns = []string{"user_id", "notifications", "calls", "privacy", "theme", "workspace", "created_at", "updated_at"}

func settingsRow(settings *domain.UserSettings) []driver.Value {
	now := time.Now()
	notifications, _ := json.Marshal(settings.Notifications)
	calls, _ := json.Marshal(settings.Calls)
	privacy, _ := json.Marshal(settings.Privacy)
	theme, _ := json.Marshal(settings.Theme)
	workspace, _ := json.Marshal(settings.Workspace)
	return []driver.Value{settings.UserID, notifications, calls, privacy, theme, workspace, now, now}
}

func TestPostgreSQLSettingsRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		settings := domain.DefaultSettings(uuid.Must(uuid.NewV7()))

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_settings")).
			WillReturnResult(sqlmock.NewResult(1, 1))

		repo := NewPostgreSQLSettingsRepository(db)
		err = repo.Create(context.Background(), settings)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_AlreadyExists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_settings")).
			WillReturnError(apperrors.New(`pq: duplicate key value violates unique constraint "user_settings_pkey"`))

		repo := NewPostgreSQLSettingsRepository(db)
		err = repo.Create(context.Background(), domain.DefaultSettings(uuid.Must(uuid.NewV7())))

		assert.ErrorIs(t, err, domain.ErrSettingsAlreadyExist)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLSettingsRepository_GetByUserID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expected := domain.DefaultSettings(uuid.Must(uuid.NewV7()))
		expected.Theme.Mode = domain.ThemeModeDark

		mock.ExpectQuery(regexp.QuoteMeta("FROM user_settings WHERE user_id = $1")).
			WithArgs(expected.UserID).
			WillReturnRows(sqlmock.NewRows(settingsColumns).AddRow(settingsRow(expected)...))

		repo := NewPostgreSQLSettingsRepository(db)
		settings, err := repo.GetByUserID(context.Background(), expected.UserID)

		require.NoError(t, err)
		assert.Equal(t, expected.UserID, settings.UserID)
		assert.Equal(t, domain.ThemeModeDark, settings.Theme.Mode)
		assert.Equal(t, "general", settings.Workspace.DefaultChannel)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM user_settings WHERE user_id = $1")).
			WillReturnRows(sqlmock.NewRows(settingsColumns))

		repo := NewPostgreSQLSettingsRepository(db)
		_, err = repo.GetByUserID(context.Background(), uuid.Must(uuid.NewV7()))

		assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLSettingsRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		settings := domain.DefaultSettings(uuid.Must(uuid.NewV7()))

		mock.ExpectExec(regexp.QuoteMeta("UPDATE user_settings")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLSettingsRepository(db)
		err = repo.Update(context.Background(), settings)

		assert.NoError(t, err)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE user_settings")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLSettingsRepository(db)
		err = repo.Update(context.Background(), domain.DefaultSettings(uuid.Must(uuid.NewV7())))

		assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
	})
}

func TestPostgreSQLSettingsRepository_ExistsByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.Must(uuid.NewV7())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewPostgreSQLSettingsRepository(db)
	exists, err := repo.ExistsByUserID(context.Background(), userID)

	require.NoError(t, err)
	assert.True(t, exists)
}
