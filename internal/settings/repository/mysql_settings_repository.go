package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/database"
	"github.com/allisson/devsync/internal/settings/domain"

	apperrors "github.com/allisson/devsync/internal/errors"
)

// MySQLSettingsRepository handles user settings persistence for MySQL.
// Each section is stored as a JSON column on a single row per user.
type MySQLSettingsRepository struct {
	db *sql.DB
}

// NewMySQLSettingsRepository creates a new MySQLSettingsRepository.
func NewMySQLSettingsRepository(db *sql.DB) *MySQLSettingsRepository {
	return &MySQLSettingsRepository{
		db: db,
	}
}

// Create inserts the settings row for a user.
func (r *MySQLSettingsRepository) Create(ctx context.Context, settings *domain.UserSettings) error {
	querier := database.GetTx(ctx, r.db)

	sections, err := marshalSections(settings)
	if err != nil {
		return err
	}

	query := `INSERT INTO user_settings (user_id, notifications, calls, privacy, theme, workspace, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		settings.UserID, sections[0], sections[1], sections[2], sections[3], sections[4],
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrSettingsAlreadyExist
		}
		return apperrors.Wrap(err, "failed to create settings")
	}
	return nil
}

// GetByUserID retrieves the settings row for a user.
func (r *MySQLSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	var notifications, calls, privacy, theme, workspace []byte
	querier := database.GetTx(ctx, r.db)

	query := `SELECT user_id, notifications, calls, privacy, theme, workspace, created_at, updated_at
			  FROM user_settings WHERE user_id = ?`

	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID, &notifications, &calls, &privacy, &theme, &workspace,
		&settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get settings")
	}

	if err := unmarshalSections(&settings, notifications, calls, privacy, theme, workspace); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Update replaces every section of the settings row for a user.
func (r *MySQLSettingsRepository) Update(ctx context.Context, settings *domain.UserSettings) error {
	querier := database.GetTx(ctx, r.db)

	sections, err := marshalSections(settings)
	if err != nil {
		return err
	}

	query := `UPDATE user_settings
			  SET notifications = ?, calls = ?, privacy = ?, theme = ?, workspace = ?, updated_at = NOW()
			  WHERE user_id = ?`

	result, err := querier.ExecContext(ctx, query,
		sections[0], sections[1], sections[2], sections[3], sections[4], settings.UserID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update settings")
	}
	return checkRowsAffected(result)
}

// ExistsByUserID reports whether a settings row exists for the user.
func (r *MySQLSettingsRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM user_settings WHERE user_id = ?)`

	if err := querier.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check settings existence")
	}
	return exists, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
