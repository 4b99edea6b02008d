// Package repository provides data persistence implementations for user settings.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/database"
	"github.com/allisson/devsync/internal/settings/domain"

	apperrors "github.com/allisson/devsync/internal/errors"
)

// PostgreSQLSettingsRepository handles user settings persistence for PostgreSQL.
// Each section is stored as a JSONB column on a single row per user.
type PostgreSQLSettingsRepository struct {
	db *sql.DB
}

// NewPostgreSQLSettingsRepository creates a new PostgreSQLSettingsRepository.
func NewPostgreSQLSettingsRepository(db *sql.DB) *PostgreSQLSettingsRepository {
	return &PostgreSQLSettingsRepository{
		db: db,
	}
}

// Create inserts the settings row for a user.
func (r *PostgreSQLSettingsRepository) Create(ctx context.Context, settings *domain.UserSettings) error {
	querier := database.GetTx(ctx, r.db)

	sections, err := marshalSections(settings)
	if err != nil {
		return err
	}

	query := `INSERT INTO user_settings (user_id, notifications, calls, privacy, theme, workspace, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		settings.UserID, sections[0], sections[1], sections[2], sections[3], sections[4],
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrSettingsAlreadyExist
		}
		return apperrors.Wrap(err, "failed to create settings")
	}
	return nil
}

// GetByUserID retrieves the settings row for a user.
func (r *PostgreSQLSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	var notifications, calls, privacy, theme, workspace []byte
	querier := database.GetTx(ctx, r.db)

	query := `SELECT user_id, notifications, calls, privacy, theme, workspace, created_at, updated_at
			  FROM user_settings WHERE user_id = $1`

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
func (r *PostgreSQLSettingsRepository) Update(ctx context.Context, settings *domain.UserSettings) error {
	querier := database.GetTx(ctx, r.db)

	sections, err := marshalSections(settings)
	if err != nil {
		return err
	}

	query := `UPDATE user_settings
			  SET notifications = $1, calls = $2, privacy = $3, theme = $4, workspace = $5, updated_at = NOW()
			  WHERE user_id = $6`

	result, err := querier.ExecContext(ctx, query,
		sections[0], sections[1], sections[2], sections[3], sections[4], settings.UserID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update settings")
	}
	return checkRowsAffected(result)
}

// ExistsByUserID reports whether a settings row exists for the user.
func (r *PostgreSQLSettingsRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM user_settings WHERE user_id = $1)`

	if err := querier.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check settings existence")
	}
	return exists, nil
}

// marshalSections encodes the five sections in column order.
func marshalSections(settings *domain.UserSettings) ([5][]byte, error) {
	var sections [5][]byte
	parts := []any{
		settings.Notifications, settings.Calls, settings.Privacy, settings.Theme, settings.Workspace,
	}
	for i, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			return sections, apperrors.Wrap(err, "failed to marshal settings section")
		}
		sections[i] = data
	}
	return sections, nil
}

// unmarshalSections decodes the five section columns into the aggregate.
func unmarshalSections(settings *domain.UserSettings, notifications, calls, privacy, theme, workspace []byte) error {
	pairs := []struct {
		data []byte
		dst  any
	}{
		{notifications, &settings.Notifications},
		{calls, &settings.Calls},
		{privacy, &settings.Privacy},
		{theme, &settings.Theme},
		{workspace, &settings.Workspace},
	}
	for _, pair := range pairs {
		if err := json.Unmarshal(pair.data, pair.dst); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal settings section")
		}
	}
	return nil
}

// checkRowsAffected maps zero affected rows to ErrSettingsNotFound.
func checkRowsAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrSettingsNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
