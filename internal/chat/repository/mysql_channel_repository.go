package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/chat/domain"
	"github.com/allisson/devsync/internal/database"

	apperrors "github.com/allisson/devsync/internal/errors"
)

// MySQLChannelRepository handles channel persistence for MySQL.
type MySQLChannelRepository struct {
	db *sql.DB
}

// NewMySQLChannelRepository creates a new MySQLChannelRepository.
func NewMySQLChannelRepository(db *sql.DB) *MySQLChannelRepository {
	return &MySQLChannelRepository{
		db: db,
	}
}

// Create inserts a new channel. Channel names are unique workspace-wide.
func (r *MySQLChannelRepository) Create(ctx context.Context, channel *domain.Channel) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO channels (id, name, topic, is_private, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		channel.ID, channel.Name, channel.Topic, channel.IsPrivate, channel.CreatedBy,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrChannelAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create channel")
	}
	return nil
}

// GetByID retrieves a channel by ID.
func (r *MySQLChannelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	var channel domain.Channel
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, topic, is_private, created_by, created_at, updated_at
			  FROM channels WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&channel.ID, &channel.Name, &channel.Topic, &channel.IsPrivate,
		&channel.CreatedBy, &channel.CreatedAt, &channel.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChannelNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get channel")
	}

	return &channel, nil
}

// List retrieves all channels ordered by name.
func (r *MySQLChannelRepository) List(ctx context.Context, offset, limit int) ([]*domain.Channel, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, topic, is_private, created_by, created_at, updated_at
			  FROM channels ORDER BY name LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list channels")
	}
	defer rows.Close()

	var channels []*domain.Channel
	for rows.Next() {
		var channel domain.Channel
		if err := rows.Scan(
			&channel.ID, &channel.Name, &channel.Topic, &channel.IsPrivate,
			&channel.CreatedBy, &channel.CreatedAt, &channel.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan channel")
		}
		channels = append(channels, &channel)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate channels")
	}

	return channels, nil
}

// Delete removes a channel.
func (r *MySQLChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM channels WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete channel")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrChannelNotFound
	}
	return nil
}
