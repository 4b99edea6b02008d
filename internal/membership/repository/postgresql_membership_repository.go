// Package repository provides data persistence implementations for conversation memberships.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/database"
	"github.com/allisson/devsync/internal/membership/domain"

	apperrors "github.com/allisson/devsync/internal/errors"
)

// PostgreSQLMembershipRepository handles membership persistence for PostgreSQL.
type PostgreSQLMembershipRepository struct {
	db *sql.DB
}

// NewPostgreSQLMembershipRepository creates a new PostgreSQLMembershipRepository.
func NewPostgreSQLMembershipRepository(db *sql.DB) *PostgreSQLMembershipRepository {
	return &PostgreSQLMembershipRepository{
		db: db,
	}
}

// Create inserts a new membership. The composite primary key enforces at most
// one membership per (conversation, user) pair.
func (r *PostgreSQLMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO conversation_members (conversation_id, user_id, role, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		membership.ConversationID, membership.UserID, string(membership.Role),
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrMembershipAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create membership")
	}
	return nil
}

// Get retrieves the membership for a (conversation, user) pair.
func (r *PostgreSQLMembershipRepository) Get(ctx context.Context, conversationID, userID uuid.UUID) (*domain.Membership, error) {
	var membership domain.Membership
	querier := database.GetTx(ctx, r.db)

	query := `SELECT conversation_id, user_id, role, created_at, updated_at
			  FROM conversation_members WHERE conversation_id = $1 AND user_id = $2`

	err := querier.QueryRowContext(ctx, query, conversationID, userID).Scan(
		&membership.ConversationID, &membership.UserID, &membership.Role,
		&membership.CreatedAt, &membership.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get membership")
	}

	return &membership, nil
}

// ListByConversation retrieves all memberships of a conversation.
func (r *PostgreSQLMembershipRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*domain.Membership, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT conversation_id, user_id, role, created_at, updated_at
			  FROM conversation_members WHERE conversation_id = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list memberships")
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		var membership domain.Membership
		if err := rows.Scan(
			&membership.ConversationID, &membership.UserID, &membership.Role,
			&membership.CreatedAt, &membership.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan membership")
		}
		memberships = append(memberships, &membership)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate memberships")
	}

	return memberships, nil
}

// UpdateRole changes the role of an existing membership.
func (r *PostgreSQLMembershipRepository) UpdateRole(ctx context.Context, conversationID, userID uuid.UUID, role domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE conversation_members SET role = $1, updated_at = NOW()
			  WHERE conversation_id = $2 AND user_id = $3`

	result, err := querier.ExecContext(ctx, query, string(role), conversationID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update membership role")
	}
	return checkRowsAffected(result)
}

// Delete removes a membership.
func (r *PostgreSQLMembershipRepository) Delete(ctx context.Context, conversationID, userID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM conversation_members WHERE conversation_id = $1 AND user_id = $2`

	result, err := querier.ExecContext(ctx, query, conversationID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete membership")
	}
	return checkRowsAffected(result)
}

// checkRowsAffected maps zero affected rows to ErrMembershipNotFound.
func checkRowsAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrMembershipNotFound
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
