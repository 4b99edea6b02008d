package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/chat/domain"
	"github.com/allisson/devsync/internal/database"

	apperrors "github.com/allisson/devsync/internal/errors"
)

// MySQLConversationRepository handles conversation persistence for MySQL.
type MySQLConversationRepository struct {
	db *sql.DB
}

// NewMySQLConversationRepository creates a new MySQLConversationRepository.
func NewMySQLConversationRepository(db *sql.DB) *MySQLConversationRepository {
	return &MySQLConversationRepository{
		db: db,
	}
}

// Create inserts a new conversation.
func (r *MySQLConversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO conversations (id, name, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		conversation.ID, conversation.Name, conversation.CreatedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create conversation")
	}
	return nil
}

// GetByID retrieves a conversation by ID.
func (r *MySQLConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conversation domain.Conversation
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_by, created_at, updated_at
			  FROM conversations WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&conversation.ID, &conversation.Name, &conversation.CreatedBy,
		&conversation.CreatedAt, &conversation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get conversation")
	}

	return &conversation, nil
}

// ListByUser retrieves all conversations the user is a member of.
func (r *MySQLConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.name, c.created_by, c.created_at, c.updated_at
			  FROM conversations c
			  JOIN conversation_members m ON m.conversation_id = c.id
			  WHERE m.user_id = ?
			  ORDER BY c.created_at DESC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list conversations")
	}
	defer rows.Close()

	var conversations []*domain.Conversation
	for rows.Next() {
		var conversation domain.Conversation
		if err := rows.Scan(
			&conversation.ID, &conversation.Name, &conversation.CreatedBy,
			&conversation.CreatedAt, &conversation.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan conversation")
		}
		conversations = append(conversations, &conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate conversations")
	}

	return conversations, nil
}

// Delete removes a conversation. Memberships and messages cascade at the
// schema level.
func (r *MySQLConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM conversations WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete conversation")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
