package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/auth/domain"
	"github.com/allisson/devsync/internal/database"

	apperrors "github.com/allisson/devsync/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user. Roles are stored as a JSON array.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	roles, err := json.Marshal(user.Roles)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user roles")
	}

	query := `INSERT INTO users (id, username, email, password, roles, is_active, failed_attempts, locked_until, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.Password, roles,
		user.IsActive, user.FailedAttempts, user.LockedUntil,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			if strings.Contains(err.Error(), "email") {
				return domain.ErrEmailAlreadyExists
			}
			return domain.ErrUsernameAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getByField(ctx, "id", id)
}

// GetByUsername retrieves a user by username.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getByField(ctx, "username", username)
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *MySQLUserRepository) getByField(ctx context.Context, field string, value any) (*domain.User, error) {
	var user domain.User
	var roles []byte
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, roles, is_active, failed_attempts, locked_until, created_at, updated_at
			  FROM users WHERE ` + field + ` = ?`

	err := querier.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &roles,
		&user.IsActive, &user.FailedAttempts, &user.LockedUntil,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by "+field)
	}

	if err := json.Unmarshal(roles, &user.Roles); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user roles")
	}

	return &user, nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *MySQLUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.existsByField(ctx, "username", username)
}

// ExistsByEmail reports whether a user with the given email exists.
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.existsByField(ctx, "email", email)
}

func (r *MySQLUserRepository) existsByField(ctx context.Context, field, value string) (bool, error) {
	var exists bool
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE ` + field + ` = ?)`

	if err := querier.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check user existence by "+field)
	}
	return exists, nil
}

// UpdatePassword replaces the stored password hash for a user.
func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return checkRowsAffected(result)
}

// UpdateLockout updates the failed attempt counter and lock expiry for a user.
func (r *MySQLUserRepository) UpdateLockout(ctx context.Context, id uuid.UUID, failedAttempts int, lockedUntil *time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET failed_attempts = ?, locked_until = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, failedAttempts, lockedUntil, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user lockout")
	}
	return checkRowsAffected(result)
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
