package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messagely/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository is the credential store
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
	FindAll(ctx context.Context) ([]model.UserSummary, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The unique constraint on username decides
// concurrent registrations; the loser gets ErrUsernameTaken.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, password, first_name, last_name, phone, join_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING join_at`
	err := r.db.QueryRow(ctx, sql, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.JoinAt).Scan(&user.JoinAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT username, password, first_name, last_name, phone, join_at, last_login_at
            FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).Scan(
		&user.Username, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Phone, &user.JoinAt, &user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found, service layer decides what that means
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// UpdateLastLogin sets last_login_at for username
func (r *userRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	sql := `UPDATE users SET last_login_at = $1 WHERE username = $2`
	cmdTag, err := r.db.Exec(ctx, sql, at, username)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUnknownUser
	}
	return nil
}

// FindAll lists every user ordered by username
func (r *userRepository) FindAll(ctx context.Context) ([]model.UserSummary, error) {
	sql := `SELECT username, first_name, last_name FROM users ORDER BY username`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.UserSummary{}
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
