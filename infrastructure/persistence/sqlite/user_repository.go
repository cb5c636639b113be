package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"accounts-backend/domain/entities"
)

// UserRepository persists user accounts in sqlite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user repository over an open database.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, name, email, password_hash, is_active, is_admin, created_at, updated_at`

// GetAll returns every user row.
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetByID returns one user, nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)

	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Add inserts a new user row.
func (r *UserRepository) Add(ctx context.Context, user *entities.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, user.UserID, user.Name, user.Email, user.PasswordHash,
		boolToInt(user.IsActive), boolToInt(user.IsAdmin),
		user.CreatedAt.UTC().Format(time.RFC3339Nano), formatTimePtr(user.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update replaces an existing user row.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, is_active = ?, is_admin = ?, created_at = ?, updated_at = ?
		WHERE user_id = ?
	`, user.Name, user.Email, user.PasswordHash,
		boolToInt(user.IsActive), boolToInt(user.IsAdmin),
		user.CreatedAt.UTC().Format(time.RFC3339Nano), formatTimePtr(user.UpdatedAt),
		user.UserID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes a user row, reporting whether it existed.
func (r *UserRepository) Delete(ctx context.Context, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return rows > 0, nil
}

func scanUser(scan func(dest ...interface{}) error) (*entities.User, error) {
	user := &entities.User{}
	var isActive, isAdmin int
	var createdAt string
	var updatedAt sql.NullString

	err := scan(&user.UserID, &user.Name, &user.Email, &user.PasswordHash,
		&isActive, &isAdmin, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	user.IsActive = isActive != 0
	user.IsAdmin = isAdmin != 0
	if user.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if updatedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		user.UpdatedAt = &t
	}
	return user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
