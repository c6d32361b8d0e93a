package repositories

import (
	"context"
	"strings"

	intdb "armada/internal/db"
	"armada/internal/domain/models"
)

type UserRepository struct {
	DB intdb.DBTX
}

func (r UserRepository) db() (intdb.DBTX, error) { return conn(r.DB) }

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	q, err := r.db()
	if err != nil {
		return u, err
	}
	err = q.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Upsert inserts a user or refreshes name, hash and role for an existing email.
func (r UserRepository) Upsert(ctx context.Context, u models.User) error {
	q, err := r.db()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES (?,?,?,?,NOW(),NOW())
		ON DUPLICATE KEY UPDATE name = VALUES(name), password_hash = VALUES(password_hash), role = VALUES(role), updated_at = NOW()
	`, u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Role)
	return err
}
