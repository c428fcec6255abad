package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"backstage/internal/models"
)

// CreateAdmin stores an admin whose password has already been hashed.
func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	admin.Username = strings.TrimSpace(admin.Username)
	if admin.Username == "" || len(admin.PasswordHash) == 0 {
		return models.Admin{}, fmt.Errorf("username and password hash are required")
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admins (username, password_hash, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, admin.Username, admin.PasswordHash, admin.Phone).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Admin{}, ErrAdminExists
		}
		return models.Admin{}, fmt.Errorf("insert admin: %w", err)
	}
	return admin, nil
}

// AdminByUsername looks up an admin together with its password hash.
func (s *Store) AdminByUsername(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, phone, created_at, updated_at
		FROM admins
		WHERE username = $1
	`, strings.TrimSpace(username)).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Phone, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, ErrAdminNotFound
		}
		return models.Admin{}, fmt.Errorf("lookup admin: %w", err)
	}
	return a, nil
}
