// File: services/admin_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fest-registration/database"
	"fest-registration/models"
)

// AdminServiceInterface stores dashboard operators.
type AdminServiceInterface interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, username, passwordHash string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// AdminService is the SQL implementation of AdminServiceInterface.
type AdminService struct {
	db database.Handler
}

var _ AdminServiceInterface = (*AdminService)(nil)

// NewAdminService creates an AdminService on db.
func NewAdminService(db database.Handler) *AdminService {
	return &AdminService{db: db}
}

// FindByUsername is a case-sensitive exact match.
func (s *AdminService) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.GetContext(ctx, &admin,
		s.db.Rebind(`SELECT id, username, password, created_at FROM admin WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	// MySQL's default collation ignores case; keep the match exact everywhere.
	if admin.Username != username {
		return nil, ErrNotFound
	}
	return &admin, nil
}

// Create inserts an admin with an already-hashed password.
func (s *AdminService) Create(ctx context.Context, username, passwordHash string) (*models.Admin, error) {
	created := time.Now().UTC().Truncate(time.Second)
	id, err := database.InsertReturningID(ctx, s.db,
		`INSERT INTO admin (username, password, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, created)
	if database.IsUniqueViolation(err) {
		return nil, fmt.Errorf("admin %q: %w", username, ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return &models.Admin{ID: id, Username: username, Password: passwordHash, CreatedAt: created}, nil
}

// UpdatePassword replaces the stored hash.
func (s *AdminService) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE admin SET password = ? WHERE username = ?`), passwordHash, username)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
