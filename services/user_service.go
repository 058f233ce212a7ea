// File: services/user_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"fest-registration/database"
	"fest-registration/logger"
	"fest-registration/models"
)

// UserServiceInterface stores registrants.
type UserServiceInterface interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

// UserService is the SQL implementation of UserServiceInterface.
type UserService struct {
	db  database.Handler
	now func() time.Time
}

var _ UserServiceInterface = (*UserService)(nil)

// NewUserService creates a UserService on db.
func NewUserService(db database.Handler) *UserService {
	return &UserService{db: db, now: time.Now}
}

// Create inserts one registrant, stamping RegisteredAt with server time.
func (s *UserService) Create(ctx context.Context, user *models.User) error {
	user.RegisteredAt = s.now().UTC().Truncate(time.Second)
	id, err := database.InsertReturningID(ctx, s.db,
		`INSERT INTO users (name, email, phone, event, event_date, event_time, registered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.Phone, user.Event, user.EventDate, user.EventTime, user.RegisteredAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	logger.Debug.Printf("UserService.Create: registered %q for %q (id=%d)", user.Name, user.Event, id)
	return nil
}

// List returns every registrant in insertion order.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users,
		`SELECT id, name, email, phone, event, event_date, event_time, registered_at
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteByName removes every registrant with exactly this name and returns
// how many rows went.
func (s *UserService) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM users WHERE name = ?`), name)
	if err != nil {
		return 0, fmt.Errorf("delete users by name: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByID removes one registrant, or returns ErrNotFound.
func (s *UserService) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
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
