// File: services/event_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fest-registration/database"
	"fest-registration/models"
)

// EventServiceInterface stores the event list.
type EventServiceInterface interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EventService is the SQL implementation of EventServiceInterface.
type EventService struct {
	db database.Handler
}

var _ EventServiceInterface = (*EventService)(nil)

// NewEventService creates an EventService on db.
func NewEventService(db database.Handler) *EventService {
	return &EventService{db: db}
}

const eventColumns = `id, name, date, time, location, description`

// Create inserts an already-normalised event.
func (s *EventService) Create(ctx context.Context, event *models.Event) error {
	id, err := database.InsertReturningID(ctx, s.db,
		`INSERT INTO events (name, date, time, location, description) VALUES (?, ?, ?, ?, ?)`,
		event.Name, event.Date, event.Time, event.Location, event.Description)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	event.ID = id
	return nil
}

// List returns all events in schedule order.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	err := s.db.SelectContext(ctx, &events,
		`SELECT `+eventColumns+` FROM events ORDER BY date, time, id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Get returns one event or ErrNotFound.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := s.db.GetContext(ctx, &event,
		s.db.Rebind(`SELECT `+eventColumns+` FROM events WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return &event, nil
}

// DeleteByName removes every event with this name. Registrants that
// reference the event are left alone.
func (s *EventService) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM events WHERE name = ?`), name)
	if err != nil {
		return 0, fmt.Errorf("delete events by name: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByID removes one event, or returns ErrNotFound.
func (s *EventService) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
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
