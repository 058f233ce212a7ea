// File: models/event.go
package models

import (
	"errors"
	"strings"
	"time"
)

// ------------------------ event model -----------------------

// Event is a scheduled fest event. Date is YYYY-MM-DD and Time is HH:MM.
type Event struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Date        string `db:"date" json:"date"`
	Time        string `db:"time" json:"time"`
	Location    string `db:"location" json:"location"`
	Description string `db:"description" json:"description"`
}

// PublicEvent is the unauthenticated listing shape.
type PublicEvent struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

var (
	// ErrMissingFields means a required event field was empty after trimming.
	ErrMissingFields = errors.New("all fields are required")
	// ErrInvalidSchedule means date or time could not be parsed.
	ErrInvalidSchedule = errors.New("invalid date or time")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Normalize trims the event, checks required fields, and rewrites Date and
// Time into their canonical layouts ("18:00:00" becomes "18:00").
func (e *Event) Normalize() error {
	e.Name = strings.TrimSpace(e.Name)
	e.Date = strings.TrimSpace(e.Date)
	e.Time = strings.TrimSpace(e.Time)
	e.Location = strings.TrimSpace(e.Location)
	e.Description = strings.TrimSpace(e.Description)

	if e.Name == "" || e.Date == "" || e.Time == "" || e.Location == "" {
		return ErrMissingFields
	}

	d, err := time.Parse(dateLayout, e.Date)
	if err != nil {
		return ErrInvalidSchedule
	}
	t, err := time.Parse(timeLayout, e.Time)
	if err != nil {
		if t, err = time.Parse("15:04:05", e.Time); err != nil {
			return ErrInvalidSchedule
		}
	}

	e.Date = d.Format(dateLayout)
	e.Time = t.Format(timeLayout)
	return nil
}

// Public converts the event for the public listing, formatting date and
// time for display regardless of how the row was written.
func (e Event) Public() PublicEvent {
	p := PublicEvent{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
	}
	if d, err := time.Parse(time.RFC3339, e.Date); err == nil {
		p.Date = d.Format(dateLayout)
	} else if len(e.Date) > len(dateLayout) {
		p.Date = e.Date[:len(dateLayout)]
	}
	if len(e.Time) > len(timeLayout) {
		p.Time = e.Time[:len(timeLayout)]
	}
	return p
}
