// Package models defines data structures used across the application.
// File: models/user.go
package models

import (
	"strings"
	"time"
)

// ----------------------- registrant model -----------------------

// User is one registration submitted through the public form. Name is not
// unique; ID is the only stable key.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Event        string    `db:"event" json:"event"`
	EventDate    string    `db:"event_date" json:"event_date"`
	EventTime    string    `db:"event_time" json:"event_time"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

// Trim strips surrounding whitespace from every submitted field.
func (u *User) Trim() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Phone = strings.TrimSpace(u.Phone)
	u.Event = strings.TrimSpace(u.Event)
	u.EventDate = strings.TrimSpace(u.EventDate)
	u.EventTime = strings.TrimSpace(u.EventTime)
}
