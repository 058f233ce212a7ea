// Package services holds the registrant, event and admin stores.
// File: services/errors.go
package services

import "errors"

var (
	// ErrNotFound is returned when a keyed lookup or delete matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key already exists.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
