// Package metrics counts requests, registrations, logins and deletions.
// File: metrics/metrics.go
package metrics

import "time"

// Login results as recorded by Recorder.Login.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginLimited = "limited"
)

// Deletion kinds as recorded by Recorder.Deletion.
const (
	KindUser  = "user"
	KindEvent = "event"
)

// Recorder receives application measurements. Implementations must be
// safe for concurrent use and must not block the caller.
type Recorder interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
	Registration(event string)
	Login(result string)
	Deletion(kind string, n int64)
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveRequest(string, string, int, time.Duration) {}
func (Nop) Registration(string)                               {}
func (Nop) Login(string)                                      {}
func (Nop) Deletion(string, int64)                            {}

// Multi fans every measurement out to each recorder in order.
type Multi []Recorder

func (m Multi) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	for _, r := range m {
		r.ObserveRequest(method, route, status, elapsed)
	}
}

func (m Multi) Registration(event string) {
	for _, r := range m {
		r.Registration(event)
	}
}

func (m Multi) Login(result string) {
	for _, r := range m {
		r.Login(result)
	}
}

func (m Multi) Deletion(kind string, n int64) {
	for _, r := range m {
		r.Deletion(kind, n)
	}
}
