// File: models/admin.go
package models

import "time"

// ----------------------- admin model -----------------------

// Admin is a dashboard operator. Password holds a bcrypt hash and is never
// serialised.
type Admin struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Password  string    `db:"password" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
