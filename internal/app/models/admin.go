package models

import (
	"time"
)

// Role names resolved server-side from the table a credential matched. The
// client may echo a role hint at login, but it is never trusted.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Admin defines the administrator model based on the 'admins' table. Admins are
// created via registration, read at login, and never updated or deleted.
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	FullName  string    `json:"fullname" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
