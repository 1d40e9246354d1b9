package models

import (
	"time"
)

// Session is a server-side session record keyed by an opaque token (the jti of
// the access token issued alongside it). Revoking the row invalidates the token
// before its natural expiry.
type Session struct {
	ID         int64     `json:"id" db:"id"`
	Token      string    `json:"token" db:"token"`
	UserID     int64     `json:"userId" db:"user_id"`
	Role       string    `json:"role" db:"role"`
	ExpiryDate time.Time `json:"expiryDate" db:"expiry_date"`
	IsRevoked  bool      `json:"isRevoked" db:"is_revoked"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
