package models

import (
	"database/sql"
	"time"
)

// ApiKey stores only a SHA-256 hash of the issued token; the plaintext is
// shown once at creation. KeyPrefix keeps the first characters for display.
type ApiKey struct {
	ID         int64        `db:"id" json:"id"`
	UserID     int64        `db:"user_id" json:"user_id"`
	Name       string       `db:"name" json:"name"`
	KeyHash    string       `db:"key_hash" json:"-"`
	KeyPrefix  string       `db:"key_prefix" json:"key_prefix"`
	IsActive   bool         `db:"is_active" json:"is_active"`
	LastUsedAt sql.NullTime `db:"last_used_at" json:"last_used_at"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}
