package models

import "time"

// Integration is one connected creator account on an external platform.
// Access and refresh tokens are stored AES-GCM encrypted.
type Integration struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	Platform        string    `db:"platform" json:"platform"`
	ChannelID       string    `db:"channel_id" json:"channel_id"`
	ChannelName     string    `db:"channel_name" json:"channel_name"`
	ProfileImageURL string    `db:"profile_image_url" json:"profile_image_url"`
	AccessToken     string    `db:"access_token" json:"-"`
	RefreshToken    string    `db:"refresh_token" json:"-"`
	TokenExpiresAt  time.Time `db:"token_expires_at" json:"token_expires_at"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	ConnectedAt     time.Time `db:"connected_at" json:"connected_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

const (
	PlatformYoutube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformTiktok    = "tiktok"
)
