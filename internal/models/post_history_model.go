package models

import "time"

// PostHistory records the outcome of a single publish attempt. Append-only,
// one row per publisher invocation that passed the admission gate.
type PostHistory struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	ScheduledPostID int64     `db:"scheduled_post_id" json:"scheduled_post_id"`
	IntegrationID   int64     `db:"integration_id" json:"integration_id"`
	VideoID         int64     `db:"video_id" json:"video_id"`
	Platform        string    `db:"platform" json:"platform"`
	PlatformPostID  string    `db:"platform_post_id" json:"platform_post_id"`
	PlatformPostURL string    `db:"platform_post_url" json:"platform_post_url"`
	Title           string    `db:"title" json:"title"`
	Status          string    `db:"status" json:"status"`
	ErrorMessage    string    `db:"error_message" json:"error_message"`
	PostedAt        time.Time `db:"posted_at" json:"posted_at"`
}

const (
	HistoryStatusSuccess = "success"
	HistoryStatusFailed  = "failed"
)
