package models

import (
	"time"

	"github.com/lib/pq"
)

// Draft is a partially filled post kept for resumable editing. Every field a
// ScheduledPost requires is optional here; promotion fails if the required
// ones are still unset.
type Draft struct {
	ID                int64          `db:"id" json:"id"`
	UserID            int64          `db:"user_id" json:"user_id"`
	IntegrationID     *int64         `db:"integration_id" json:"integration_id"`
	VideoID           *int64         `db:"video_id" json:"video_id"`
	Platform          *string        `db:"platform" json:"platform"`
	Title             *string        `db:"title" json:"title"`
	Description       *string        `db:"description" json:"description"`
	Tags              pq.StringArray `db:"tags" json:"tags"`
	Category          *string        `db:"category" json:"category"`
	PrivacyStatus     *string        `db:"privacy_status" json:"privacy_status"`
	VideoType         *string        `db:"video_type" json:"video_type"`
	MadeForKids       *bool          `db:"made_for_kids" json:"made_for_kids"`
	NotifySubscribers *bool          `db:"notify_subscribers" json:"notify_subscribers"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}
