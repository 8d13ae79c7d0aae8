package models

import (
	"time"

	"github.com/lib/pq"
)

// ScheduledPost is an intent to publish a Video through an Integration at a
// future time. Status transitions are owned by the publisher: the only way
// into "processing" is the conditional claim in the repository.
type ScheduledPost struct {
	ID                int64          `db:"id" json:"id"`
	UserID            int64          `db:"user_id" json:"user_id"`
	IntegrationID     int64          `db:"integration_id" json:"integration_id"`
	VideoID           int64          `db:"video_id" json:"video_id"`
	Platform          string         `db:"platform" json:"platform"`
	ScheduledTime     time.Time      `db:"scheduled_time" json:"scheduled_time"`
	Status            string         `db:"status" json:"status"`
	Title             string         `db:"title" json:"title"`
	Description       string         `db:"description" json:"description"`
	Tags              pq.StringArray `db:"tags" json:"tags"`
	Category          string         `db:"category" json:"category"`
	PrivacyStatus     string         `db:"privacy_status" json:"privacy_status"`
	VideoType         string         `db:"video_type" json:"video_type"`
	MadeForKids       bool           `db:"made_for_kids" json:"made_for_kids"`
	NotifySubscribers bool           `db:"notify_subscribers" json:"notify_subscribers"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusPending    = "pending"
	PostStatusProcessing = "processing"
	PostStatusPosted     = "posted"
	PostStatusFailed     = "failed"
	PostStatusCancelled  = "cancelled"
)

const (
	VideoTypeNormal = "normal"
	VideoTypeShort  = "short"
)

const (
	PrivacyPublic   = "public"
	PrivacyPrivate  = "private"
	PrivacyUnlisted = "unlisted"
)
