package models

import "time"

// VideoStat is one snapshot of a published post's counters. Append-only;
// display picks the most recent row per post.
type VideoStat struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	PostHistoryID  int64     `db:"post_history_id" json:"post_history_id"`
	PlatformPostID string    `db:"platform_post_id" json:"platform_post_id"`
	ViewCount      int64     `db:"view_count" json:"view_count"`
	LikeCount      int64     `db:"like_count" json:"like_count"`
	CommentCount   int64     `db:"comment_count" json:"comment_count"`
	FetchedAt      time.Time `db:"fetched_at" json:"fetched_at"`
}
