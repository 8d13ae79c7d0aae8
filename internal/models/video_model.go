package models

import "time"

// Video is a binary asset the browser uploaded directly to object storage
// against a signed URL; the row is registered after the PUT completes.
type Video struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	FileName     string    `db:"file_name" json:"file_name"`
	FileSize     int64     `db:"file_size" json:"file_size"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	StorageURL   string    `db:"storage_url" json:"storage_url"`
	StorageKey   string    `db:"storage_key" json:"storage_key"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnail_url"`
	UploadStatus string    `db:"upload_status" json:"upload_status"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploaded_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	UploadStatusUploading = "uploading"
	UploadStatusCompleted = "completed"
	UploadStatusFailed    = "failed"
)
