package transfer

// SchedulePostRequest creates a pending ScheduledPost. Optional fields fall
// back to the platform defaults the publisher expects.
type SchedulePostRequest struct {
	IntegrationID     int64    `json:"integration_id"`
	VideoID           int64    `json:"video_id"`
	ScheduledTime     string   `json:"scheduled_time"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	Category          string   `json:"category"`
	PrivacyStatus     string   `json:"privacy_status"`
	VideoType         string   `json:"video_type"`
	MadeForKids       bool     `json:"made_for_kids"`
	NotifySubscribers *bool    `json:"notify_subscribers"`
}

type PublishRequest struct {
	ScheduledPostID int64 `json:"scheduled_post_id"`
}

type PublishResult struct {
	Success  bool   `json:"success"`
	VideoID  string `json:"videoId"`
	VideoURL string `json:"videoUrl"`
}

type ScanResult struct {
	PostID  int64          `json:"post_id"`
	Success bool           `json:"success"`
	Result  *PublishResult `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type ScanResponse struct {
	Success   bool         `json:"success"`
	Processed int          `json:"processed"`
	Results   []ScanResult `json:"results"`
}

type SyncStatsResponse struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
}
