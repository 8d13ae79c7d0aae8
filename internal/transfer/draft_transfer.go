package transfer

// DraftRequest carries a partial post; nil means "leave unset" on create and
// "keep the stored value" on update.
type DraftRequest struct {
	IntegrationID     *int64   `json:"integration_id"`
	VideoID           *int64   `json:"video_id"`
	Platform          *string  `json:"platform"`
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	Tags              []string `json:"tags"`
	Category          *string  `json:"category"`
	PrivacyStatus     *string  `json:"privacy_status"`
	VideoType         *string  `json:"video_type"`
	MadeForKids       *bool    `json:"made_for_kids"`
	NotifySubscribers *bool    `json:"notify_subscribers"`
}

type PromoteDraftRequest struct {
	DraftID       int64  `json:"draft_id"`
	ScheduledTime string `json:"scheduled_time"`
}
