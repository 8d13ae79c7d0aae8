package transfer

type UploadURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type UploadURLResponse struct {
	SignedURL string `json:"signed_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
}

// RegisterVideoRequest records a completed direct-to-storage upload.
type RegisterVideoRequest struct {
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
	StorageKey   string `json:"storage_key"`
	ThumbnailURL string `json:"thumbnail_url"`
}
