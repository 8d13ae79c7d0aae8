package transfer

type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// CreateAPIKeyResponse is the only place the plaintext key ever appears.
type CreateAPIKeyResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	ApiKey string `json:"api_key"`
}
