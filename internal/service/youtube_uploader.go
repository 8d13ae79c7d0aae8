package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/manypost/manypost/internal/models"
)

const (
	youtubeUploadBaseURL = "https://www.googleapis.com/upload/youtube/v3"
	watchURLFormat       = "https://www.youtube.com/watch?v=%s"
	defaultCategoryID    = "28"
)

type VideoMetadata struct {
	Title             string
	Description       string
	Tags              []string
	CategoryID        string
	PrivacyStatus     string
	MadeForKids       bool
	NotifySubscribers bool
}

type videoSnippet struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"categoryId"`
}

type videoStatus struct {
	PrivacyStatus           string `json:"privacyStatus"`
	SelfDeclaredMadeForKids bool   `json:"selfDeclaredMadeForKids"`
	NotifySubscribers       bool   `json:"notifySubscribers"`
}

type videoResource struct {
	Snippet videoSnippet `json:"snippet"`
	Status  videoStatus  `json:"status"`
}

// YoutubeUploader speaks the resumable upload protocol: metadata POST for a
// session location, then one binary PUT against it.
type YoutubeUploader struct {
	BaseURL string
	Client  *http.Client
}

func NewYoutubeUploader() *YoutubeUploader {
	return &YoutubeUploader{
		BaseURL: youtubeUploadBaseURL,
		Client:  http.DefaultClient,
	}
}

func (u *YoutubeUploader) Upload(ctx context.Context, accessToken string, video []byte, meta VideoMetadata) (string, string, error) {
	location, err := u.initSession(ctx, accessToken, meta)
	if err != nil {
		return "", "", err
	}

	videoID, err := u.putVideo(ctx, location, video)
	if err != nil {
		return "", "", err
	}

	return videoID, fmt.Sprintf(watchURLFormat, videoID), nil
}

func (u *YoutubeUploader) initSession(ctx context.Context, accessToken string, meta VideoMetadata) (string, error) {
	categoryID := meta.CategoryID
	if categoryID == "" {
		categoryID = defaultCategoryID
	}
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	body, err := json.Marshal(videoResource{
		Snippet: videoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        tags,
			CategoryID:  categoryID,
		},
		Status: videoStatus{
			PrivacyStatus:           meta.PrivacyStatus,
			SelfDeclaredMadeForKids: meta.MadeForKids,
			NotifySubscribers:       meta.NotifySubscribers,
		},
	})
	if err != nil {
		return "", err
	}

	uploadURL := u.BaseURL + "/videos?uploadType=resumable&part=snippet,status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Upload-Content-Type", "video/*")

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadInit, err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d: %s", models.ErrUploadInit, resp.StatusCode, payload)
	}

	return location, nil
}

func (u *YoutubeUploader) putVideo(ctx context.Context, location string, video []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, location, bytes.NewReader(video))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "video/*")

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUpload, err)
	}
	defer resp.Body.Close()

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.ID == "" {
		return "", fmt.Errorf("%w: status %d", models.ErrUpload, resp.StatusCode)
	}

	return result.ID, nil
}
