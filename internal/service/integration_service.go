package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	config "github.com/manypost/manypost/configs"
	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	googleAuthURL   = "https://accounts.google.com/o/oauth2/v2/auth"
	googleRevokeURL = "https://oauth2.googleapis.com/revoke"

	youtubeUploadScope   = "https://www.googleapis.com/auth/youtube.upload"
	youtubeReadonlyScope = "https://www.googleapis.com/auth/youtube.readonly"

	// stateTokenLifetime bounds how long a started OAuth flow stays valid.
	stateTokenLifetime = 10 * time.Minute
)

type IntegrationService interface {
	AuthURL(ctx context.Context, userID int64) (string, error)
	Callback(ctx context.Context, code, state string) (string, error)
	List(ctx context.Context, userID int64) ([]*models.Integration, error)
	Disconnect(ctx context.Context, userID, integrationID int64) error
}

type integrationService struct {
	cfg       config.Config
	ir        repository.IntegrationRepository
	endpoint  oauth2.Endpoint
	apiBase   string // empty means the real YouTube API
	revokeURL string
}

func NewIntegrationService(cfg config.Config, ir repository.IntegrationRepository) IntegrationService {
	return &integrationService{
		cfg:       cfg,
		ir:        ir,
		endpoint:  google.Endpoint,
		revokeURL: googleRevokeURL,
	}
}

func (s *integrationService) redirectURI() string {
	return s.cfg.BaseURL + "/auth/youtube/callback"
}

// AuthURL builds the provider authorization URL. The state is a short-lived
// signed token carrying the user id; prompt=consent forces a fresh refresh
// token even on re-connect.
func (s *integrationService) AuthURL(ctx context.Context, userID int64) (string, error) {
	state, err := utils.GenerateToken(s.cfg.SecretKey, fmt.Sprintf("%d", userID), stateTokenLifetime)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Add("client_id", s.cfg.GoogleClientID)
	params.Add("redirect_uri", s.redirectURI())
	params.Add("response_type", "code")
	params.Add("scope", youtubeUploadScope+" "+youtubeReadonlyScope)
	params.Add("state", state)
	params.Add("access_type", "offline")
	params.Add("prompt", "consent")

	return fmt.Sprintf("%s?%s", googleAuthURL, params.Encode()), nil
}

// Callback finishes the OAuth flow: exchanges the code against the same
// redirect URI the flow started with, resolves the channel, and upserts the
// integration. Returns the channel title for UI confirmation.
func (s *integrationService) Callback(ctx context.Context, code, state string) (string, error) {
	if code == "" || state == "" {
		err := errors.New("code or state is empty")
		slog.Info(err.Error())
		return "", err
	}

	claims, err := utils.ValidateToken(s.cfg.SecretKey, state)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidState, err)
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidState, err)
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.redirectURI(),
		Scopes:       []string{youtubeUploadScope, youtubeReadonlyScope},
		Endpoint:     s.endpoint,
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", models.ErrTokenExchange, err)
	}

	channel, err := s.fetchChannel(ctx, oauth2Config.Client(ctx, token))
	if err != nil {
		return "", err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	// The refresh token is only issued on fresh consent; an empty value here
	// keeps the stored one through the upsert.
	encryptedRefreshToken := ""
	if token.RefreshToken != "" {
		encryptedRefreshToken, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return "", err
		}
	}

	expiresAt := token.Expiry.Add(-expirySafety)
	if token.Expiry.IsZero() {
		expiresAt = time.Now().Add(fallbackTokenLifetime)
	}

	profileImageURL := ""
	if channel.Snippet.Thumbnails != nil && channel.Snippet.Thumbnails.Default != nil {
		profileImageURL = channel.Snippet.Thumbnails.Default.Url
	}

	_, err = s.ir.Upsert(ctx, &models.Integration{
		UserID:          userID,
		Platform:        models.PlatformYoutube,
		ChannelID:       channel.Id,
		ChannelName:     channel.Snippet.Title,
		ProfileImageURL: profileImageURL,
		AccessToken:     encryptedAccessToken,
		RefreshToken:    encryptedRefreshToken,
		TokenExpiresAt:  expiresAt,
	})
	if err != nil {
		return "", err
	}

	return channel.Snippet.Title, nil
}

func (s *integrationService) fetchChannel(ctx context.Context, client *http.Client) (*youtube.Channel, error) {
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.apiBase != "" {
		opts = append(opts, option.WithEndpoint(s.apiBase))
	}

	yt, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := yt.Channels.List([]string{"snippet"}).Mine(true).Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, models.ErrNoChannel
	}

	return resp.Items[0], nil
}

func (s *integrationService) List(ctx context.Context, userID int64) ([]*models.Integration, error) {
	if userID == 0 {
		err := errors.New("UserID is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	integrations, err := s.ir.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting integrations")
	}

	return integrations, nil
}

// Disconnect revokes the provider grant best-effort and removes the row;
// a failed revocation does not keep a dead integration around.
func (s *integrationService) Disconnect(ctx context.Context, userID, integrationID int64) error {
	isValid, err := s.ir.CheckByUserID(ctx, integrationID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		return fmt.Errorf("integration %d: %w", integrationID, models.ErrNotFound)
	}

	in, err := s.ir.GetByID(ctx, integrationID)
	if err != nil {
		return err
	}
	if in != nil {
		accessToken, err := utils.Decrypt(in.AccessToken, []byte(s.cfg.SecretKey))
		if err == nil {
			if err := s.revokeAccess(accessToken); err != nil {
				slog.Info(err.Error())
			}
		}
	}

	return s.ir.Remove(ctx, integrationID)
}

func (s *integrationService) revokeAccess(accessToken string) error {
	payload := []byte("token=" + accessToken)

	req, err := http.NewRequest(http.MethodPost, s.revokeURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to revoke token, status code: %d", resp.StatusCode)
	}
	return nil
}
