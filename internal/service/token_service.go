package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	config "github.com/manypost/manypost/configs"
	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// refreshMargin is how close to expiry a token may get before it is
	// refreshed ahead of use.
	refreshMargin = 5 * time.Minute

	// expirySafety is shaved off the provider-reported lifetime so a token
	// never expires mid-upload.
	expirySafety = 2 * time.Minute

	// fallbackTokenLifetime applies when the provider omits an expiry;
	// Google access tokens live 60 minutes.
	fallbackTokenLifetime = 58 * time.Minute
)

type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (string, time.Time, error)
	RefreshIntegration(ctx context.Context, in *models.Integration) (string, error)
	EnsureValid(ctx context.Context, in *models.Integration) (string, error)
}

type tokenService struct {
	cfg      config.Config
	ir       repository.IntegrationRepository
	endpoint oauth2.Endpoint
}

func NewTokenService(cfg config.Config, ir repository.IntegrationRepository) TokenService {
	return &tokenService{
		cfg:      cfg,
		ir:       ir,
		endpoint: google.Endpoint,
	}
}

// Refresh posts a refresh-token grant and returns the new access token with
// the expiry the caller should persist.
func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	conf := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		Endpoint:     s.endpoint,
	}

	tokenSource := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	token, err := tokenSource.Token()
	if err != nil {
		slog.Info(err.Error())
		return "", time.Time{}, fmt.Errorf("%w: %v", models.ErrRefreshFailed, err)
	}
	if token.AccessToken == "" {
		return "", time.Time{}, models.ErrRefreshFailed
	}

	expiresAt := token.Expiry.Add(-expirySafety)
	if token.Expiry.IsZero() {
		expiresAt = time.Now().Add(fallbackTokenLifetime)
	}

	return token.AccessToken, expiresAt, nil
}

// RefreshIntegration refreshes the integration's token and persists the
// result before returning the plaintext access token.
func (s *tokenService) RefreshIntegration(ctx context.Context, in *models.Integration) (string, error) {
	refreshToken, err := utils.Decrypt(in.RefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	accessToken, expiresAt, err := s.Refresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(accessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	if err := s.ir.SetToken(ctx, in.ID, encryptedAccessToken, "", expiresAt); err != nil {
		return "", err
	}

	in.AccessToken = encryptedAccessToken
	in.TokenExpiresAt = expiresAt

	return accessToken, nil
}

// EnsureValid returns a usable plaintext access token, refreshing and
// persisting first when the stored one is expired or about to expire.
func (s *tokenService) EnsureValid(ctx context.Context, in *models.Integration) (string, error) {
	if time.Until(in.TokenExpiresAt) > refreshMargin {
		return utils.Decrypt(in.AccessToken, []byte(s.cfg.SecretKey))
	}
	return s.RefreshIntegration(ctx, in)
}
