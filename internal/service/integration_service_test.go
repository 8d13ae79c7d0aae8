package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/pkg/utils"
)

const channelListJSON = `{
	"items": [
		{
			"id": "UC123",
			"snippet": {
				"title": "My Channel",
				"thumbnails": {"default": {"url": "https://img.example/ch.png"}}
			}
		}
	]
}`

func oauthState(t *testing.T, userID string) string {
	t.Helper()
	state, err := utils.GenerateToken(testSecretKey, userID, 10*time.Minute)
	require.NoError(t, err)
	return state
}

func TestCallback_ConnectsChannel(t *testing.T) {
	ctx := context.Background()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at1","refresh_token":"rt1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "channels") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(channelListJSON))
			return
		}
		http.NotFound(w, r)
	}))
	defer apiSrv.Close()

	ir := new(IntegrationRepoMock)
	var saved *models.Integration
	ir.On("Upsert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.Integration)
		}).
		Return(int64(5), nil).
		Once()

	svc := NewIntegrationService(testConfig(), ir).(*integrationService)
	svc.endpoint = oauth2.Endpoint{TokenURL: tokenSrv.URL}
	svc.apiBase = apiSrv.URL

	channelName, err := svc.Callback(ctx, "auth-code", oauthState(t, "7"))
	require.NoError(t, err)
	require.Equal(t, "My Channel", channelName)

	require.NotNil(t, saved)
	require.Equal(t, int64(7), saved.UserID)
	require.Equal(t, models.PlatformYoutube, saved.Platform)
	require.Equal(t, "UC123", saved.ChannelID)
	require.Equal(t, "My Channel", saved.ChannelName)
	require.Equal(t, "https://img.example/ch.png", saved.ProfileImageURL)

	// Tokens are stored encrypted, never as received.
	accessToken, err := utils.Decrypt(saved.AccessToken, []byte(testSecretKey))
	require.NoError(t, err)
	require.Equal(t, "at1", accessToken)
	refreshToken, err := utils.Decrypt(saved.RefreshToken, []byte(testSecretKey))
	require.NoError(t, err)
	require.Equal(t, "rt1", refreshToken)

	require.True(t, saved.TokenExpiresAt.After(time.Now()))

	ir.AssertExpectations(t)
}

func TestCallback_InvalidState(t *testing.T) {
	ir := new(IntegrationRepoMock)
	svc := NewIntegrationService(testConfig(), ir).(*integrationService)

	_, err := svc.Callback(context.Background(), "auth-code", "not-a-signed-state")
	require.ErrorIs(t, err, models.ErrInvalidState)
	ir.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCallback_ExchangeFailure(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer tokenSrv.Close()

	ir := new(IntegrationRepoMock)
	svc := NewIntegrationService(testConfig(), ir).(*integrationService)
	svc.endpoint = oauth2.Endpoint{TokenURL: tokenSrv.URL}

	_, err := svc.Callback(context.Background(), "expired-code", oauthState(t, "7"))
	require.ErrorIs(t, err, models.ErrTokenExchange)
	ir.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCallback_NoChannel(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	}))
	defer apiSrv.Close()

	ir := new(IntegrationRepoMock)
	svc := NewIntegrationService(testConfig(), ir).(*integrationService)
	svc.endpoint = oauth2.Endpoint{TokenURL: tokenSrv.URL}
	svc.apiBase = apiSrv.URL

	_, err := svc.Callback(context.Background(), "auth-code", oauthState(t, "7"))
	require.ErrorIs(t, err, models.ErrNoChannel)
	ir.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAuthURL_CarriesOfflineConsent(t *testing.T) {
	ir := new(IntegrationRepoMock)
	svc := NewIntegrationService(testConfig(), ir)

	authURL, err := svc.AuthURL(context.Background(), 7)
	require.NoError(t, err)

	require.Contains(t, authURL, "accounts.google.com")
	require.Contains(t, authURL, "access_type=offline")
	require.Contains(t, authURL, "prompt=consent")
	require.Contains(t, authURL, "youtube.upload")
	require.Contains(t, authURL, "state=")
}

func TestDisconnect_RemovesEvenWhenRevocationFails(t *testing.T) {
	ctx := context.Background()

	revokeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusBadRequest)
	}))
	defer revokeSrv.Close()

	ir := new(IntegrationRepoMock)
	ir.On("CheckByUserID", mock.Anything, int64(3), int64(7)).Return(true, nil).Once()
	ir.On("GetByID", mock.Anything, int64(3)).Return(&models.Integration{
		ID:          3,
		UserID:      7,
		AccessToken: encryptOrFail(t, "tok"),
	}, nil).Once()
	ir.On("Remove", mock.Anything, int64(3)).Return(nil).Once()

	svc := NewIntegrationService(testConfig(), ir).(*integrationService)
	svc.revokeURL = revokeSrv.URL

	err := svc.Disconnect(ctx, 7, 3)
	require.NoError(t, err)
	ir.AssertExpectations(t)
}

func TestDisconnect_NotOwned(t *testing.T) {
	ir := new(IntegrationRepoMock)
	ir.On("CheckByUserID", mock.Anything, int64(3), int64(8)).Return(false, nil).Once()

	svc := NewIntegrationService(testConfig(), ir)

	err := svc.Disconnect(context.Background(), 8, 3)
	require.ErrorIs(t, err, models.ErrNotFound)
	ir.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}
