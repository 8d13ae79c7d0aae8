package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	config "github.com/manypost/manypost/configs"
	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/transfer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"

type AuthService interface {
	LoginURL(state string) string
	LoginCallback(ctx context.Context, code string) (int64, error)
}

type authService struct {
	cfg         config.Config
	ur          repository.UserRepository
	endpoint    oauth2.Endpoint
	userInfoURL string
}

func NewAuthService(cfg config.Config, ur repository.UserRepository) AuthService {
	return &authService{
		cfg:         cfg,
		ur:          ur,
		endpoint:    google.Endpoint,
		userInfoURL: googleUserInfoURL,
	}
}

func (s *authService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.BaseURL + "/login/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     s.endpoint,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state)
}

// LoginCallback exchanges the code, resolves the Google profile and returns
// the local user id, creating the user on first login.
func (s *authService) LoginCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	oauthConfig := s.oauthConfig()
	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("%w: %v", models.ErrTokenExchange, err)
	}

	userInfo, err := s.fetchUserInfo(ctx, oauthConfig.Client(ctx, token))
	if err != nil {
		return 0, err
	}

	user, exists, err := s.ur.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return user.ID, nil
	}

	return s.ur.Create(ctx, nil, &models.User{
		GoogleID:       userInfo.ID,
		Email:          userInfo.Email,
		Name:           userInfo.Name,
		ProfilePicture: userInfo.Picture,
	})
}

func (s *authService) fetchUserInfo(ctx context.Context, client *http.Client) (*transfer.GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info, status code: %d", resp.StatusCode)
	}

	var userInfo transfer.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &userInfo, nil
}
