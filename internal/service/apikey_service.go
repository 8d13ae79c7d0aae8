package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/repository"
	"github.com/manypost/manypost/internal/transfer"
	"github.com/manypost/manypost/pkg/utils"
)

const maxAPIKeysPerUser = 5

type ApiKeyService interface {
	Create(ctx context.Context, userID int64, name string) (*transfer.CreateAPIKeyResponse, error)
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, key string) (int64, error)
	RemoveAPIKey(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	ak repository.ApiKeyRepository
}

func NewApiKeyService(ak repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{ak: ak}
}

// Create issues a fresh key and returns the plaintext exactly once; only the
// hash and a display prefix survive in the database.
func (s *apiKeyService) Create(ctx context.Context, userID int64, name string) (*transfer.CreateAPIKeyResponse, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}

	existing, err := s.ak.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxAPIKeysPerUser {
		return nil, fmt.Errorf("api key limit of %d reached", maxAPIKeysPerUser)
	}

	key, err := utils.GenerateAPIKey()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	id, err := s.ak.Create(ctx, &models.ApiKey{
		UserID:    userID,
		Name:      name,
		KeyHash:   utils.HashAPIKey(key),
		KeyPrefix: key[:11],
	})
	if err != nil {
		return nil, err
	}

	return &transfer.CreateAPIKeyResponse{
		ID:     id,
		Name:   name,
		ApiKey: key,
	}, nil
}

func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	return s.ak.ListByUserID(ctx, userID)
}

// GetUserID resolves a presented key to its owner. Unknown or inactive keys
// are indistinguishable to the caller.
func (s *apiKeyService) GetUserID(ctx context.Context, key string) (int64, error) {
	apiKey, exists, err := s.ak.GetByHash(ctx, utils.HashAPIKey(key))
	if err != nil {
		return 0, err
	}
	if !exists || !apiKey.IsActive {
		return 0, models.ErrUnauthorized
	}

	if err := s.ak.TouchLastUsed(ctx, apiKey.ID); err != nil {
		slog.Info(err.Error())
	}

	return apiKey.UserID, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID, keyID int64) error {
	isValid, err := s.ak.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		return fmt.Errorf("api key %d: %w", keyID, models.ErrNotFound)
	}

	return s.ak.Remove(ctx, keyID)
}
