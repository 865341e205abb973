package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	"github.com/maheshrc27/marketing-planner/pkg/utils"
	"go.uber.org/zap"
)

const MaxApiKeys = 5

var ErrApiKeyLimit = fmt.Errorf("only %d API keys can be created", MaxApiKeys)

type ApiKeyService interface {
	Create(ctx context.Context, userID string) (*models.ApiKey, error)
	List(ctx context.Context, userID string) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (string, error)
	RemoveAPIKey(ctx context.Context, userID, keyID string) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{
		k: k,
	}
}

func (s *apiKeyService) Create(ctx context.Context, userID string) (*models.ApiKey, error) {
	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(keys) >= MaxApiKeys {
		return nil, ErrApiKeyLimit
	}

	key, err := utils.GenerateAPIKey()
	if err != nil {
		zap.L().Error("unable to generate api key", zap.Error(err))
		return nil, errors.New("error generating API key")
	}

	apiKey := &models.ApiKey{
		UserID: userID,
		ApiKey: key,
	}
	if _, err := s.k.Create(ctx, apiKey); err != nil {
		return nil, fmt.Errorf("error saving API key: %w", err)
	}
	return apiKey, nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (string, error) {
	userID, isExist, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return "", err
	}
	if !isExist {
		return "", errors.New("key doesn't exist")
	}
	return userID, nil
}

func (s *apiKeyService) List(ctx context.Context, userID string) ([]*models.ApiKey, error) {
	apiKeys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting API keys: %w", err)
	}
	if apiKeys == nil {
		apiKeys = []*models.ApiKey{}
	}
	return apiKeys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID, keyID string) error {
	if keyID == "" {
		return fmt.Errorf("%w: key id is required", ErrInvalidInput)
	}

	isValid, err := s.k.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		return fmt.Errorf("api key %s: %w", keyID, ErrNotFound)
	}

	return s.k.Remove(ctx, keyID)
}
