package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/repository"
)

const postingTimeLayout = "15:04"

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID, frequency string, channels []string, postingTime string) (*models.Settings, error)
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

func defaultSettings(userID string) *models.Settings {
	return &models.Settings{
		UserID:      userID,
		Frequency:   models.FrequencyMedium,
		Channels:    []string{"instagram"},
		PostingTime: "09:00",
	}
}

// GetSettingsInfo returns the stored settings or the defaults used by the
// calendar slotter when none were saved.
func (s *settingsService) GetSettingsInfo(ctx context.Context, userID string) (*models.Settings, error) {
	settings, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return defaultSettings(userID), nil
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID, frequency string, channels []string, postingTime string) (*models.Settings, error) {
	switch frequency {
	case models.FrequencyLow, models.FrequencyMedium, models.FrequencyHigh:
	default:
		return nil, fmt.Errorf("%w: frequency must be low, medium or high", ErrInvalidInput)
	}

	if _, err := time.Parse(postingTimeLayout, postingTime); err != nil {
		return nil, fmt.Errorf("%w: posting_time must look like 15:04", ErrInvalidInput)
	}

	cleaned := []string{}
	seen := map[string]bool{}
	for _, c := range channels {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cleaned = append(cleaned, c)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one channel is required", ErrInvalidInput)
	}

	settings := &models.Settings{
		UserID:      userID,
		Frequency:   frequency,
		Channels:    cleaned,
		PostingTime: postingTime,
	}
	if err := s.sr.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return s.GetSettingsInfo(ctx, userID)
}
