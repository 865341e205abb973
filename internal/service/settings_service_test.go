package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	svc := NewSettingsService(mocks.NewMockSettingsRepository())

	s, err := svc.GetSettingsInfo(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyMedium, s.Frequency)
	assert.Equal(t, []string{"instagram"}, s.Channels)
	assert.Equal(t, "09:00", s.PostingTime)
}

func TestUpdateSettings(t *testing.T) {
	repo := mocks.NewMockSettingsRepository()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	tests := []struct {
		name      string
		frequency string
		channels  []string
		time      string
	}{
		{"unknown frequency", "daily", []string{"instagram"}, "09:00"},
		{"bad time", models.FrequencyLow, []string{"instagram"}, "9am"},
		{"no channels", models.FrequencyLow, []string{" ", ""}, "09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSettings(ctx, owner, tt.frequency, tt.channels, tt.time)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.Settings)

	s, err := svc.UpdateSettings(ctx, owner, models.FrequencyHigh, []string{" Instagram", "linkedin", "INSTAGRAM"}, "18:30")
	require.NoError(t, err)
	assert.Equal(t, []string{"instagram", "linkedin"}, s.Channels)
	assert.Equal(t, models.FrequencyHigh, s.Frequency)
	assert.Equal(t, "18:30", s.PostingTime)
}
