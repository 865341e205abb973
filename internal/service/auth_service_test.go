package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/marketing-planner/internal/mocks"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertUser(t *testing.T) {
	users := mocks.NewMockUserRepository()
	s := &authService{u: users}
	ctx := context.Background()

	_, err := s.upsertUser(ctx, transfer.GoogleUserInfo{ID: "g-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	id, err := s.upsertUser(ctx, transfer.GoogleUserInfo{ID: "g-1", Email: "sam@example.com", Name: "Sam"})
	require.NoError(t, err)
	require.Contains(t, users.Users, id)

	again, err := s.upsertUser(ctx, transfer.GoogleUserInfo{ID: "g-1", Email: "sam@example.com", Name: "Sam R", Picture: "https://img/sam.png"})
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Len(t, users.Users, 1)
	assert.Equal(t, "Sam R", users.Users[id].Name)
	assert.Equal(t, "https://img/sam.png", users.Users[id].ProfilePicture)
}

func TestLoginCallbackNeedsCode(t *testing.T) {
	s := &authService{u: mocks.NewMockUserRepository()}

	_, err := s.LoginCallback(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserInfo(t *testing.T) {
	users := mocks.NewMockUserRepository()
	id, _ := users.Create(context.Background(), &models.User{Email: "sam@example.com"})
	svc := NewUserService(users)

	u, err := svc.GetUserInfo(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", u.Email)

	_, err = svc.GetUserInfo(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
