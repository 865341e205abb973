package service

import (
	"context"
	"errors"
	"fmt"

	config "github.com/maheshrc27/marketing-planner/configs"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	"github.com/maheshrc27/marketing-planner/internal/transfer"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type AuthService interface {
	LoginURL(state string) string
	LoginCallback(ctx context.Context, code string) (string, error)
}

type authService struct {
	oauth *oauth2.Config
	u     repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{googleoauth2.UserinfoEmailScope, googleoauth2.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
		u: u,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// LoginCallback exchanges the code, reads the Google profile and returns the
// id of the matching user, creating one on first login.
func (s *authService) LoginCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: code is empty", ErrInvalidInput)
	}
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" || s.oauth.RedirectURL == "" {
		return "", errors.New("OAuth2 configuration is incomplete")
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		zap.L().Warn("oauth code exchange failed", zap.Error(err))
		return "", err
	}

	svc, err := googleoauth2.NewService(ctx, option.WithHTTPClient(s.oauth.Client(ctx, token)))
	if err != nil {
		return "", err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		zap.L().Warn("unable to read google user info", zap.Error(err))
		return "", err
	}

	return s.upsertUser(ctx, transfer.GoogleUserInfo{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	})
}

func (s *authService) upsertUser(ctx context.Context, info transfer.GoogleUserInfo) (string, error) {
	if info.Email == "" {
		return "", fmt.Errorf("%w: google account has no email", ErrInvalidInput)
	}

	user, isExist, err := s.u.GetByEmail(ctx, info.Email)
	if err != nil {
		return "", err
	}

	if !isExist {
		return s.u.Create(ctx, &models.User{
			GoogleID:       info.ID,
			Email:          info.Email,
			Name:           info.Name,
			ProfilePicture: info.Picture,
		})
	}

	if user.GoogleID == "" || user.Name != info.Name || user.ProfilePicture != info.Picture {
		user.GoogleID = info.ID
		user.Name = info.Name
		user.ProfilePicture = info.Picture
		if err := s.u.Update(ctx, user); err != nil {
			return "", err
		}
	}
	return user.ID, nil
}
