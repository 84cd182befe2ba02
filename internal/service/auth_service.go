package service

import (
	"context"
	"strings"
	"time"

	config "socialdesk/configs"
	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/pkg/apperrors"
	"socialdesk/pkg/utils"
)

const tokenDuration = 24 * time.Hour

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	cfg config.Config
	ur  repository.UserRepository
}

func NewAuthService(cfg config.Config, ur repository.UserRepository) AuthService {
	return &authService{cfg: cfg, ur: ur}
}

// Login checks credentials and issues a signed token. Unknown emails,
// wrong passwords and deactivated accounts all produce the same error
// so callers cannot probe which addresses exist.
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.ur.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.IsActive {
		return "", nil, apperrors.New(apperrors.Unauthorized, "invalid credentials")
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, apperrors.New(apperrors.Unauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, user.ID, user.Role, tokenDuration)
	if err != nil {
		return "", nil, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.NotFound, "user not found")
	}
	user.Password = ""
	return user, nil
}
