package service

import (
	"context"
	"strings"

	config "socialdesk/configs"
	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
	"socialdesk/pkg/utils"
)

type AccountService interface {
	Create(ctx context.Context, actor transfer.Actor, req *transfer.AccountCreation) (*models.SocialAccount, error)
	List(ctx context.Context, actor transfer.Actor, clientID int64) ([]*models.SocialAccount, error)
	Remove(ctx context.Context, actor transfer.Actor, accountID int64) error
}

type accountService struct {
	cfg    config.Config
	access AccessService
	sa     repository.SocialAccountRepository
	cr     repository.ClientRepository
}

func NewAccountService(cfg config.Config, access AccessService, sa repository.SocialAccountRepository, cr repository.ClientRepository) AccountService {
	return &accountService{
		cfg:    cfg,
		access: access,
		sa:     sa,
		cr:     cr,
	}
}

// Create connects a platform account to a client. The access token is
// encrypted at rest and never returned in responses.
func (s *accountService) Create(ctx context.Context, actor transfer.Actor, req *transfer.AccountCreation) (*models.SocialAccount, error) {
	if err := s.access.Authorize(ctx, actor, OpManageAccounts, req.ClientID); err != nil {
		return nil, err
	}

	if !models.ValidPlatform(req.Platform) {
		return nil, apperrors.New(apperrors.InvalidArgument, "invalid platform")
	}
	if strings.TrimSpace(req.PlatformID) == "" || strings.TrimSpace(req.AccessToken) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "platform_id and access_token are required")
	}

	client, err := s.cr.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.New(apperrors.NotFound, "client not found")
	}

	exists, err := s.sa.Exists(ctx, req.ClientID, req.Platform)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.New(apperrors.Conflict, "account already connected for this platform")
	}

	encrypted, err := utils.Encrypt(req.AccessToken, []byte(s.cfg.TokenCryptKey))
	if err != nil {
		return nil, err
	}

	account := &models.SocialAccount{
		ClientID:    req.ClientID,
		Platform:    req.Platform,
		PlatformID:  req.PlatformID,
		AccessToken: encrypted,
		ProfileName: req.ProfileName,
	}

	id, err := s.sa.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	created, err := s.sa.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created != nil {
		created.AccessToken = ""
	}
	return created, nil
}

func (s *accountService) List(ctx context.Context, actor transfer.Actor, clientID int64) ([]*models.SocialAccount, error) {
	if err := s.access.Authorize(ctx, actor, OpListAccounts, clientID); err != nil {
		return nil, err
	}
	return s.sa.ListInfoByClient(ctx, clientID)
}

func (s *accountService) Remove(ctx context.Context, actor transfer.Actor, accountID int64) error {
	account, err := s.sa.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.New(apperrors.NotFound, "account not found")
	}

	if err := s.access.Authorize(ctx, actor, OpManageAccounts, account.ClientID); err != nil {
		return err
	}

	return s.sa.Remove(ctx, accountID)
}
