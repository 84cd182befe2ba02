package service

import (
	"context"
	"strings"

	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
)

const recentPostsLimit = 5

type ClientService interface {
	Create(ctx context.Context, actor transfer.Actor, req *transfer.ClientCreation) (*models.Client, error)
	List(ctx context.Context, actor transfer.Actor) ([]*models.Client, error)
	Info(ctx context.Context, actor transfer.Actor, clientID int64) (*transfer.ClientDetail, error)
	Update(ctx context.Context, actor transfer.Actor, clientID int64, req *transfer.ClientUpdate) (*models.Client, error)
	Remove(ctx context.Context, actor transfer.Actor, clientID int64) error
}

type clientService struct {
	access AccessService
	cr     repository.ClientRepository
	sa     repository.SocialAccountRepository
	pr     repository.PostRepository
}

func NewClientService(access AccessService, cr repository.ClientRepository, sa repository.SocialAccountRepository, pr repository.PostRepository) ClientService {
	return &clientService{
		access: access,
		cr:     cr,
		sa:     sa,
		pr:     pr,
	}
}

func (s *clientService) Create(ctx context.Context, actor transfer.Actor, req *transfer.ClientCreation) (*models.Client, error) {
	if err := s.access.Authorize(ctx, actor, OpManageClients, 0); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "client name is required")
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	client := &models.Client{
		Name:     name,
		Industry: req.Industry,
		Timezone: timezone,
	}

	id, err := s.cr.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	return s.cr.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, actor transfer.Actor) ([]*models.Client, error) {
	if err := s.access.Authorize(ctx, actor, OpManageClients, 0); err != nil {
		return nil, err
	}
	return s.cr.List(ctx)
}

// Info bundles the client with its connected accounts and latest posts.
func (s *clientService) Info(ctx context.Context, actor transfer.Actor, clientID int64) (*transfer.ClientDetail, error) {
	if err := s.access.Authorize(ctx, actor, OpManageClients, 0); err != nil {
		return nil, err
	}

	client, err := s.cr.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.New(apperrors.NotFound, "client not found")
	}

	accounts, err := s.sa.ListInfoByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	posts, err := s.pr.ListRecentByClient(ctx, clientID, recentPostsLimit)
	if err != nil {
		return nil, err
	}

	return &transfer.ClientDetail{
		Client:      client,
		Accounts:    accounts,
		RecentPosts: posts,
	}, nil
}

func (s *clientService) Update(ctx context.Context, actor transfer.Actor, clientID int64, req *transfer.ClientUpdate) (*models.Client, error) {
	if err := s.access.Authorize(ctx, actor, OpManageClients, 0); err != nil {
		return nil, err
	}

	client, err := s.cr.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperrors.New(apperrors.NotFound, "client not found")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.New(apperrors.InvalidArgument, "client name cannot be empty")
		}
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Industry != nil {
		client.Industry = *req.Industry
	}
	if req.Timezone != nil {
		client.Timezone = *req.Timezone
	}

	if err := s.cr.Update(ctx, client); err != nil {
		return nil, err
	}
	return s.cr.GetByID(ctx, clientID)
}

func (s *clientService) Remove(ctx context.Context, actor transfer.Actor, clientID int64) error {
	if err := s.access.Authorize(ctx, actor, OpManageClients, 0); err != nil {
		return err
	}

	client, err := s.cr.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return apperrors.New(apperrors.NotFound, "client not found")
	}

	return s.cr.Remove(ctx, clientID)
}
