package service

import (
	"context"
	"strings"

	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
	"socialdesk/pkg/utils"
)

type AdminService interface {
	CreateEmployee(ctx context.Context, actor transfer.Actor, req *transfer.EmployeeCreation) (*models.User, error)
	ListEmployees(ctx context.Context, actor transfer.Actor) ([]*models.User, error)
	AssignAccess(ctx context.Context, actor transfer.Actor, req *transfer.AccessAssignment) (*models.ClientAccess, error)
	ListAccess(ctx context.Context, actor transfer.Actor, userID int64) ([]*models.ClientAccess, error)
}

type adminService struct {
	access AccessService
	ur     repository.UserRepository
	cr     repository.ClientRepository
	ca     repository.ClientAccessRepository
}

func NewAdminService(access AccessService, ur repository.UserRepository, cr repository.ClientRepository, ca repository.ClientAccessRepository) AdminService {
	return &adminService{
		access: access,
		ur:     ur,
		cr:     cr,
		ca:     ca,
	}
}

func (s *adminService) CreateEmployee(ctx context.Context, actor transfer.Actor, req *transfer.EmployeeCreation) (*models.User, error) {
	if err := s.access.Authorize(ctx, actor, OpManageUsers, 0); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "email, password and name are required")
	}

	existing, err := s.ur.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.Conflict, "user already exists")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Name:     strings.TrimSpace(req.Name),
		Role:     models.RoleEmployee,
		JobTitle: req.JobTitle,
		IsActive: true,
	}

	id, err := s.ur.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	created, err := s.ur.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created != nil {
		created.Password = ""
	}
	return created, nil
}

func (s *adminService) ListEmployees(ctx context.Context, actor transfer.Actor) ([]*models.User, error) {
	if err := s.access.Authorize(ctx, actor, OpManageUsers, 0); err != nil {
		return nil, err
	}

	users, err := s.ur.ListByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

// AssignAccess grants or regrades an employee's permission on a client.
// Re-assigning overwrites the previous level.
func (s *adminService) AssignAccess(ctx context.Context, actor transfer.Actor, req *transfer.AccessAssignment) (*models.ClientAccess, error) {
	if err := s.access.Authorize(ctx, actor, OpAssignAccess, 0); err != nil {
		return nil, err
	}

	if !models.ValidPermissionLevel(req.PermissionLevel) {
		return nil, apperrors.New(apperrors.InvalidArgument, "invalid permission level")
	}

	user, err := s.ur.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	client, err := s.cr.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if user == nil || client == nil {
		return nil, apperrors.New(apperrors.NotFound, "user or client not found")
	}

	grant := &models.ClientAccess{
		UserID:          req.UserID,
		ClientID:        req.ClientID,
		PermissionLevel: req.PermissionLevel,
	}
	if err := s.ca.Upsert(ctx, grant); err != nil {
		return nil, err
	}

	return s.ca.Get(ctx, req.UserID, req.ClientID)
}

// ListAccess returns every client grant held by one employee.
func (s *adminService) ListAccess(ctx context.Context, actor transfer.Actor, userID int64) ([]*models.ClientAccess, error) {
	if err := s.access.Authorize(ctx, actor, OpAssignAccess, 0); err != nil {
		return nil, err
	}

	user, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.NotFound, "user not found")
	}

	return s.ca.ListByUser(ctx, userID)
}
