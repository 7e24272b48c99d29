package user

import (
	"context"
	"errors"
	"strings"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"
	usererrors "github.com/heyyrintu/hrms-sub001/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, tenantID, role string) ([]UserResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, tenantID, role string) ([]UserResponse, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	s.logger.Debug("get all users requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", tenantID),
		zap.String("role", role),
	)

	if role != "" && !domain.IsValidRole(role) {
		return nil, usererrors.ErrInvalidRole
	}

	users, err := s.repo.FindAll(ctx, tenantID, role)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrUserNotFound
	}

	u, err := s.repo.FindByID(ctx, tenantID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, usererrors.ErrUserNotFound
	}
	if err != nil {
		s.logger.Error("get user by id failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.EmployeeID != nil {
		id := u.EmployeeID.String()
		resp.EmployeeID = &id
	}
	if u.Employee != nil {
		resp.FullName = strings.TrimSpace(u.Employee.FirstName + " " + u.Employee.LastName)
	}
	return resp
}
