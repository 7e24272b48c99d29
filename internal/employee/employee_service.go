package employee

import (
	"context"

	employeeerrors "github.com/heyyrintu/hrms-sub001/internal/employee/errors"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, tenantID, status string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (EmployeeResponse, error)
	GetTeam(ctx context.Context, tenantID, managerID string) ([]EmployeeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, tenantID, status string) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", tenantID),
		zap.String("status", status),
	)

	switch status {
	case "", StatusActive, StatusInactive, StatusOnLeave, StatusTerminated:
	default:
		return nil, employeeerrors.ErrInvalidStatus
	}

	rows, err := s.repo.FindAll(ctx, tenantID, status)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, MapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	e, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, MapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) GetTeam(ctx context.Context, tenantID, managerID string) ([]EmployeeResponse, error) {
	if managerID == "" {
		return nil, employeeerrors.ErrNoEmployeeProfile
	}

	rows, err := s.repo.FindDirectReports(ctx, tenantID, managerID)
	if err != nil {
		s.logger.Error("get team failed", zap.String("manager_id", managerID), zap.Error(err))
		return nil, MapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(e Employee) EmployeeResponse {
	var managerID *string
	if e.ManagerID != nil {
		id := e.ManagerID.String()
		managerID = &id
	}
	return EmployeeResponse{
		ID:             e.ID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		Phone:          e.Phone,
		Designation:    e.Designation,
		Status:         e.Status,
		ManagerID:      managerID,
		HireDate:       e.HireDate,
	}
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, mapToResponse(e))
	}
	return out
}
