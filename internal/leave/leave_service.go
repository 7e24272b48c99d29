package leave

import (
	"context"
	"time"

	leaveerrors "github.com/heyyrintu/hrms-sub001/internal/leave/errors"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	GetBalances(ctx context.Context, tenantID, employeeID string, year int) ([]LeaveBalanceResponse, error)
	ListLeaveTypes(ctx context.Context, tenantID string) ([]LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// CreditCompOff lazily creates the tenant's COMP_OFF leave type and adds days
// to the employee's balance for year. Pass a tx-bound repository to make the
// credit part of a larger unit of work.
func CreditCompOff(ctx context.Context, repo Repository, tenantID, employeeID string, year int, days float64) (float64, error) {
	if days < 0 {
		return 0, leaveerrors.ErrInvalidCreditDays
	}

	lt, err := repo.EnsureLeaveType(ctx, tenantID, CodeCompOff, "Compensatory Off")
	if err != nil {
		return 0, err
	}
	return repo.CreditBalance(ctx, tenantID, employeeID, lt.ID.String(), year, days)
}

func (s *service) GetBalances(ctx context.Context, tenantID, employeeID string, year int) ([]LeaveBalanceResponse, error) {
	s.logger.Debug("get leave balances requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", tenantID),
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
	)

	if employeeID == "" {
		return nil, leaveerrors.ErrNoEmployeeProfile
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = s.now().UTC().Year()
	}
	if year < 2000 || year > 2100 {
		s.logger.Warn("get leave balances invalid year", zap.Int("year", year))
		return nil, leaveerrors.ErrInvalidYear
	}

	rows, err := s.repo.FindBalances(ctx, tenantID, employeeID, year)
	if err != nil {
		s.logger.Error("get leave balances failed", zap.Error(err))
		return nil, err
	}

	out := make([]LeaveBalanceResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, mapBalanceToResponse(b))
	}
	return out, nil
}

func (s *service) ListLeaveTypes(ctx context.Context, tenantID string) ([]LeaveTypeResponse, error) {
	rows, err := s.repo.FindLeaveTypes(ctx, tenantID)
	if err != nil {
		s.logger.Error("list leave types failed", zap.Error(err))
		return nil, err
	}

	out := make([]LeaveTypeResponse, 0, len(rows))
	for _, lt := range rows {
		out = append(out, LeaveTypeResponse{
			ID:          lt.ID.String(),
			Name:        lt.Name,
			Code:        lt.Code,
			DefaultDays: lt.DefaultDays,
			IsActive:    lt.IsActive,
		})
	}
	return out, nil
}

func mapBalanceToResponse(b LeaveBalance) LeaveBalanceResponse {
	resp := LeaveBalanceResponse{
		ID:          b.ID.String(),
		EmployeeID:  b.EmployeeID.String(),
		LeaveTypeID: b.LeaveTypeID.String(),
		Year:        b.Year,
		TotalDays:   b.TotalDays,
		UsedDays:    b.UsedDays,
		PendingDays: b.PendingDays,
		CarriedOver: b.CarriedOver,
		Available:   b.Available(),
	}
	if b.LeaveType != nil {
		resp.LeaveTypeCode = b.LeaveType.Code
		resp.LeaveTypeName = b.LeaveType.Name
	}
	return resp
}
