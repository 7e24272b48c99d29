package compoff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	compofferrors "github.com/heyyrintu/hrms-sub001/internal/compoff/errors"
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/leave"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	"github.com/heyyrintu/hrms-sub001/internal/policy"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// HolidayChecker is satisfied by holiday.Service.
type HolidayChecker interface {
	IsHoliday(ctx context.Context, tenantID string, date time.Time) (bool, error)
}

// ReportLister is satisfied by employee.Repository.
type ReportLister interface {
	DirectReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error)
}

//go:generate mockgen -source=compoff_service.go -destination=mock/compoff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateCompOffRequest) (CompOffResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (CompOffResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]CompOffResponse, error)
	ListAll(ctx context.Context, tenantID, status string) ([]CompOffResponse, error)
	GetPendingApprovals(ctx context.Context, actor domain.Actor) ([]CompOffResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id, note string) (CompOffResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id, note string) (CompOffResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	leaveRepo  leave.Repository
	reports    ReportLister
	holidays   HolidayChecker
	policy     policy.Evaluator
	dispatcher notification.Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveRepo leave.Repository,
	reports ReportLister,
	holidays HolidayChecker,
	evaluator policy.Evaluator,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("compoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compoff.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		leaveRepo:  leaveRepo,
		reports:    reports,
		holidays:   holidays,
		policy:     evaluator,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateCompOffRequest) (CompOffResponse, error) {
	s.logger.Debug("create comp-off requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("employee_id", actor.EmployeeID),
		zap.String("worked_date", req.WorkedDate),
	)

	tenantUUID, err := uuid.Parse(actor.TenantID)
	if err != nil {
		return CompOffResponse{}, compofferrors.ErrNoEmployeeProfile
	}
	employeeUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return CompOffResponse{}, compofferrors.ErrNoEmployeeProfile
	}

	workedDate, err := time.Parse(dateLayout, strings.TrimSpace(req.WorkedDate))
	if err != nil {
		return CompOffResponse{}, compofferrors.ErrInvalidWorkedDate
	}

	earnedDays := 1.0
	if req.EarnedDays != nil {
		earnedDays = *req.EarnedDays
	}
	if earnedDays < 0 {
		return CompOffResponse{}, compofferrors.ErrNegativeEarnedDays
	}

	today := truncateDay(s.now().UTC())
	if workedDate.After(today) {
		s.logger.Warn("create comp-off future date", zap.String("worked_date", req.WorkedDate))
		return CompOffResponse{}, compofferrors.ErrFutureWorkedDate
	}

	if !isWeekend(workedDate) {
		holiday, err := s.holidays.IsHoliday(ctx, actor.TenantID, workedDate)
		if err != nil {
			s.logger.Error("create comp-off holiday lookup failed", zap.Error(err))
			return CompOffResponse{}, err
		}
		if !holiday {
			s.logger.Warn("create comp-off on working day", zap.String("worked_date", req.WorkedDate))
			return CompOffResponse{}, compofferrors.ErrNotWeekendOrHoliday
		}
	}

	exists, err := s.repo.ExistsForDate(ctx, actor.TenantID, actor.EmployeeID, workedDate)
	if err != nil {
		s.logger.Error("create comp-off duplicate check failed", zap.Error(err))
		return CompOffResponse{}, err
	}
	if exists {
		s.logger.Warn("create comp-off duplicate", zap.String("worked_date", req.WorkedDate))
		return CompOffResponse{}, compofferrors.ErrDuplicateRequest
	}

	row := &CompOffRequest{
		TenantID:   tenantUUID,
		EmployeeID: employeeUUID,
		WorkedDate: workedDate,
		Reason:     strings.TrimSpace(req.Reason),
		EarnedDays: earnedDays,
		ExpiryDate: workedDate.AddDate(0, 0, ExpiryDays),
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create comp-off failed", zap.Error(err))
		return CompOffResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create comp-off success", zap.String("comp_off_id", row.ID.String()))
	return mapToResponse(*row), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (CompOffResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompOffResponse{}, compofferrors.ErrCompOffNotFound
	}

	row, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return CompOffResponse{}, mapRepositoryError(err)
	}

	if row.EmployeeID.String() != actor.EmployeeID {
		if err := s.authorize(actor, row); err != nil {
			return CompOffResponse{}, err
		}
	}
	return mapToResponse(*row), nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]CompOffResponse, error) {
	if actor.EmployeeID == "" {
		return nil, compofferrors.ErrNoEmployeeProfile
	}

	rows, err := s.repo.FindByEmployee(ctx, actor.TenantID, actor.EmployeeID)
	if err != nil {
		s.logger.Error("list my comp-offs failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListAll(ctx context.Context, tenantID, status string) ([]CompOffResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, compofferrors.ErrInvalidStatus
	}

	rows, err := s.repo.FindAll(ctx, tenantID, status)
	if err != nil {
		s.logger.Error("list comp-offs failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// GetPendingApprovals scopes managers to their direct reports. Admins see
// every pending request in the tenant.
func (s *service) GetPendingApprovals(ctx context.Context, actor domain.Actor) ([]CompOffResponse, error) {
	if actor.IsAdmin() {
		return s.ListAll(ctx, actor.TenantID, StatusPending)
	}
	if actor.EmployeeID == "" {
		return nil, compofferrors.ErrNoEmployeeProfile
	}

	ids, err := s.reports.DirectReportIDs(ctx, actor.TenantID, actor.EmployeeID)
	if err != nil {
		s.logger.Error("pending approvals report lookup failed", zap.Error(err))
		return nil, err
	}
	if len(ids) == 0 {
		return []CompOffResponse{}, nil
	}

	rows, err := s.repo.FindPendingByEmployees(ctx, actor.TenantID, ids)
	if err != nil {
		s.logger.Error("pending approvals lookup failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id, note string) (CompOffResponse, error) {
	return s.decide(ctx, actor, id, note, true)
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id, note string) (CompOffResponse, error) {
	return s.decide(ctx, actor, id, note, false)
}

func (s *service) decide(ctx context.Context, actor domain.Actor, id, note string, approve bool) (CompOffResponse, error) {
	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	s.logger.Debug("comp-off decision requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("comp_off_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("target", target),
	)

	if _, err := uuid.Parse(id); err != nil {
		return CompOffResponse{}, compofferrors.ErrCompOffNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("comp-off decision begin tx failed", zap.Error(err))
		return CompOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindPending(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("comp-off decision on missing or decided request", zap.String("comp_off_id", id))
		}
		return CompOffResponse{}, mapRepositoryError(err)
	}

	if err := s.authorize(actor, row); err != nil {
		s.logger.Warn("comp-off decision forbidden",
			zap.String("comp_off_id", id),
			zap.String("role", actor.Role),
		)
		return CompOffResponse{}, err
	}

	decision := Decision{Status: target, ApproverID: parseOptionalUUID(actor.EmployeeID)}
	if note = strings.TrimSpace(note); note != "" {
		decision.Note = &note
	}
	decidedAt := s.now().UTC()
	if approve {
		decision.DecidedAt = &decidedAt
	}

	n, err := qtx.Transition(ctx, actor.TenantID, id, StatusPending, decision)
	if err != nil {
		s.logger.Error("comp-off transition failed", zap.Error(err))
		return CompOffResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("comp-off decided concurrently", zap.String("comp_off_id", id))
		return CompOffResponse{}, compofferrors.ErrCompOffNotFound
	}

	if approve {
		total, err := leave.CreditCompOff(ctx, s.leaveRepo.WithTx(tx), actor.TenantID, row.EmployeeID.String(), decidedAt.Year(), row.EarnedDays)
		if err != nil {
			s.logger.Error("comp-off balance credit failed", zap.Error(err))
			return CompOffResponse{}, err
		}
		s.logger.Debug("comp-off balance credited",
			zap.String("employee_id", row.EmployeeID.String()),
			zap.Float64("total_days", total),
		)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("comp-off decision commit failed", zap.Error(err))
		return CompOffResponse{}, err
	}

	row.Status = decision.Status
	row.ApproverID = decision.ApproverID
	row.ApproverNote = decision.Note
	row.ApprovedAt = decision.DecidedAt

	s.notifyDecision(ctx, actor.TenantID, row)
	s.logger.Info("comp-off decision success",
		zap.String("comp_off_id", id),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) authorize(actor domain.Actor, row *CompOffRequest) error {
	managerID := ""
	if row.Employee != nil && row.Employee.ManagerID != nil {
		managerID = row.Employee.ManagerID.String()
	}

	allowed, err := s.policy.Allow(policy.SubjectOf(actor), policy.Resource{
		Kind:      policy.KindCompOff,
		OwnerID:   row.EmployeeID.String(),
		ManagerID: managerID,
	}, policy.ActApprove)
	if err != nil {
		return err
	}
	if !allowed {
		return compofferrors.ErrNotDirectReport
	}
	return nil
}

func (s *service) notifyDecision(ctx context.Context, tenantID string, row *CompOffRequest) {
	day := row.WorkedDate.Format(dateLayout)
	link := "/comp-offs/" + row.ID.String()

	if row.Status == StatusApproved {
		s.dispatcher.Dispatch(ctx, notification.ToEmployee(tenantID, row.EmployeeID.String(),
			notification.TypeCompOffApproved,
			"Comp-off approved",
			fmt.Sprintf("Your comp-off request for %s was approved. %.1f day(s) credited.", day, row.EarnedDays),
			link,
		))
		return
	}

	s.dispatcher.Dispatch(ctx, notification.ToEmployee(tenantID, row.EmployeeID.String(),
		notification.TypeCompOffRejected,
		"Comp-off rejected",
		fmt.Sprintf("Your comp-off request for %s was rejected.", day),
		link,
	))
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseOptionalUUID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(r CompOffRequest) CompOffResponse {
	resp := CompOffResponse{
		ID:           r.ID.String(),
		EmployeeID:   r.EmployeeID.String(),
		WorkedDate:   r.WorkedDate.Format(dateLayout),
		Reason:       r.Reason,
		EarnedDays:   r.EarnedDays,
		ExpiryDate:   r.ExpiryDate.Format(dateLayout),
		Status:       r.Status,
		ApproverNote: r.ApproverNote,
		ApprovedAt:   r.ApprovedAt,
		CreatedAt:    r.CreatedAt,
	}
	if r.ApproverID != nil {
		id := r.ApproverID.String()
		resp.ApproverID = &id
	}
	if r.Employee != nil {
		resp.EmployeeName = strings.TrimSpace(r.Employee.FirstName + " " + r.Employee.LastName)
	}
	return resp
}

func mapToListResponse(rows []CompOffRequest) []CompOffResponse {
	out := make([]CompOffResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}
