package selfservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/employee"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	"github.com/heyyrintu/hrms-sub001/internal/policy"
	selfserviceerrors "github.com/heyyrintu/hrms-sub001/internal/selfservice/errors"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=selfservice_service.go -destination=mock/selfservice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateChangeRequestRequest) (ChangeRequestResponse, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]ChangeRequestResponse, error)
	ListAll(ctx context.Context, tenantID, status string) ([]ChangeRequestResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (ChangeRequestResponse, error)
	Review(ctx context.Context, actor domain.Actor, id string, req ReviewChangeRequestRequest) (ChangeRequestResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	policy     policy.Evaluator
	dispatcher notification.Dispatcher
	validate   *validator.Validate
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	evaluator policy.Evaluator,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("selfservice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("selfservice.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		policy:     evaluator,
		dispatcher: dispatcher,
		validate:   validator.New(),
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateChangeRequestRequest) (ChangeRequestResponse, error) {
	s.logger.Debug("create change request requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("employee_id", actor.EmployeeID),
		zap.String("field", req.FieldName),
	)

	if actor.EmployeeID == "" {
		return ChangeRequestResponse{}, selfserviceerrors.ErrNoEmployeeProfile
	}
	tenantUUID, err := uuid.Parse(actor.TenantID)
	if err != nil {
		return ChangeRequestResponse{}, selfserviceerrors.ErrNoEmployeeProfile
	}

	field := strings.TrimSpace(req.FieldName)
	if _, ok := ColumnFor(field); !ok {
		s.logger.Warn("create change request field not allowed", zap.String("field", field))
		return ChangeRequestResponse{}, selfserviceerrors.ErrFieldNotAllowed
	}
	newValue := strings.TrimSpace(req.NewValue)
	if err := s.validate.Var(newValue, valueRules[field]); err != nil {
		s.logger.Warn("create change request invalid value", zap.String("field", field), zap.Error(err))
		return ChangeRequestResponse{}, selfserviceerrors.ErrInvalidValue
	}

	emp, err := s.employees.FindByID(ctx, actor.TenantID, actor.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeRequestResponse{}, selfserviceerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create change request employee lookup failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	pending, err := s.repo.HasPending(ctx, actor.TenantID, actor.EmployeeID, field)
	if err != nil {
		s.logger.Error("create change request pending check failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	if pending {
		s.logger.Warn("create change request already pending", zap.String("field", field))
		return ChangeRequestResponse{}, selfserviceerrors.ErrPendingExists
	}

	cr := &ChangeRequest{
		TenantID:   tenantUUID,
		EmployeeID: emp.ID,
		FieldName:  field,
		OldValue:   currentValue(emp, field),
		NewValue:   newValue,
		Status:     StatusPending,
	}
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		cr.Reason = &reason
	}

	if err := s.repo.Create(ctx, cr); err != nil {
		s.logger.Error("create change request failed", zap.Error(err))
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create change request success", zap.String("change_request_id", cr.ID.String()))
	return mapToResponse(*cr), nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor) ([]ChangeRequestResponse, error) {
	if actor.EmployeeID == "" {
		return nil, selfserviceerrors.ErrNoEmployeeProfile
	}

	rows, err := s.repo.FindByEmployee(ctx, actor.TenantID, actor.EmployeeID)
	if err != nil {
		s.logger.Error("list my change requests failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListAll(ctx context.Context, tenantID, status string) ([]ChangeRequestResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, selfserviceerrors.ErrInvalidStatus
	}

	rows, err := s.repo.FindAll(ctx, tenantID, status)
	if err != nil {
		s.logger.Error("list change requests failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (ChangeRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ChangeRequestResponse{}, selfserviceerrors.ErrChangeRequestNotFound
	}

	cr, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}
	if !actor.IsAdmin() && cr.EmployeeID.String() != actor.EmployeeID {
		return ChangeRequestResponse{}, selfserviceerrors.ErrViewForbidden
	}
	return mapToResponse(*cr), nil
}

// Review applies an approved value and marks the request in one transaction,
// so a failed employee write leaves the request PENDING.
func (s *service) Review(ctx context.Context, actor domain.Actor, id string, req ReviewChangeRequestRequest) (ChangeRequestResponse, error) {
	s.logger.Debug("review change request requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("change_request_id", id),
		zap.String("status", req.Status),
	)

	allowed, err := s.policy.Allow(policy.SubjectOf(actor), policy.Resource{Kind: policy.KindChangeRequest}, policy.ActReview)
	if err != nil {
		return ChangeRequestResponse{}, err
	}
	if !allowed {
		s.logger.Warn("review change request forbidden", zap.String("role", actor.Role))
		return ChangeRequestResponse{}, selfserviceerrors.ErrReviewForbidden
	}

	if req.Status != StatusApproved && req.Status != StatusRejected {
		return ChangeRequestResponse{}, selfserviceerrors.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return ChangeRequestResponse{}, selfserviceerrors.ErrChangeRequestNotFound
	}

	cr, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return ChangeRequestResponse{}, mapRepositoryError(err)
	}
	if cr.Status != StatusPending {
		s.logger.Warn("review change request already reviewed", zap.String("change_request_id", id))
		return ChangeRequestResponse{}, selfserviceerrors.ErrAlreadyReviewed
	}

	review := Review{
		Status:     req.Status,
		ReviewedBy: parseOptionalUUID(actor.EmployeeID),
		ReviewedAt: s.now().UTC(),
	}
	if note := strings.TrimSpace(req.ReviewNote); note != "" {
		review.Note = &note
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review change request begin tx failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	defer tx.Rollback()

	if review.Status == StatusApproved {
		column, ok := ColumnFor(cr.FieldName)
		if !ok {
			return ChangeRequestResponse{}, selfserviceerrors.ErrFieldNotAllowed
		}
		n, err := s.employees.WithTx(tx).UpdateField(ctx, actor.TenantID, cr.EmployeeID.String(), column, cr.NewValue)
		if err != nil {
			s.logger.Error("apply change request failed", zap.Error(err))
			return ChangeRequestResponse{}, err
		}
		if n == 0 {
			s.logger.Warn("apply change request employee missing", zap.String("employee_id", cr.EmployeeID.String()))
			return ChangeRequestResponse{}, selfserviceerrors.ErrEmployeeNotFound
		}
	}

	n, err := s.repo.WithTx(tx).MarkReviewed(ctx, actor.TenantID, id, review)
	if err != nil {
		s.logger.Error("mark change request reviewed failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("change request reviewed concurrently", zap.String("change_request_id", id))
		return ChangeRequestResponse{}, selfserviceerrors.ErrAlreadyReviewed
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review change request commit failed", zap.Error(err))
		return ChangeRequestResponse{}, err
	}

	cr.Status = review.Status
	cr.ReviewedBy = review.ReviewedBy
	cr.ReviewNote = review.Note
	cr.ReviewedAt = &review.ReviewedAt

	s.notifyOutcome(ctx, actor.TenantID, cr)
	s.logger.Info("review change request success",
		zap.String("change_request_id", id),
		zap.String("status", cr.Status),
	)
	return mapToResponse(*cr), nil
}

func (s *service) notifyOutcome(ctx context.Context, tenantID string, cr *ChangeRequest) {
	typ, title, verb := notification.TypeChangeRequestRejected, "Change request rejected", "rejected"
	if cr.Status == StatusApproved {
		typ, title, verb = notification.TypeChangeRequestApproved, "Change request approved", "approved"
	}

	s.dispatcher.Dispatch(ctx, notification.ToEmployee(tenantID, cr.EmployeeID.String(),
		typ,
		title,
		fmt.Sprintf("Your request to change %s was %s.", cr.FieldName, verb),
		"/self-service/change-requests/"+cr.ID.String(),
	))
}

func parseOptionalUUID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(cr ChangeRequest) ChangeRequestResponse {
	resp := ChangeRequestResponse{
		ID:           cr.ID.String(),
		EmployeeID:   cr.EmployeeID.String(),
		EmployeeName: cr.Employee.FullName(),
		FieldName:    cr.FieldName,
		OldValue:     cr.OldValue,
		NewValue:     cr.NewValue,
		Reason:       cr.Reason,
		Status:       cr.Status,
		ReviewNote:   cr.ReviewNote,
		ReviewedAt:   cr.ReviewedAt,
		CreatedAt:    cr.CreatedAt,
	}
	if cr.ReviewedBy != nil {
		by := cr.ReviewedBy.String()
		resp.ReviewedBy = &by
	}
	return resp
}

func mapToListResponse(rows []ChangeRequest) []ChangeRequestResponse {
	out := make([]ChangeRequestResponse, len(rows))
	for i, cr := range rows {
		out[i] = mapToResponse(cr)
	}
	return out
}
