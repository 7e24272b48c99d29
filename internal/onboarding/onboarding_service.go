package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/employee"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	onboardingerrors "github.com/heyyrintu/hrms-sub001/internal/onboarding/errors"
	"github.com/heyyrintu/hrms-sub001/internal/policy"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// EmployeeFinder is satisfied by employee.Repository.
type EmployeeFinder interface {
	FindByID(ctx context.Context, tenantID, id string) (*employee.Employee, error)
}

// HRResolver picks the employee behind the HR_ADMIN default assignee.
// user.Repository returns the employee linked to the lowest user id.
type HRResolver interface {
	FirstActiveEmployeeIDByRole(ctx context.Context, tenantID, role string) (string, error)
}

//go:generate mockgen -source=onboarding_service.go -destination=mock/onboarding_service_mock.go -package=mock
type Service interface {
	CreateTemplate(ctx context.Context, tenantID string, req CreateTemplateRequest) (TemplateResponse, error)
	ListTemplates(ctx context.Context, tenantID string, activeOnly bool) ([]TemplateResponse, error)
	GetTemplate(ctx context.Context, tenantID, id string) (TemplateResponse, error)
	UpdateTemplate(ctx context.Context, tenantID, id string, req UpdateTemplateRequest) (TemplateResponse, error)
	DeleteTemplate(ctx context.Context, tenantID, id string) error

	CreateProcess(ctx context.Context, actor domain.Actor, req CreateProcessRequest) (ProcessResponse, error)
	ListProcesses(ctx context.Context, tenantID, status, employeeID string) ([]ProcessResponse, error)
	GetProcess(ctx context.Context, actor domain.Actor, id string) (ProcessResponse, error)
	CancelProcess(ctx context.Context, actor domain.Actor, id string) (ProcessResponse, error)
	DeleteProcess(ctx context.Context, actor domain.Actor, id string) error

	UpdateTask(ctx context.Context, actor domain.Actor, id string, req UpdateTaskRequest) (TaskResponse, error)
	ListMyTasks(ctx context.Context, actor domain.Actor) ([]TaskResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EmployeeFinder
	hr         HRResolver
	policy     policy.Evaluator
	dispatcher notification.Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeFinder,
	hr HRResolver,
	evaluator policy.Evaluator,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("onboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		hr:         hr,
		policy:     evaluator,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) CreateTemplate(ctx context.Context, tenantID string, req CreateTemplateRequest) (TemplateResponse, error) {
	s.logger.Debug("create onboarding template requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", tenantID),
		zap.String("name", req.Name),
	)

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return TemplateResponse{}, onboardingerrors.ErrTemplateNotFound
	}
	if len(req.Tasks) == 0 {
		return TemplateResponse{}, onboardingerrors.ErrTemplateHasNoTasks
	}

	typ := TypeOnboarding
	if req.Type != "" {
		typ = req.Type
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	t := &Template{
		TenantID:    tenantUUID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Type:        typ,
		IsActive:    active,
		Tasks:       toDefinitions(req.Tasks),
	}
	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		s.logger.Error("create onboarding template failed", zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err, onboardingerrors.ErrTemplateNotFound)
	}

	s.logger.Info("create onboarding template success", zap.String("template_id", t.ID.String()))
	return mapTemplateToResponse(*t), nil
}

func (s *service) ListTemplates(ctx context.Context, tenantID string, activeOnly bool) ([]TemplateResponse, error) {
	rows, err := s.repo.FindTemplates(ctx, tenantID, activeOnly)
	if err != nil {
		s.logger.Error("list onboarding templates failed", zap.Error(err))
		return nil, err
	}

	out := make([]TemplateResponse, len(rows))
	for i, t := range rows {
		out[i] = mapTemplateToResponse(t)
	}
	return out, nil
}

func (s *service) GetTemplate(ctx context.Context, tenantID, id string) (TemplateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TemplateResponse{}, onboardingerrors.ErrTemplateNotFound
	}

	t, err := s.repo.FindTemplateByID(ctx, tenantID, id)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err, onboardingerrors.ErrTemplateNotFound)
	}
	return mapTemplateToResponse(*t), nil
}

// UpdateTemplate replaces the task list wholesale. Processes already created
// keep their own copied tasks.
func (s *service) UpdateTemplate(ctx context.Context, tenantID, id string, req UpdateTemplateRequest) (TemplateResponse, error) {
	s.logger.Debug("update onboarding template requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("template_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return TemplateResponse{}, onboardingerrors.ErrTemplateNotFound
	}

	t, err := s.repo.FindTemplateByID(ctx, tenantID, id)
	if err != nil {
		return TemplateResponse{}, mapRepositoryError(err, onboardingerrors.ErrTemplateNotFound)
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if req.Tasks != nil {
		if len(req.Tasks) == 0 {
			return TemplateResponse{}, onboardingerrors.ErrTemplateHasNoTasks
		}
		t.Tasks = toDefinitions(req.Tasks)
	}

	if err := s.repo.SaveTemplate(ctx, t); err != nil {
		s.logger.Error("update onboarding template failed", zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err, onboardingerrors.ErrTemplateNotFound)
	}

	s.logger.Info("update onboarding template success", zap.String("template_id", id))
	return mapTemplateToResponse(*t), nil
}

func (s *service) DeleteTemplate(ctx context.Context, tenantID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return onboardingerrors.ErrTemplateNotFound
	}

	if _, err := s.repo.FindTemplateByID(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err, onboardingerrors.ErrTemplateNotFound)
	}

	count, err := s.repo.CountProcessesByTemplate(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("count template processes failed", zap.Error(err))
		return err
	}
	if count > 0 {
		s.logger.Warn("delete onboarding template in use",
			zap.String("template_id", id),
			zap.Int64("processes", count),
		)
		return onboardingerrors.ErrTemplateInUse
	}

	n, err := s.repo.DeleteTemplate(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("delete onboarding template failed", zap.Error(err))
		return err
	}
	if n == 0 {
		return onboardingerrors.ErrTemplateNotFound
	}

	s.logger.Info("delete onboarding template success", zap.String("template_id", id))
	return nil
}

func (s *service) CreateProcess(ctx context.Context, actor domain.Actor, req CreateProcessRequest) (ProcessResponse, error) {
	s.logger.Debug("create onboarding process requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("template_id", req.TemplateID),
		zap.String("employee_id", req.EmployeeID),
	)

	tenantUUID, err := uuid.Parse(actor.TenantID)
	if err != nil {
		return ProcessResponse{}, onboardingerrors.ErrTemplateNotFound
	}
	templateUUID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		return ProcessResponse{}, onboardingerrors.ErrTemplateNotFound
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return ProcessResponse{}, onboardingerrors.ErrEmployeeNotFound
	}

	tmpl, err := s.repo.FindTemplateByID(ctx, actor.TenantID, req.TemplateID)
	if err != nil {
		return ProcessResponse{}, mapRepositoryError(err, onboardingerrors.ErrTemplateNotFound)
	}
	if !tmpl.IsActive {
		s.logger.Warn("create onboarding process from inactive template", zap.String("template_id", req.TemplateID))
		return ProcessResponse{}, onboardingerrors.ErrTemplateInactive
	}

	emp, err := s.employees.FindByID(ctx, actor.TenantID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProcessResponse{}, onboardingerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create onboarding process employee lookup failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	if emp.Status != employee.StatusActive {
		s.logger.Warn("create onboarding process for inactive employee",
			zap.String("employee_id", req.EmployeeID),
			zap.String("status", emp.Status),
		)
		return ProcessResponse{}, onboardingerrors.ErrEmployeeNotActive
	}

	start := truncateDay(s.now().UTC())
	if req.StartDate != "" {
		if start, err = time.Parse(dateLayout, req.StartDate); err != nil {
			return ProcessResponse{}, onboardingerrors.ErrInvalidDate
		}
	}
	var target *time.Time
	if req.TargetDate != "" {
		t, err := time.Parse(dateLayout, req.TargetDate)
		if err != nil {
			return ProcessResponse{}, onboardingerrors.ErrInvalidDate
		}
		if t.Before(start) {
			return ProcessResponse{}, onboardingerrors.ErrTargetBeforeStart
		}
		target = &t
	}

	resolver := &assigneeResolver{hr: s.hr, tenantID: actor.TenantID, emp: emp}
	defs := sortedDefinitions(tmpl.Tasks)
	tasks := make([]Task, 0, len(defs))
	for _, def := range defs {
		assignee, err := resolver.resolve(ctx, def.DefaultAssigneeRole)
		if err != nil {
			s.logger.Error("resolve onboarding assignee failed",
				zap.String("role", def.DefaultAssigneeRole),
				zap.Error(err),
			)
			return ProcessResponse{}, err
		}

		task := Task{
			TenantID:  tenantUUID,
			Title:     def.Title,
			Category:  def.Category,
			SortOrder: def.SortOrder,
			Status:    TaskPending,
		}
		if def.Description != "" {
			desc := def.Description
			task.Description = &desc
		}
		task.AssigneeID = assignee
		if def.DaysAfterStart != nil {
			due := start.AddDate(0, 0, *def.DaysAfterStart)
			task.DueDate = &due
		}
		tasks = append(tasks, task)
	}

	process := &Process{
		TenantID:   tenantUUID,
		EmployeeID: emp.ID,
		TemplateID: templateUUID,
		Type:       tmpl.Type,
		Status:     ProcessNotStarted,
		StartDate:  start,
		TargetDate: target,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		process.Notes = &notes
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create onboarding process begin tx failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.CreateProcess(ctx, process); err != nil {
		s.logger.Error("create onboarding process failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	for i := range tasks {
		tasks[i].ProcessID = process.ID
	}
	if err := qtx.CreateTasks(ctx, tasks); err != nil {
		s.logger.Error("create onboarding tasks failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create onboarding process commit failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	process.Tasks = tasks
	process.Employee = &ProcessEmployee{ID: emp.ID, FirstName: emp.FirstName, LastName: emp.LastName, ManagerID: emp.ManagerID}

	s.notifyAssignees(ctx, actor.TenantID, process)
	s.logger.Info("create onboarding process success",
		zap.String("process_id", process.ID.String()),
		zap.Int("tasks", len(tasks)),
	)
	return mapProcessToResponse(*process), nil
}

func (s *service) ListProcesses(ctx context.Context, tenantID, status, employeeID string) ([]ProcessResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", ProcessNotStarted, ProcessInProgress, ProcessCompleted, ProcessCancelled:
	default:
		return nil, onboardingerrors.ErrInvalidStatus
	}
	if employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return nil, onboardingerrors.ErrEmployeeNotFound
		}
	}

	rows, err := s.repo.FindProcesses(ctx, tenantID, status, employeeID)
	if err != nil {
		s.logger.Error("list onboarding processes failed", zap.Error(err))
		return nil, err
	}

	out := make([]ProcessResponse, len(rows))
	for i, p := range rows {
		out[i] = mapProcessToResponse(p)
	}
	return out, nil
}

func (s *service) GetProcess(ctx context.Context, actor domain.Actor, id string) (ProcessResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProcessResponse{}, onboardingerrors.ErrProcessNotFound
	}

	p, err := s.repo.FindProcessByID(ctx, actor.TenantID, id)
	if err != nil {
		return ProcessResponse{}, mapRepositoryError(err, onboardingerrors.ErrProcessNotFound)
	}
	if !canViewProcess(actor, p) {
		return ProcessResponse{}, onboardingerrors.ErrProcessForbidden
	}
	return mapProcessToResponse(*p), nil
}

func (s *service) CancelProcess(ctx context.Context, actor domain.Actor, id string) (ProcessResponse, error) {
	s.logger.Debug("cancel onboarding process requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("process_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ProcessResponse{}, onboardingerrors.ErrProcessNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel onboarding process begin tx failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.TransitionProcess(ctx, actor.TenantID, id,
		[]string{ProcessNotStarted, ProcessInProgress}, ProcessCancelled, nil)
	if err != nil {
		s.logger.Error("cancel onboarding process failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	if n == 0 {
		if _, err := qtx.FindProcessByID(ctx, actor.TenantID, id); err != nil {
			return ProcessResponse{}, mapRepositoryError(err, onboardingerrors.ErrProcessNotFound)
		}
		s.logger.Warn("cancel onboarding process in terminal state", zap.String("process_id", id))
		return ProcessResponse{}, onboardingerrors.ErrProcessNotCancellable
	}

	skipped, err := qtx.SkipOpenTasks(ctx, actor.TenantID, id)
	if err != nil {
		s.logger.Error("skip onboarding tasks failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	p, err := qtx.FindProcessByID(ctx, actor.TenantID, id)
	if err != nil {
		return ProcessResponse{}, mapRepositoryError(err, onboardingerrors.ErrProcessNotFound)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel onboarding process commit failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	s.logger.Info("cancel onboarding process success",
		zap.String("process_id", id),
		zap.Int64("skipped_tasks", skipped),
	)
	return mapProcessToResponse(*p), nil
}

func (s *service) DeleteProcess(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return onboardingerrors.ErrProcessNotFound
	}

	p, err := s.repo.FindProcessByID(ctx, actor.TenantID, id)
	if err != nil {
		return mapRepositoryError(err, onboardingerrors.ErrProcessNotFound)
	}
	if p.Status != ProcessNotStarted {
		s.logger.Warn("delete onboarding process after start",
			zap.String("process_id", id),
			zap.String("status", p.Status),
		)
		return onboardingerrors.ErrProcessNotDeletable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete onboarding process begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	n, err := s.repo.WithTx(tx).DeleteProcess(ctx, actor.TenantID, id)
	if err != nil {
		s.logger.Error("delete onboarding process failed", zap.Error(err))
		return err
	}
	if n == 0 {
		return onboardingerrors.ErrProcessNotDeletable
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete onboarding process commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete onboarding process success", zap.String("process_id", id))
	return nil
}

func (s *service) UpdateTask(ctx context.Context, actor domain.Actor, id string, req UpdateTaskRequest) (TaskResponse, error) {
	s.logger.Debug("update onboarding task requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("task_id", id),
		zap.String("actor_id", actor.EmployeeID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, onboardingerrors.ErrTaskNotFound
	}

	task, err := s.repo.FindTaskByID(ctx, actor.TenantID, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err, onboardingerrors.ErrTaskNotFound)
	}

	allowed, err := s.policy.Allow(policy.SubjectOf(actor), policy.Resource{
		Kind:       policy.KindOnboardingTask,
		AssigneeID: uuidString(task.AssigneeID),
	}, policy.ActUpdate)
	if err != nil {
		return TaskResponse{}, err
	}
	if !allowed {
		s.logger.Warn("update onboarding task forbidden",
			zap.String("task_id", id),
			zap.String("role", actor.Role),
		)
		return TaskResponse{}, onboardingerrors.ErrTaskForbidden
	}

	if task.Process != nil && task.Process.Status == ProcessCancelled {
		return TaskResponse{}, onboardingerrors.ErrProcessCancelled
	}

	updates := map[string]interface{}{}
	var reassignedTo *uuid.UUID
	if req.Status != nil {
		wasCompleted := task.Status == TaskCompleted
		task.Status = *req.Status
		updates["status"] = task.Status
		switch {
		case task.Status != TaskCompleted:
			task.CompletedAt = nil
			updates["completed_at"] = task.CompletedAt
		case !wasCompleted || task.CompletedAt == nil:
			now := s.now().UTC()
			task.CompletedAt = &now
			updates["completed_at"] = task.CompletedAt
		}
	}
	if req.AssigneeID != nil {
		newID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return TaskResponse{}, onboardingerrors.ErrEmployeeNotFound
		}
		if _, err := s.employees.FindByID(ctx, actor.TenantID, newID.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("reassign onboarding task to unknown employee",
					zap.String("task_id", id),
					zap.String("assignee_id", newID.String()),
				)
				return TaskResponse{}, onboardingerrors.ErrEmployeeNotFound
			}
			s.logger.Error("reassign onboarding task employee lookup failed", zap.Error(err))
			return TaskResponse{}, err
		}
		if task.AssigneeID == nil || *task.AssigneeID != newID {
			reassignedTo = &newID
		}
		task.AssigneeID = &newID
		updates["assignee_id"] = newID
	}
	if req.DueDate != nil {
		due, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return TaskResponse{}, onboardingerrors.ErrInvalidDate
		}
		task.DueDate = &due
		updates["due_date"] = due
	}
	if req.Notes != nil {
		task.Notes = req.Notes
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return mapTaskToResponse(*task), nil
	}

	processID := task.ProcessID.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update onboarding task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.UpdateTask(ctx, actor.TenantID, id, updates); err != nil {
		s.logger.Error("update onboarding task failed", zap.Error(err))
		return TaskResponse{}, err
	}

	if req.Status != nil && (task.Status == TaskInProgress || task.Status == TaskCompleted) {
		if _, err := qtx.TransitionProcess(ctx, actor.TenantID, processID,
			[]string{ProcessNotStarted}, ProcessInProgress, nil); err != nil {
			s.logger.Error("advance onboarding process failed", zap.Error(err))
			return TaskResponse{}, err
		}
	}

	completed := false
	if req.Status != nil {
		open, err := qtx.CountOpenTasks(ctx, actor.TenantID, processID)
		if err != nil {
			s.logger.Error("count open onboarding tasks failed", zap.Error(err))
			return TaskResponse{}, err
		}
		if open == 0 {
			completedAt := s.now().UTC()
			n, err := qtx.TransitionProcess(ctx, actor.TenantID, processID,
				[]string{ProcessNotStarted, ProcessInProgress}, ProcessCompleted, &completedAt)
			if err != nil {
				s.logger.Error("complete onboarding process failed", zap.Error(err))
				return TaskResponse{}, err
			}
			completed = n > 0
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update onboarding task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	if reassignedTo != nil {
		s.dispatcher.Dispatch(ctx, notification.ToEmployee(actor.TenantID, reassignedTo.String(),
			notification.TypeOnboardingTask,
			"Onboarding task assigned",
			fmt.Sprintf("You have been assigned the onboarding task %q.", task.Title),
			"/onboarding/tasks/"+id,
		))
	}
	if completed {
		message := "All onboarding tasks are complete."
		if task.Process != nil && task.Process.Employee != nil {
			message = fmt.Sprintf("All onboarding tasks for %s are complete.", task.Process.Employee.FullName())
		}
		s.dispatcher.Dispatch(ctx, notification.ToRoles(actor.TenantID, []string{domain.RoleHRAdmin},
			notification.TypeOnboardingCompleted,
			"Onboarding completed",
			message,
			"/onboarding/processes/"+processID,
		))
		s.logger.Info("onboarding process completed", zap.String("process_id", processID))
	}

	s.logger.Info("update onboarding task success",
		zap.String("task_id", id),
		zap.String("status", task.Status),
	)
	return mapTaskToResponse(*task), nil
}

func (s *service) ListMyTasks(ctx context.Context, actor domain.Actor) ([]TaskResponse, error) {
	if actor.EmployeeID == "" {
		return nil, onboardingerrors.ErrNoEmployeeProfile
	}

	rows, err := s.repo.FindTasksByAssignee(ctx, actor.TenantID, actor.EmployeeID)
	if err != nil {
		s.logger.Error("list my onboarding tasks failed", zap.Error(err))
		return nil, err
	}

	out := make([]TaskResponse, len(rows))
	for i, t := range rows {
		out[i] = mapTaskToResponse(t)
	}
	return out, nil
}

// notifyAssignees sends one notification per distinct assignee, in task order.
func (s *service) notifyAssignees(ctx context.Context, tenantID string, p *Process) {
	seen := make(map[uuid.UUID]struct{})
	link := "/onboarding/processes/" + p.ID.String()
	for _, t := range p.Tasks {
		if t.AssigneeID == nil {
			continue
		}
		if _, ok := seen[*t.AssigneeID]; ok {
			continue
		}
		seen[*t.AssigneeID] = struct{}{}

		s.dispatcher.Dispatch(ctx, notification.ToEmployee(tenantID, t.AssigneeID.String(),
			notification.TypeOnboardingTask,
			"New onboarding tasks",
			fmt.Sprintf("You have onboarding tasks for %s.", p.Employee.FullName()),
			link,
		))
	}
}

type assigneeResolver struct {
	hr       HRResolver
	tenantID string
	emp      *employee.Employee

	hrResolved bool
	hrID       *uuid.UUID
}

func (r *assigneeResolver) resolve(ctx context.Context, role string) (*uuid.UUID, error) {
	switch role {
	case AssigneeEmployee:
		id := r.emp.ID
		return &id, nil
	case AssigneeManager:
		return r.emp.ManagerID, nil
	case AssigneeHRAdmin:
		if !r.hrResolved {
			id, err := r.hr.FirstActiveEmployeeIDByRole(ctx, r.tenantID, domain.RoleHRAdmin)
			if err != nil {
				return nil, err
			}
			r.hrID = parseOptionalUUID(id)
			r.hrResolved = true
		}
		return r.hrID, nil
	}
	return nil, nil
}

func canViewProcess(actor domain.Actor, p *Process) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.EmployeeID == "" {
		return false
	}
	if p.EmployeeID.String() == actor.EmployeeID {
		return true
	}
	if p.Employee != nil && uuidString(p.Employee.ManagerID) == actor.EmployeeID {
		return true
	}
	for _, t := range p.Tasks {
		if uuidString(t.AssigneeID) == actor.EmployeeID {
			return true
		}
	}
	return false
}

func toDefinitions(reqs []TaskDefinitionRequest) TaskDefinitions {
	defs := make(TaskDefinitions, len(reqs))
	for i, r := range reqs {
		order := i
		if r.SortOrder != nil {
			order = *r.SortOrder
		}
		defs[i] = TaskDefinition{
			Title:               strings.TrimSpace(r.Title),
			Category:            r.Category,
			Description:         r.Description,
			DefaultAssigneeRole: r.DefaultAssigneeRole,
			DaysAfterStart:      r.DaysAfterStart,
			SortOrder:           order,
		}
	}
	return defs
}

// sortedDefinitions copies defs, so the template value is never shared with tasks.
func sortedDefinitions(defs TaskDefinitions) []TaskDefinition {
	out := make([]TaskDefinition, len(defs))
	copy(out, defs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
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

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapTemplateToResponse(t Template) TemplateResponse {
	tasks := []TaskDefinition(t.Tasks)
	if tasks == nil {
		tasks = []TaskDefinition{}
	}
	return TemplateResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type,
		IsActive:    t.IsActive,
		Tasks:       tasks,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func mapTaskToResponse(t Task) TaskResponse {
	var assignee *string
	if t.AssigneeID != nil {
		s := t.AssigneeID.String()
		assignee = &s
	}
	return TaskResponse{
		ID:          t.ID.String(),
		ProcessID:   t.ProcessID.String(),
		Title:       t.Title,
		Category:    t.Category,
		Description: t.Description,
		AssigneeID:  assignee,
		DueDate:     formatDate(t.DueDate),
		SortOrder:   t.SortOrder,
		Status:      t.Status,
		Notes:       t.Notes,
		CompletedAt: t.CompletedAt,
	}
}

func mapProcessToResponse(p Process) ProcessResponse {
	resp := ProcessResponse{
		ID:           p.ID.String(),
		EmployeeID:   p.EmployeeID.String(),
		EmployeeName: p.Employee.FullName(),
		TemplateID:   p.TemplateID.String(),
		Type:         p.Type,
		Status:       p.Status,
		StartDate:    p.StartDate.Format(dateLayout),
		TargetDate:   formatDate(p.TargetDate),
		CompletedAt:  p.CompletedAt,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
	if len(p.Tasks) > 0 {
		resp.Tasks = make([]TaskResponse, len(p.Tasks))
		for i, t := range p.Tasks {
			resp.Tasks[i] = mapTaskToResponse(t)
		}
	}
	return resp
}
