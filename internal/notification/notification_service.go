package notification

import (
	"context"
	"time"

	notificationerrors "github.com/heyyrintu/hrms-sub001/internal/notification/errors"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserDirectory resolves notification recipients. Implemented by user.Repository.
type UserDirectory interface {
	FindActiveUserIDByEmployee(ctx context.Context, tenantID, employeeID string) (string, error)
	ListActiveUserIDsByRoles(ctx context.Context, tenantID string, roles []string) ([]string, error)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateRequest) (NotificationResponse, error)
	CreateMany(ctx context.Context, tenantID string, reqs []CreateRequest) (int, error)
	NotifyEmployee(ctx context.Context, tenantID, employeeID, typ, title, message, link string) (*NotificationResponse, error)
	NotifyByRole(ctx context.Context, tenantID string, roles []string, typ, title, message, link string) (int, error)
	Deliver(ctx context.Context, req Request) error
	List(ctx context.Context, tenantID, userID string, unreadOnly bool) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, tenantID, userID string) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, tenantID, userID, id string) error
	MarkAllRead(ctx context.Context, tenantID, userID string) (MarkAllReadResponse, error)
}

type service struct {
	repo   Repository
	users  UserDirectory
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, users UserDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, users: users, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateRequest) (NotificationResponse, error) {
	n, err := buildNotification(tenantID, req, s.now())
	if err != nil {
		s.logger.Warn("create notification validation failed", zap.Error(err))
		return NotificationResponse{}, err
	}

	if err := s.repo.Create(ctx, &n); err != nil {
		s.logger.Error("create notification persist failed", zap.Error(err))
		return NotificationResponse{}, err
	}

	return mapToResponse(n), nil
}

func (s *service) CreateMany(ctx context.Context, tenantID string, reqs []CreateRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, nil
	}

	now := s.now()
	rows := make([]Notification, 0, len(reqs))
	for _, req := range reqs {
		n, err := buildNotification(tenantID, req, now)
		if err != nil {
			s.logger.Warn("create notifications validation failed", zap.Error(err))
			return 0, err
		}
		rows = append(rows, n)
	}

	if err := s.repo.CreateMany(ctx, rows); err != nil {
		s.logger.Error("create notifications persist failed", zap.Int("count", len(rows)), zap.Error(err))
		return 0, err
	}
	return len(rows), nil
}

func (s *service) NotifyEmployee(ctx context.Context, tenantID, employeeID, typ, title, message, link string) (*NotificationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	userID, err := s.users.FindActiveUserIDByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		s.logger.Error("notify employee user lookup failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, err
	}
	if userID == "" {
		s.logger.Debug("notify employee skipped, no linked user",
			zap.String("request_id", rid),
			zap.String("tenant_id", tenantID),
			zap.String("employee_id", employeeID),
		)
		return nil, nil
	}

	resp, err := s.Create(ctx, tenantID, CreateRequest{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Link:    link,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) NotifyByRole(ctx context.Context, tenantID string, roles []string, typ, title, message, link string) (int, error) {
	if len(roles) == 0 {
		return 0, nil
	}

	userIDs, err := s.users.ListActiveUserIDsByRoles(ctx, tenantID, roles)
	if err != nil {
		s.logger.Error("notify by role user lookup failed", zap.Strings("roles", roles), zap.Error(err))
		return 0, err
	}

	reqs := make([]CreateRequest, 0, len(userIDs))
	for _, uid := range userIDs {
		reqs = append(reqs, CreateRequest{UserID: uid, Type: typ, Title: title, Message: message, Link: link})
	}

	n, err := s.CreateMany(ctx, tenantID, reqs)
	if err != nil {
		return 0, err
	}

	s.logger.Info("notify by role success",
		zap.String("tenant_id", tenantID),
		zap.Strings("roles", roles),
		zap.Int("recipients", n),
	)
	return n, nil
}

// Deliver is the Sink side of the service, used by dispatchers and the Kafka consumer.
func (s *service) Deliver(ctx context.Context, req Request) error {
	if req.EmployeeID != "" {
		_, err := s.NotifyEmployee(ctx, req.TenantID, req.EmployeeID, req.Type, req.Title, req.Message, req.Link)
		return err
	}
	_, err := s.NotifyByRole(ctx, req.TenantID, req.Roles, req.Type, req.Title, req.Message, req.Link)
	return err
}

func (s *service) List(ctx context.Context, tenantID, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	rows, err := s.repo.List(ctx, tenantID, userID, unreadOnly)
	if err != nil {
		s.logger.Error("list notifications failed", zap.Error(err))
		return nil, err
	}

	out := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, mapToResponse(n))
	}
	return out, nil
}

func (s *service) UnreadCount(ctx context.Context, tenantID, userID string) (UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, tenantID, userID)
	if err != nil {
		s.logger.Error("count unread notifications failed", zap.Error(err))
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Count: count}, nil
}

func (s *service) MarkRead(ctx context.Context, tenantID, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrNotificationNotFound
	}

	affected, err := s.repo.MarkRead(ctx, tenantID, userID, id, s.now().UTC())
	if err != nil {
		s.logger.Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, tenantID, userID string) (MarkAllReadResponse, error) {
	affected, err := s.repo.MarkAllRead(ctx, tenantID, userID, s.now().UTC())
	if err != nil {
		s.logger.Error("mark all notifications read failed", zap.Error(err))
		return MarkAllReadResponse{}, err
	}
	return MarkAllReadResponse{Updated: affected}, nil
}

func buildNotification(tenantID string, req CreateRequest, now time.Time) (Notification, error) {
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return Notification{}, notificationerrors.ErrInvalidTenantID
	}
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return Notification{}, notificationerrors.ErrInvalidUserID
	}
	if req.Title == "" {
		return Notification{}, notificationerrors.ErrEmptyTitle
	}

	var link *string
	if req.Link != "" {
		l := req.Link
		link = &l
	}

	return Notification{
		ID:        uuid.New(),
		TenantID:  tenantUUID,
		UserID:    userUUID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Link:      link,
		CreatedAt: now.UTC(),
	}, nil
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
