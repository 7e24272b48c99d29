package document

import (
	"context"
	"errors"
	"io"
	"strings"

	documenterrors "github.com/heyyrintu/hrms-sub001/internal/document/errors"
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/employee"
	"github.com/heyyrintu/hrms-sub001/internal/policy"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"
	"github.com/heyyrintu/hrms-sub001/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const entityEmployee = "employee"

type EmployeeFinder interface {
	FindByID(ctx context.Context, tenantID, id string) (*employee.Employee, error)
}

// Upload is the file half of an upload request.
type Upload struct {
	Reader   io.Reader
	FileName string
	MimeType string
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, actor domain.Actor, req UploadDocumentRequest, file Upload) (DocumentResponse, error)
	List(ctx context.Context, actor domain.Actor, employeeID string) ([]DocumentResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (DocumentResponse, error)
	Download(ctx context.Context, actor domain.Actor, id string) (Download, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	repo      Repository
	store     storage.Storage
	employees EmployeeFinder
	policy    policy.Evaluator
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	store storage.Storage,
	employees EmployeeFinder,
	evaluator policy.Evaluator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{
		repo:      repo,
		store:     store,
		employees: employees,
		policy:    evaluator,
		logger:    l,
	}
}

func (s *service) canRead(actor domain.Actor, ownerID string) (bool, error) {
	return s.policy.Allow(policy.SubjectOf(actor), policy.Resource{Kind: policy.KindDocument, OwnerID: ownerID}, policy.ActRead)
}

func (s *service) Upload(ctx context.Context, actor domain.Actor, req UploadDocumentRequest, file Upload) (DocumentResponse, error) {
	s.logger.Debug("upload document requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("file_name", file.FileName),
	)

	if file.Reader == nil {
		return DocumentResponse{}, documenterrors.ErrFileRequired
	}
	tenantUUID, err := uuid.Parse(actor.TenantID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrDocumentForbidden
	}

	ownerID := strings.TrimSpace(req.EmployeeID)
	if ownerID == "" {
		ownerID = actor.EmployeeID
	}

	// Tenant-wide documents have no owner and fall under the admin rule.
	allowed, err := s.canRead(actor, ownerID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if !allowed {
		s.logger.Warn("upload document forbidden", zap.String("role", actor.Role), zap.String("owner_id", ownerID))
		return DocumentResponse{}, documenterrors.ErrDocumentForbidden
	}

	doc := &Document{TenantID: tenantUUID}
	if ownerID != "" {
		emp, err := s.employees.FindByID(ctx, actor.TenantID, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return DocumentResponse{}, documenterrors.ErrEmployeeNotFound
			}
			s.logger.Error("upload document employee lookup failed", zap.Error(err))
			return DocumentResponse{}, err
		}
		doc.EmployeeID = &emp.ID
	}

	info, err := s.store.Upload(ctx, file.Reader, file.FileName, file.MimeType, entityEmployee, ownerID)
	if err != nil {
		s.logger.Warn("upload document store failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	doc.FileKey = info.Key
	doc.FileName = info.FileName
	doc.MimeType = info.MimeType
	doc.Size = info.Size
	doc.Title = strings.TrimSpace(req.Title)
	if doc.Title == "" {
		doc.Title = info.FileName
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		doc.Category = &category
	}
	if uploader, err := uuid.Parse(actor.EmployeeID); err == nil {
		doc.UploadedBy = &uploader
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("upload document persist failed", zap.Error(err))
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			s.logger.Warn("orphaned upload not removed", zap.String("key", info.Key), zap.Error(delErr))
		}
		return DocumentResponse{}, err
	}

	s.logger.Info("upload document success", zap.String("document_id", doc.ID.String()))
	return mapToResponse(*doc), nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, employeeID string) ([]DocumentResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" && !actor.IsAdmin() {
		employeeID = actor.EmployeeID
		if employeeID == "" {
			return []DocumentResponse{}, nil
		}
	}

	if employeeID != "" {
		allowed, err := s.canRead(actor, employeeID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, documenterrors.ErrDocumentForbidden
		}
	}

	rows, err := s.repo.FindAll(ctx, actor.TenantID, employeeID)
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		return nil, err
	}

	out := make([]DocumentResponse, len(rows))
	for i, d := range rows {
		out[i] = mapToResponse(d)
	}
	return out, nil
}

func (s *service) load(ctx context.Context, actor domain.Actor, id string) (*Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, documenterrors.ErrDocumentNotFound
	}

	doc, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	allowed, err := s.canRead(actor, doc.OwnerID())
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logger.Warn("document access forbidden", zap.String("document_id", id), zap.String("role", actor.Role))
		return nil, documenterrors.ErrDocumentForbidden
	}
	return doc, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (DocumentResponse, error) {
	doc, err := s.load(ctx, actor, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*doc), nil
}

func (s *service) Download(ctx context.Context, actor domain.Actor, id string) (Download, error) {
	doc, err := s.load(ctx, actor, id)
	if err != nil {
		return Download{}, err
	}

	path, err := s.store.Path(doc.FileKey)
	if err != nil {
		s.logger.Error("document has invalid key", zap.String("document_id", id), zap.Error(err))
		return Download{}, err
	}
	return Download{Path: path, FileName: doc.FileName, MimeType: doc.MimeType}, nil
}

// Delete removes the row, then the file. A failed file removal is logged only.
func (s *service) Delete(ctx context.Context, actor domain.Actor, id string) error {
	s.logger.Debug("delete document requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("document_id", id),
	)

	doc, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}

	n, err := s.repo.Delete(ctx, actor.TenantID, id)
	if err != nil {
		s.logger.Error("delete document failed", zap.Error(err))
		return err
	}
	if n == 0 {
		return documenterrors.ErrDocumentNotFound
	}

	if err := s.store.Delete(ctx, doc.FileKey); err != nil {
		s.logger.Warn("delete document file failed", zap.String("key", doc.FileKey), zap.Error(err))
	}

	s.logger.Info("delete document success", zap.String("document_id", id))
	return nil
}

func mapToResponse(d Document) DocumentResponse {
	resp := DocumentResponse{
		ID:        d.ID.String(),
		Title:     d.Title,
		Category:  d.Category,
		FileName:  d.FileName,
		MimeType:  d.MimeType,
		Size:      d.Size,
		CreatedAt: d.CreatedAt,
	}
	if d.EmployeeID != nil {
		v := d.EmployeeID.String()
		resp.EmployeeID = &v
	}
	if d.UploadedBy != nil {
		v := d.UploadedBy.String()
		resp.UploadedBy = &v
	}
	return resp
}
