package attachment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attachmenterrors "go-fleetops/internal/attachment/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attachment_service.go -destination=mock/attachment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAttachmentRequest, content []byte) (AttachmentResponse, error)
	GetAll(ctx context.Context, filter ListAttachmentsFilterRequest) ([]AttachmentResponse, error)
	GetByID(ctx context.Context, id string) (AttachmentResponse, error)
	GetContent(ctx context.Context, id string) (*Attachment, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attachment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attachment.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Create validates the enums and checks the referenced row still exists in
// the same transaction as the insert, since attachments carry no FK.
func (s *service) Create(ctx context.Context, req CreateAttachmentRequest, content []byte) (AttachmentResponse, error) {
	s.logger.Debug("create attachment requested",
		zap.String("entity_type", req.EntityType),
		zap.String("entity_id", req.EntityID),
		zap.String("file_name", req.FileName),
	)

	if !IsValidEntityType(req.EntityType) {
		return AttachmentResponse{}, attachmenterrors.ErrInvalidEntityType
	}
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return AttachmentResponse{}, attachmenterrors.ErrInvalidEntityID
	}
	if !IsValidCategory(req.Category) {
		return AttachmentResponse{}, attachmenterrors.ErrInvalidCategory
	}
	if len(content) == 0 {
		return AttachmentResponse{}, attachmenterrors.ErrEmptyContent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create attachment begin tx failed", zap.Error(err))
		return AttachmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EntityExists(ctx, req.EntityType, req.EntityID)
	if err != nil {
		s.logger.Error("create attachment entity check failed", zap.Error(err))
		return AttachmentResponse{}, err
	}
	if !exists {
		s.logger.Warn("create attachment rejected, entity missing",
			zap.String("entity_type", req.EntityType),
			zap.String("entity_id", req.EntityID),
		)
		return AttachmentResponse{}, attachmenterrors.ErrEntityNotFound
	}

	a := &Attachment{
		ID:          uuid.New(),
		EntityType:  req.EntityType,
		EntityID:    entityID,
		Category:    req.Category,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Content:     content,
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create attachment persist failed", zap.Error(err))
		return AttachmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create attachment commit failed", zap.Error(err))
		return AttachmentResponse{}, err
	}

	s.logger.Info("create attachment success",
		zap.String("attachment_id", a.ID.String()),
		zap.String("entity_type", a.EntityType),
		zap.Int("size_bytes", len(content)),
	)
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, filter ListAttachmentsFilterRequest) ([]AttachmentResponse, error) {
	if filter.EntityType != "" && !IsValidEntityType(filter.EntityType) {
		return nil, attachmenterrors.ErrInvalidEntityType
	}

	attachments, err := s.repo.FindAll(ctx, filter.EntityType, filter.EntityID)
	if err != nil {
		s.logger.Error("get all attachments failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(attachments), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttachmentResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttachmentResponse{}, attachmenterrors.ErrAttachmentNotFound
		}
		return AttachmentResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) GetContent(ctx context.Context, id string) (*Attachment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attachmenterrors.ErrAttachmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attachmenterrors.ErrAttachmentNotFound
		}
		s.logger.Error("delete attachment failed", zap.String("attachment_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete attachment success", zap.String("attachment_id", id))
	return nil
}

func mapToResponse(a Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID.String(),
		EntityType:  a.EntityType,
		EntityID:    a.EntityID.String(),
		Category:    a.Category,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		SizeBytes:   len(a.Content),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(attachments []Attachment) []AttachmentResponse {
	resp := make([]AttachmentResponse, len(attachments))
	for i, a := range attachments {
		resp[i] = mapToResponse(a)
	}
	return resp
}
