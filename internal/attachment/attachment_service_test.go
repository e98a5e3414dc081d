package attachment_test

import (
	"context"
	"database/sql"
	"testing"

	"go-fleetops/internal/attachment"
	attachmenterrors "go-fleetops/internal/attachment/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttachmentRepository struct {
	withTxFn       func(tx *sql.Tx) attachment.Repository
	createFn       func(ctx context.Context, a *attachment.Attachment) error
	findAllFn      func(ctx context.Context, entityType, entityID string) ([]attachment.Attachment, error)
	findByIDFn     func(ctx context.Context, id string) (*attachment.Attachment, error)
	deleteFn       func(ctx context.Context, id string) error
	entityExistsFn func(ctx context.Context, entityType, entityID string) (bool, error)
}

func (f *fakeAttachmentRepository) WithTx(tx *sql.Tx) attachment.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttachmentRepository) FindAll(ctx context.Context, entityType, entityID string) ([]attachment.Attachment, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, entityType, entityID)
	}
	return nil, nil
}

func (f *fakeAttachmentRepository) FindByID(ctx context.Context, id string) (*attachment.Attachment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttachmentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeAttachmentRepository) EntityExists(ctx context.Context, entityType, entityID string) (bool, error) {
	if f.entityExistsFn != nil {
		return f.entityExistsFn(ctx, entityType, entityID)
	}
	return true, nil
}

type attachmentServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attachment.Service
	repo    *fakeAttachmentRepository
}

func setupAttachmentServiceTest(t *testing.T) *attachmentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttachmentRepository{}
	svc := attachment.NewService(db, repo)

	return &attachmentServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttachmentService_Create(t *testing.T) {
	ctx := context.Background()
	entityID := uuid.New().String()

	validReq := func() attachment.CreateAttachmentRequest {
		return attachment.CreateAttachmentRequest{
			EntityType:  attachment.EntityTypeJob,
			EntityID:    entityID,
			Category:    attachment.CategoryPOD,
			FileName:    "pod-4411.jpg",
			ContentType: "image/jpeg",
		}
	}

	t.Run("success", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.entityExistsFn = func(ctx context.Context, et, eid string) (bool, error) {
			assert.Equal(t, attachment.EntityTypeJob, et)
			assert.Equal(t, entityID, eid)
			return true, nil
		}
		deps.repo.createFn = func(ctx context.Context, a *attachment.Attachment) error {
			assert.Equal(t, "pod-4411.jpg", a.FileName)
			assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, a.Content)
			return nil
		}

		resp, err := deps.service.Create(ctx, validReq(), []byte{0xFF, 0xD8, 0xFF})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.SizeBytes)
		assert.Equal(t, attachment.CategoryPOD, resp.Category)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative missing referenced entity", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.entityExistsFn = func(ctx context.Context, et, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, validReq(), []byte("x"))

		assert.ErrorIs(t, err, attachmenterrors.ErrEntityNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative bad entity type", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		req := validReq()
		req.EntityType = "INVOICE"

		_, err := deps.service.Create(ctx, req, []byte("x"))

		assert.ErrorIs(t, err, attachmenterrors.ErrInvalidEntityType)
	})

	t.Run("negative malformed entity id", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		// DOCUMENT skips the entity existence check, so the id must be
		// rejected before it reaches the row
		req := validReq()
		req.EntityType = attachment.EntityTypeDocument
		req.Category = attachment.CategoryDocument
		req.EntityID = "not-a-uuid"

		_, err := deps.service.Create(ctx, req, []byte("policy"))

		assert.ErrorIs(t, err, attachmenterrors.ErrInvalidEntityID)
	})

	t.Run("negative bad category", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		req := validReq()
		req.Category = "SELFIE"

		_, err := deps.service.Create(ctx, req, []byte("x"))

		assert.ErrorIs(t, err, attachmenterrors.ErrInvalidCategory)
	})

	t.Run("negative empty content", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, validReq(), nil)

		assert.ErrorIs(t, err, attachmenterrors.ErrEmptyContent)
	})

	t.Run("success document without backing row", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		req := validReq()
		req.EntityType = attachment.EntityTypeDocument
		req.Category = attachment.CategoryDocument

		resp, err := deps.service.Create(ctx, req, []byte("policy"))

		assert.NoError(t, err)
		assert.Equal(t, attachment.EntityTypeDocument, resp.EntityType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttachmentService_GetContent(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*attachment.Attachment, error) {
			return &attachment.Attachment{
				ID:          id,
				EntityType:  attachment.EntityTypeShift,
				EntityID:    uuid.New(),
				Category:    attachment.CategoryShiftPhoto,
				FileName:    "shift.png",
				ContentType: "image/png",
				Content:     []byte{0x89, 0x50},
			}, nil
		}

		a, err := deps.service.GetContent(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "image/png", a.ContentType)
		assert.Equal(t, []byte{0x89, 0x50}, a.Content)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetContent(ctx, id.String())

		assert.ErrorIs(t, err, attachmenterrors.ErrAttachmentNotFound)
	})
}

func TestAttachmentService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("negative not found", func(t *testing.T) {
		deps := setupAttachmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.deleteFn = func(ctx context.Context, targetID string) error {
			return gorm.ErrRecordNotFound
		}

		err := deps.service.Delete(ctx, id)

		assert.ErrorIs(t, err, attachmenterrors.ErrAttachmentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
