package attachment

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attachment_repo.go -destination=mock/attachment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attachment) error
	FindAll(ctx context.Context, entityType, entityID string) ([]Attachment, error)
	FindByID(ctx context.Context, id string) (*Attachment, error)
	Delete(ctx context.Context, id string) error
	EntityExists(ctx context.Context, entityType, entityID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: gormtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, entityType, entityID string) ([]Attachment, error) {
	db := r.db.WithContext(ctx).
		Order("created_at DESC")

	if entityType != "" {
		db = db.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		db = db.Where("entity_id = ?", entityID)
	}

	var attachments []Attachment
	err := db.Find(&attachments).Error
	return attachments, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attachment, error) {
	var a Attachment
	err := r.db.WithContext(ctx).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Attachment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EntityExists(ctx context.Context, entityType, entityID string) (bool, error) {
	table, ok := entityTables[entityType]
	if !ok {
		// DOCUMENT attachments do not reference a row.
		return true, nil
	}

	var count int64
	db := r.db.WithContext(ctx).Table(table).Where("id = ?", entityID)
	if table != "job_lines" {
		db = db.Where("deleted_at IS NULL")
	}
	err := db.Count(&count).Error
	return count > 0, err
}
