package job

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=job_repo.go -destination=mock/job_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, j *Job) error
	FindAll(ctx context.Context) ([]Job, error)
	FindByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, j *Job) error
	ShiftExists(ctx context.Context, shiftID string) (bool, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
	CreateLine(ctx context.Context, line *JobLine) error
	FindLineByID(ctx context.Context, jobID, lineID string) (*JobLine, error)
	UpdateLine(ctx context.Context, line *JobLine) error
	DeleteLine(ctx context.Context, jobID, lineID string) error
	CountUntimedLines(ctx context.Context, jobID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Job, error) {
	var jobs []Job
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Order("job_date DESC, created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&j, "id = ?", id).Error
	return &j, err
}

func (r *repository) Update(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).
		Omit("Lines").
		Save(j).Error
}

func (r *repository) ShiftExists(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("shifts").
		Where("id = ? AND deleted_at IS NULL", shiftID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("clients").
		Where("id = ? AND deleted_at IS NULL", clientID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateLine(ctx context.Context, line *JobLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *repository) FindLineByID(ctx context.Context, jobID, lineID string) (*JobLine, error) {
	var line JobLine
	err := r.db.WithContext(ctx).
		First(&line, "id = ? AND job_id = ?", lineID, jobID).Error
	return &line, err
}

func (r *repository) UpdateLine(ctx context.Context, line *JobLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *repository) DeleteLine(ctx context.Context, jobID, lineID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND job_id = ?", lineID, jobID).
		Delete(&JobLine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountUntimedLines(ctx context.Context, jobID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&JobLine{}).
		Where("job_id = ?", jobID).
		Where("pickup_time IS NULL OR delivery_time IS NULL").
		Count(&count).Error
	return count, err
}
