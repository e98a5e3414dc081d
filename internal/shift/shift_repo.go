package shift

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sh *Shift) error
	FindAll(ctx context.Context) ([]Shift, error)
	FindByID(ctx context.Context, id string) (*Shift, error)
	Update(ctx context.Context, sh *Shift) error
	FindDriver(ctx context.Context, driverID string) (*DriverRef, error)
	HasActiveShiftForDriver(ctx context.Context, driverID string, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, sh *Shift) error {
	return r.db.WithContext(ctx).Create(sh).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Order("start_time DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Shift, error) {
	var sh Shift
	err := r.db.WithContext(ctx).
		Preload("Driver").
		First(&sh, "id = ?", id).Error
	return &sh, err
}

func (r *repository) Update(ctx context.Context, sh *Shift) error {
	return r.db.WithContext(ctx).Save(sh).Error
}

func (r *repository) FindDriver(ctx context.Context, driverID string) (*DriverRef, error) {
	var d DriverRef
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&d, "id = ?", driverID).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) HasActiveShiftForDriver(ctx context.Context, driverID string, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Shift{}).
		Where("driver_id = ?", driverID).
		Where("status = ?", StatusActive)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
