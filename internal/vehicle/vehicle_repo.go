package vehicle

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vehicle_repo.go -destination=mock/vehicle_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Vehicle) error
	FindAll(ctx context.Context) ([]Vehicle, error)
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id string) error
	CreateServiceRecord(ctx context.Context, rec *ServiceRecord) error
	FindServiceRecordsByVehicle(ctx context.Context, vehicleID string) ([]ServiceRecord, error)
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

func (r *repository) Create(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle
	err := r.db.WithContext(ctx).
		Order("rego ASC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Vehicle, error) {
	var v Vehicle
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) Update(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Vehicle{}, "id = ?", id).Error
}

func (r *repository) CreateServiceRecord(ctx context.Context, rec *ServiceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindServiceRecordsByVehicle(ctx context.Context, vehicleID string) ([]ServiceRecord, error) {
	var records []ServiceRecord
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("serviced_at DESC").
		Find(&records).Error
	return records, err
}
