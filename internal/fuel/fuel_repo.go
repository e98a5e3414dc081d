package fuel

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=fuel_repo.go -destination=mock/fuel_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, fp *FuelPurchase) error
	FindAll(ctx context.Context) ([]FuelPurchase, error)
	FindByID(ctx context.Context, id string) (*FuelPurchase, error)
	Update(ctx context.Context, fp *FuelPurchase) error
	Delete(ctx context.Context, id string) error
	VehicleExists(ctx context.Context, vehicleID string) (bool, error)
	DriverExists(ctx context.Context, driverID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, fp *FuelPurchase) error {
	return r.db.WithContext(ctx).Create(fp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]FuelPurchase, error) {
	var purchases []FuelPurchase
	err := r.db.WithContext(ctx).
		Order("filled_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*FuelPurchase, error) {
	var fp FuelPurchase
	err := r.db.WithContext(ctx).
		First(&fp, "id = ?", id).Error
	return &fp, err
}

func (r *repository) Update(ctx context.Context, fp *FuelPurchase) error {
	return r.db.WithContext(ctx).Save(fp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&FuelPurchase{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) VehicleExists(ctx context.Context, vehicleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("vehicles").
		Where("id = ? AND deleted_at IS NULL", vehicleID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DriverExists(ctx context.Context, driverID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("drivers").
		Where("id = ? AND deleted_at IS NULL", driverID).
		Count(&count).Error
	return count > 0, err
}
