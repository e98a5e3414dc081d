package driver

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=driver_repo.go -destination=mock/driver_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Driver) error
	FindAll(ctx context.Context) ([]Driver, error)
	FindByID(ctx context.Context, id string) (*Driver, error)
	Update(ctx context.Context, d *Driver) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, d *Driver) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Driver, error) {
	var drivers []Driver
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&drivers).Error
	return drivers, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Driver, error) {
	var d Driver
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Driver) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Driver{}, "id = ?", id).Error
}
