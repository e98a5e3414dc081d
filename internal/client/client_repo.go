package client

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cl *Client) error
	FindAll(ctx context.Context) ([]Client, error)
	FindByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, cl *Client) error
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

func (r *repository) Create(ctx context.Context, cl *Client) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Client, error) {
	var clients []Client
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Client, error) {
	var cl Client
	err := r.db.WithContext(ctx).First(&cl, "id = ?", id).Error
	return &cl, err
}

func (r *repository) Update(ctx context.Context, cl *Client) error {
	return r.db.WithContext(ctx).Save(cl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Client{}, "id = ?", id).Error
}
