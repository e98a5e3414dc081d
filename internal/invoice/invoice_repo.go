package invoice

import (
	"context"
	"database/sql"

	"go-fleetops/internal/shared/gormtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoicingJob is the projection of a job used when drafting its invoice.
// Lines arrive pre-joined with the product catalogue so the service can
// snapshot names and default unit prices in one read.
type InvoicingJob struct {
	ID       uuid.UUID
	ClientID *uuid.UUID
	Status   string
	Lines    []InvoicingLine
}

type InvoicingLine struct {
	ID           uuid.UUID
	ProductName  string
	UnitPrice    float64
	DocketNumber string
	Quantity     float64
}

//go:generate mockgen -source=invoice_repo.go -destination=mock/invoice_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, inv *Invoice) error
	FindAll(ctx context.Context) ([]Invoice, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	FindJobForInvoicing(ctx context.Context, jobID string) (*InvoicingJob, error)
	CreateItem(ctx context.Context, item *InvoiceItem) error
	FindItemByID(ctx context.Context, invoiceID, itemID string) (*InvoiceItem, error)
	UpdateItem(ctx context.Context, item *InvoiceItem) error
	DeleteItem(ctx context.Context, invoiceID, itemID string) error
	SumItemAmounts(ctx context.Context, invoiceID string) (float64, error)
	CountItems(ctx context.Context, invoiceID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).
		Omit("Items").
		Save(inv).Error
}

func (r *repository) FindJobForInvoicing(ctx context.Context, jobID string) (*InvoicingJob, error) {
	var header struct {
		ID       uuid.UUID
		ClientID *uuid.UUID
		Status   string
	}
	err := r.db.WithContext(ctx).
		Table("jobs").
		Select("id, client_id, status").
		Where("id = ? AND deleted_at IS NULL", jobID).
		Take(&header).Error
	if err != nil {
		return nil, err
	}

	var lines []InvoicingLine
	err = r.db.WithContext(ctx).
		Table("job_lines").
		Select("job_lines.id, products.name AS product_name, products.unit_price, job_lines.docket_number, job_lines.quantity").
		Joins("JOIN products ON products.id = job_lines.product_id").
		Where("job_lines.job_id = ?", jobID).
		Order("job_lines.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	return &InvoicingJob{
		ID:       header.ID,
		ClientID: header.ClientID,
		Status:   header.Status,
		Lines:    lines,
	}, nil
}

func (r *repository) CreateItem(ctx context.Context, item *InvoiceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindItemByID(ctx context.Context, invoiceID, itemID string) (*InvoiceItem, error) {
	var item InvoiceItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND invoice_id = ?", itemID, invoiceID).Error
	return &item, err
}

func (r *repository) UpdateItem(ctx context.Context, item *InvoiceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, invoiceID, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND invoice_id = ?", itemID, invoiceID).
		Delete(&InvoiceItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SumItemAmounts(ctx context.Context, invoiceID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&InvoiceItem{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("invoice_id = ?", invoiceID).
		Scan(&total).Error
	return total, err
}

func (r *repository) CountItems(ctx context.Context, invoiceID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&InvoiceItem{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	return count, err
}
