package invoice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_invoices_job"`
	ClientID *uuid.UUID `gorm:"type:uuid;index"`
	Number   string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_invoices_number"`

	Status      string     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Currency    string     `gorm:"type:varchar(3);not null;default:'AUD'"`
	TotalAmount float64    `gorm:"type:decimal(12,2);not null;default:0"`
	IssuedAt    *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem snapshots the billed line at invoicing time. ProductName and
// DocketNumber are denormalized copies so issued invoices survive later
// edits to products and job lines.
type InvoiceItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID  `gorm:"type:uuid;not null;index:idx_invoice_items_invoice"`
	JobLineID *uuid.UUID `gorm:"type:uuid"`

	ProductName  string  `gorm:"type:varchar(150);not null"`
	DocketNumber *string `gorm:"type:varchar(50)"`
	Qty          float64 `gorm:"type:decimal(12,3);not null"`
	UnitPrice    float64 `gorm:"type:decimal(12,2);not null"`
	Amount       float64 `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
