package product

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code      string         `gorm:"size:30;not null;uniqueIndex:uq_products_code"`
	Name      string         `gorm:"size:255;not null"`
	Unit      string         `gorm:"size:20;not null;default:'TONNE'"`
	UnitPrice float64        `gorm:"type:decimal(12,2);not null;default:0"`
	Active    bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
