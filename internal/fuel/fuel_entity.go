package fuel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuelPurchase struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID uuid.UUID  `gorm:"type:uuid;not null;index:idx_fuel_purchases_vehicle"`
	DriverID  *uuid.UUID `gorm:"type:uuid"`

	FilledAt      time.Time `gorm:"type:timestamptz;not null"`
	Litres        float64   `gorm:"type:decimal(10,3);not null"`
	PricePerLitre float64   `gorm:"type:decimal(10,4);not null"`
	TotalCost     float64   `gorm:"type:decimal(12,2);not null"`
	Odometer      *int64    `gorm:"type:bigint"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (FuelPurchase) TableName() string {
	return "fuel_purchases"
}
