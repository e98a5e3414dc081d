package driver

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Driver struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName      string         `gorm:"size:255;not null"`
	LicenceNumber string         `gorm:"size:50;not null;uniqueIndex:uq_drivers_licence"`
	Phone         *string        `gorm:"size:30"`
	Active        bool           `gorm:"not null;default:true"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Driver) TableName() string {
	return "drivers"
}
