package shift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shift struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// uq_shifts_driver_active backs the one-ACTIVE-shift-per-driver rule at
	// the database, so concurrent starts cannot both slip past the service
	// check.
	DriverID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_shifts_driver_status;uniqueIndex:uq_shifts_driver_active,where:status = 'ACTIVE'"`
	StartTime time.Time  `gorm:"type:timestamptz;not null"`
	EndTime   *time.Time `gorm:"type:timestamptz"`

	Status string  `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_shifts_driver_status"`
	Notes  *string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Driver *DriverRef `gorm:"foreignKey:DriverID;references:ID"`
}

func (Shift) TableName() string {
	return "shifts"
}

type DriverRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Active   bool      `gorm:"column:active"`
}

func (DriverRef) TableName() string {
	return "drivers"
}
