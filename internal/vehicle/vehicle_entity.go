package vehicle

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Rego      string         `gorm:"size:20;not null;uniqueIndex:uq_vehicles_rego"`
	Make      string         `gorm:"size:100"`
	Model     string         `gorm:"size:100"`
	IsTrailer bool           `gorm:"not null;default:false"`
	Odometer  *int64         `gorm:"type:bigint"`
	Active    bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// ServiceRecord captures a completed service and the optional projection of
// when the vehicle is due next.
type ServiceRecord struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServicedAt time.Time  `gorm:"type:date;not null"`
	Odometer   *int64     `gorm:"type:bigint"`
	Notes      *string    `gorm:"type:text"`
	NextDue    *time.Time `gorm:"type:date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (ServiceRecord) TableName() string {
	return "service_records"
}
