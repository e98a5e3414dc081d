package job

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Job struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index"`
	JobDate   time.Time  `gorm:"type:date;not null"`
	Reference string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_jobs_reference"`

	Status string  `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes  *string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Lines []JobLine `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

func (Job) TableName() string {
	return "jobs"
}

type JobLine struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_job_lines_job"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null"`
	DriverID  uuid.UUID  `gorm:"type:uuid;not null"`
	VehicleID uuid.UUID  `gorm:"type:uuid;not null"`
	TrailerID *uuid.UUID `gorm:"type:uuid"`

	DocketNumber string  `gorm:"type:varchar(50);not null"`
	Quantity     float64 `gorm:"type:decimal(12,3);not null"`

	PickupTime   *time.Time `gorm:"type:timestamptz"`
	DeliveryTime *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (JobLine) TableName() string {
	return "job_lines"
}
