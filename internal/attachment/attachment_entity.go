package attachment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EntityTypeJob      = "JOB"
	EntityTypeJobLine  = "JOB_LINE"
	EntityTypeShift    = "SHIFT"
	EntityTypeFuel     = "FUEL"
	EntityTypeVehicle  = "VEHICLE"
	EntityTypeDocument = "DOCUMENT"
)

const (
	CategoryPOD         = "POD"
	CategoryWeighbridge = "WEIGHBRIDGE"
	CategoryJobPhoto    = "JOB_PHOTO"
	CategoryFuelReceipt = "FUEL_RECEIPT"
	CategoryShiftPhoto  = "SHIFT_PHOTO"
	CategoryDocument    = "DOCUMENT"
)

// entityTables maps an attachable entity type to its backing table for the
// write-time existence check. DOCUMENT is free-standing and has no table.
var entityTables = map[string]string{
	EntityTypeJob:     "jobs",
	EntityTypeJobLine: "job_lines",
	EntityTypeShift:   "shifts",
	EntityTypeFuel:    "fuel_purchases",
	EntityTypeVehicle: "vehicles",
}

func IsValidEntityType(v string) bool {
	if v == EntityTypeDocument {
		return true
	}
	_, ok := entityTables[v]
	return ok
}

func IsValidCategory(v string) bool {
	switch v {
	case CategoryPOD, CategoryWeighbridge, CategoryJobPhoto,
		CategoryFuelReceipt, CategoryShiftPhoto, CategoryDocument:
		return true
	}
	return false
}

type Attachment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType string    `gorm:"type:varchar(20);not null;index:idx_attachments_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_attachments_entity"`
	Category   string    `gorm:"type:varchar(20);not null"`

	FileName    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(100);not null"`
	Content     []byte `gorm:"type:bytea;not null"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Attachment) TableName() string {
	return "attachments"
}
