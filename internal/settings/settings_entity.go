package settings

import (
	"time"

	"github.com/google/uuid"
)

type Setting struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_settings_key"`
	Value string    `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Setting) TableName() string {
	return "settings"
}
