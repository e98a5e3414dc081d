package counter

import "time"

// Counter backs human-facing reference numbers (invoice and job numbers).
// (year, counter_type) is unique and current never decreases.
type Counter struct {
	ID          uint      `gorm:"primaryKey"`
	Year        int       `gorm:"not null;uniqueIndex:uq_counters_year_type"`
	CounterType string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_counters_year_type"`
	Current     int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Counter) TableName() string {
	return "counters"
}
