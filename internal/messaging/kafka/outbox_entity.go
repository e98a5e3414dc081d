package kafka

import "time"

// OutboxEventModel exists for schema migration only; the repository speaks
// raw SQL against the same table.
type OutboxEventModel struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	RequestID     *string    `gorm:"type:varchar(64)"`
	AggregateType string     `gorm:"type:varchar(30);not null;index"`
	AggregateID   string     `gorm:"type:uuid;not null;index"`
	EventType     string     `gorm:"type:varchar(50);not null"`
	Topic         string     `gorm:"type:varchar(100);not null"`
	Payload       []byte     `gorm:"type:jsonb;not null"`
	Status        string     `gorm:"type:varchar(10);not null;default:'pending';index"`
	RetryCount    int        `gorm:"not null;default:0"`
	ErrorMessage  *string    `gorm:"type:varchar(500)"`
	NextRetryAt   *time.Time `gorm:"type:timestamptz"`
	ProcessedAt   *time.Time `gorm:"type:timestamptz"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxEventModel) TableName() string {
	return "outbox_events"
}
