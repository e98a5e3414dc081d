package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, year int, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue allocates the next number for (year, counterType). The upsert
// is a single statement so two concurrent callers can never read the same
// value; a fresh pair starts at 1. Errors surface as-is — allocation fails
// closed rather than retrying with a possibly duplicate number.
func (r *repository) GetNextValue(ctx context.Context, year int, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (year, counter_type, current, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (year, counter_type) DO UPDATE
		SET current = counters.current + 1, updated_at = now()
		RETURNING current
	`, year, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
