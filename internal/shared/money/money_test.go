package money_test

import (
	"testing"

	"go-fleetops/internal/shared/money"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 850.05, money.Round2(850.049))
	assert.Equal(t, 0.0, money.Round2(0))
	assert.Equal(t, 10.01, money.Round2(10.005))
	assert.Equal(t, -10.01, money.Round2(-10.005))
	assert.Equal(t, 1.1, money.Round2(1.1))
}

func TestLineAmount(t *testing.T) {
	// 45 x 18.89 must come out at 850.05, not a truncated 850.00.
	assert.Equal(t, 850.05, money.LineAmount(45, 18.89))
	assert.Equal(t, 0.0, money.LineAmount(0, 18.89))
	assert.Equal(t, 56.67, money.LineAmount(3, 18.89))
	assert.Equal(t, 0.29, money.LineAmount(0.1, 2.85))
}
