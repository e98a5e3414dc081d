// Package money holds the currency arithmetic for invoice and fuel amounts.
// Amounts are float64 backed by decimal(12,2) columns; every derived figure
// goes through Round2 before it is persisted or compared.
package money

import "math"

// Round2 rounds to the currency's minor unit (2dp for AUD), half away from
// zero. The epsilon shields values like 850.0499999999 produced by binary
// floats from landing on the wrong side of the boundary.
func Round2(v float64) float64 {
	return math.Round(v*100+math.Copysign(1e-9, v)) / 100
}

// LineAmount derives a line's amount from quantity and unit price. Stored
// snapshots are never trusted; callers recompute on every mutation.
func LineAmount(qty, unitPrice float64) float64 {
	return Round2(qty * unitPrice)
}
