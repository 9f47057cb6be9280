// Package estimate derives next-month generation estimates from observed
// monthly records.
package estimate

import "github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"

// GrowthFactor is the fixed month-over-month generation heuristic.
const GrowthFactor = 1.1

// Watts returns the estimated generation for the month after a record.
func Watts(generated float64) float64 {
	return generated * GrowthFactor
}

// Target is the period an estimate derived from a record at p belongs to.
func Target(p domain.Period) domain.Period {
	return p.Next()
}

// Derive builds the estimate that should exist for the month following r.
// The returned estimate has no id.
func Derive(r domain.MonthlyRecord) domain.Estimate {
	next := Target(r.Period())
	return domain.Estimate{
		MicrogridID:    r.MicrogridID,
		Year:           next.Year,
		Month:          next.Month,
		EstimatedWatts: Watts(r.WattsGenerated),
	}
}

// Key identifies the estimate linked to a record.
type Key struct {
	MicrogridID int64
	Period      domain.Period
}

// KeyFor returns the estimate key linked to a record at its current period.
func KeyFor(r domain.MonthlyRecord) Key {
	return Key{MicrogridID: r.MicrogridID, Period: Target(r.Period())}
}
