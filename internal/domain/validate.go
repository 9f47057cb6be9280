package domain

import (
	"math"
	"strings"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

// ValidYear reports whether year is written with exactly four digits.
func ValidYear(year int) bool { return year >= 1000 && year <= 9999 }

func ValidMonth(month int) bool { return month >= 1 && month <= 12 }

// RequireID rejects missing or non-positive identifiers.
func RequireID(id int64, what string) error {
	if id <= 0 {
		return Invalid("%s id is required", what)
	}
	return nil
}

func (m Microgrid) Validate() error {
	if blank(m.Name) {
		return Invalid("microgrid name must not be empty")
	}
	if m.TotalResidences < 0 {
		return Invalid("total residences must not be negative")
	}
	if m.TotalInhabitants < 0 {
		return Invalid("total inhabitants must not be negative")
	}
	return nil
}

func (s EnergySource) Validate() error {
	if s.MicrogridID <= 0 {
		return Invalid("microgrid id is required")
	}
	if blank(s.Type) {
		return Invalid("energy source type is required")
	}
	if s.InstalledCapacity <= 0 {
		return Invalid("installed capacity must be greater than zero")
	}
	if blank(s.Status) {
		return Invalid("energy source status is required")
	}
	return nil
}

func (r MonthlyRecord) Validate() error {
	if r.MicrogridID <= 0 {
		return Invalid("microgrid id is required")
	}
	if !ValidYear(r.Year) {
		return Invalid("invalid year %d: must have exactly 4 digits", r.Year)
	}
	if !ValidMonth(r.Month) {
		return Invalid("invalid month %d: must be between 1 and 12", r.Month)
	}
	return r.ValidateMeasurements()
}

// ValidateMeasurements checks only the fields an update may change.
func (r MonthlyRecord) ValidateMeasurements() error {
	if !finite(r.WattsGenerated) || !finite(r.WattsConsumed) {
		return Invalid("watts must be finite numbers")
	}
	if r.WattsGenerated <= 0 {
		return Invalid("watts generated must be greater than zero")
	}
	if r.WattsConsumed <= 0 {
		return Invalid("watts consumed must be greater than zero")
	}
	return nil
}

func (e Estimate) Validate() error {
	if e.MicrogridID <= 0 {
		return Invalid("microgrid id is required")
	}
	if !ValidYear(e.Year) {
		return Invalid("invalid year %d: must have exactly 4 digits", e.Year)
	}
	if !ValidMonth(e.Month) {
		return Invalid("invalid month %d: must be between 1 and 12", e.Month)
	}
	if !finite(e.EstimatedWatts) {
		return Invalid("estimated watts must be a finite number")
	}
	if e.EstimatedWatts <= 0 {
		return Invalid("estimated watts must be greater than zero")
	}
	return nil
}
