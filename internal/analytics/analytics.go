// Package analytics holds read-only aggregates over collections of records
// already fetched for one microgrid. Nothing here rounds; presentation does.
package analytics

import "github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"

// Average is the mean estimated watts, 0 for an empty collection.
func Average(estimates []domain.Estimate) float64 {
	if len(estimates) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range estimates {
		sum += e.EstimatedWatts
	}
	return sum / float64(len(estimates))
}

func ExceedsThreshold(estimates []domain.Estimate, limit float64) (bool, error) {
	if len(estimates) == 0 {
		return false, domain.EmptyCollection("no estimates to compare against %.2f", limit)
	}
	return Average(estimates) > limit, nil
}

// ProjectedAnnualGeneration sums every estimate. Missing months are not
// extrapolated.
func ProjectedAnnualGeneration(estimates []domain.Estimate) (float64, error) {
	if len(estimates) == 0 {
		return 0, domain.EmptyCollection("no estimates to project")
	}
	sum := 0.0
	for _, e := range estimates {
		sum += e.EstimatedWatts
	}
	return sum, nil
}

// AverageDelta is the mean of generated minus consumed, 0 when empty.
func AverageDelta(records []domain.MonthlyRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range records {
		sum += r.Delta()
	}
	return sum / float64(len(records))
}

func GenerationToConsumptionRatio(records []domain.MonthlyRecord) (float64, error) {
	var generated, consumed float64
	for _, r := range records {
		generated += r.WattsGenerated
		consumed += r.WattsConsumed
	}
	if consumed == 0 {
		return 0, domain.Invalid("total consumption is zero, ratio is undefined")
	}
	return generated / consumed, nil
}

func TotalInstalledCapacity(sources []domain.EnergySource) (float64, error) {
	if len(sources) == 0 {
		return 0, domain.EmptyCollection("no energy sources")
	}
	total := 0.0
	for _, s := range sources {
		total += s.InstalledCapacity
	}
	return total, nil
}

func AllWithinCapacityLimit(sources []domain.EnergySource, limit float64) (bool, error) {
	if len(sources) == 0 {
		return false, domain.EmptyCollection("no energy sources")
	}
	for _, s := range sources {
		if !s.WithinCapacity(limit) {
			return false, nil
		}
	}
	return true, nil
}

// FilterByYear keeps the estimates for year. The year is checked before the
// collection so a malformed year is always reported as such.
func FilterByYear(estimates []domain.Estimate, year int) ([]domain.Estimate, error) {
	if !domain.ValidYear(year) {
		return nil, domain.IllegalArgument("invalid year %d: must have exactly 4 digits", year)
	}
	if len(estimates) == 0 {
		return nil, domain.EmptyCollection("no estimates to filter")
	}
	out := make([]domain.Estimate, 0, len(estimates))
	for _, e := range estimates {
		if e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}
