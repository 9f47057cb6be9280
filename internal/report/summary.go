// Package report assembles per-microgrid summaries from stored records,
// estimates and sources, and hands them to publishing sinks.
package report

import (
	"context"
	"time"

	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/aggregator"
	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/converter"
	"github.com/google/uuid"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/analytics"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

// TrendWindow is the number of estimates averaged per trend point.
const TrendWindow = 3

type Summary struct {
	ID            string    `json:"id" dynamodbav:"reportId"`
	MicrogridID   int64     `json:"microgrid_id" dynamodbav:"microgridId"`
	MicrogridName string    `json:"microgrid_name" dynamodbav:"microgridName"`
	GeneratedAt   time.Time `json:"generated_at" dynamodbav:"generatedAt"`

	FirstPeriod domain.Period `json:"first_period" dynamodbav:"-"`
	LastPeriod  domain.Period `json:"last_period" dynamodbav:"-"`
	Records     int           `json:"records" dynamodbav:"records"`

	TotalGenerated    float64 `json:"total_generated" dynamodbav:"totalGenerated"`
	TotalConsumed     float64 `json:"total_consumed" dynamodbav:"totalConsumed"`
	TotalGeneratedMWh float64 `json:"total_generated_mwh" dynamodbav:"totalGeneratedMwh"`
	TotalConsumedMWh  float64 `json:"total_consumed_mwh" dynamodbav:"totalConsumedMwh"`
	AverageDelta      float64 `json:"average_delta" dynamodbav:"averageDelta"`
	Ratio             float64 `json:"generation_consumption_ratio" dynamodbav:"ratio"`

	Estimates       int       `json:"estimates" dynamodbav:"estimates"`
	AverageEstimate float64   `json:"average_estimate" dynamodbav:"averageEstimate"`
	ProjectedAnnual float64   `json:"projected_annual" dynamodbav:"projectedAnnual"`
	EstimateTrend   []float64 `json:"estimate_trend" dynamodbav:"estimateTrend"`

	Sources           int     `json:"sources" dynamodbav:"sources"`
	InstalledCapacity float64 `json:"installed_capacity" dynamodbav:"installedCapacity"`
}

// Build summarises one microgrid. At least one record is required; estimates
// and sources may be empty. Records and estimates are expected in period order.
func Build(m domain.Microgrid, records []domain.MonthlyRecord, estimates []domain.Estimate, sources []domain.EnergySource, now time.Time) (*Summary, error) {
	if len(records) == 0 {
		return nil, domain.EmptyCollection("microgrid %d has no monthly records", m.ID)
	}

	ratio, err := analytics.GenerationToConsumptionRatio(records)
	if err != nil {
		return nil, err
	}

	conv := &converter.EnergyConverter{}
	s := &Summary{
		ID:            uuid.NewString(),
		MicrogridID:   m.ID,
		MicrogridName: m.Name,
		GeneratedAt:   now.UTC(),
		FirstPeriod:   records[0].Period(),
		LastPeriod:    records[len(records)-1].Period(),
		Records:       len(records),
		AverageDelta:  analytics.AverageDelta(records),
		Ratio:         ratio,
		Estimates:     len(estimates),
		Sources:       len(sources),
		EstimateTrend: []float64{},
	}
	for _, r := range records {
		s.TotalGenerated += r.WattsGenerated
		s.TotalConsumed += r.WattsConsumed
	}
	s.TotalGeneratedMWh = conv.KWhToMWh(s.TotalGenerated)
	s.TotalConsumedMWh = conv.KWhToMWh(s.TotalConsumed)

	if len(estimates) > 0 {
		s.AverageEstimate = analytics.Average(estimates)
		s.ProjectedAnnual, _ = analytics.ProjectedAnnualGeneration(estimates)
		s.EstimateTrend = trend(estimates)
	}
	if len(sources) > 0 {
		s.InstalledCapacity, _ = analytics.TotalInstalledCapacity(sources)
	}
	return s, nil
}

func trend(estimates []domain.Estimate) []float64 {
	if len(estimates) < TrendWindow {
		return []float64{}
	}
	points := make([]aggregator.Point, 0, len(estimates))
	for _, e := range estimates {
		points = append(points, aggregator.Point{
			Value:     e.EstimatedWatts,
			Timestamp: time.Date(e.Year, time.Month(e.Month), 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return aggregator.MovingAverage(points, TrendWindow)
}

// Deficit reports whether generation falls short of consumption scaled by
// threshold.
func (s *Summary) Deficit(threshold float64) bool {
	return s.Ratio < threshold
}

// Sink receives finished summaries. Publishing is best effort; callers log
// failures and carry on.
type Sink interface {
	Name() string
	Publish(ctx context.Context, s *Summary) error
}
