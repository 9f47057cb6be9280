package service

import (
	"context"
	"time"

	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/maintenance"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

const (
	sourceFailureRatePerYear = 0.3
	sourceServiceInterval    = 365 * 24 * time.Hour
	// sources are assumed to run 20 hours a day
	sourceHoursPerDay = 20
)

type SourceOutlook struct {
	SourceID          int64     `json:"source_id"`
	Type              string    `json:"type"`
	OperatingYears    int       `json:"operating_years"`
	HoursRun          float64   `json:"hours_run"`
	FailureRisk30Days float64   `json:"failure_risk_30_days"`
	FailureRisk90Days float64   `json:"failure_risk_90_days"`
	NextServiceDate   time.Time `json:"next_service_date"`
	Recommendation    string    `json:"recommendation"`
}

// Outlook estimates service needs for a source from its installation date,
// which stands in for the last service.
func (s *SourceService) Outlook(ctx context.Context, id int64) (*SourceOutlook, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if src.InstalledAt == nil {
		return nil, domain.IllegalArgument("energy source %d has no installation date", id)
	}
	now := s.now()

	health := maintenance.AssetHealth{
		HoursRun:           hoursRun(*src.InstalledAt, now),
		FailureRatePerYear: sourceFailureRatePerYear,
		LastService:        *src.InstalledAt,
		ServiceInterval:    sourceServiceInterval,
	}
	risk30 := maintenance.FailureRisk(health.FailureRatePerYear, 30*24*time.Hour)
	risk90 := maintenance.FailureRisk(health.FailureRatePerYear, 90*24*time.Hour)

	return &SourceOutlook{
		SourceID:          src.ID,
		Type:              src.Type,
		OperatingYears:    src.OperatingYears(now),
		HoursRun:          health.HoursRun,
		FailureRisk30Days: risk30 * 100,
		FailureRisk90Days: risk90 * 100,
		NextServiceDate:   maintenance.NextServiceDate(health),
		Recommendation:    recommendation(risk30, src.Status),
	}, nil
}

func hoursRun(installed, now time.Time) float64 {
	days := now.Sub(installed).Hours() / 24
	if days < 0 {
		return 0
	}
	return days * sourceHoursPerDay
}

func recommendation(risk float64, status string) string {
	switch {
	case status != domain.DefaultSourceStatus:
		return "Source is not operational; inspect before next dispatch"
	case risk > 0.5:
		return "URGENT: Schedule immediate maintenance inspection"
	case risk > 0.3:
		return "Schedule maintenance within next 30 days"
	case risk > 0.15:
		return "Plan maintenance within next 90 days"
	}
	return "Source operating normally"
}
