package service

import (
	"time"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
)

type Options struct {
	// Sinks receive summaries built by ReportService.Trigger.
	Sinks []report.Sink
	// ReportOnMutation makes record create/update/delete trigger a report.
	ReportOnMutation bool
	Now              func() time.Time
}

type Services struct {
	Repos      *repository.Repos
	Microgrids *MicrogridService
	Sources    *SourceService
	Records    *RecordService
	Estimates  *EstimateService
	Reports    *ReportService
}

func New(repos *repository.Repos, opts Options) *Services {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	reports := &ReportService{repos: repos, sinks: opts.Sinks, now: opts.Now}
	records := &RecordService{repos: repos}
	if opts.ReportOnMutation {
		records.reports = reports
	}
	return &Services{
		Repos:      repos,
		Microgrids: &MicrogridService{repos: repos},
		Sources:    &SourceService{repos: repos, now: opts.Now},
		Records:    records,
		Estimates:  &EstimateService{repos: repos},
		Reports:    reports,
	}
}

// nonEmpty reports an empty listing as NotFound.
func nonEmpty[T any](items []T, err error, what string) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.NotFound("no %s found", what)
	}
	return items, nil
}

func mustExist(ok bool, err error, format string, args ...any) error {
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound(format, args...)
	}
	return nil
}
