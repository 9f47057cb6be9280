package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
)

type ReportService struct {
	repos *repository.Repos
	sinks []report.Sink
	now   func() time.Time
}

// Build summarises a microgrid from its stored records, estimates and sources.
func (s *ReportService) Build(ctx context.Context, microgridID int64) (*report.Summary, error) {
	if err := domain.RequireID(microgridID, "microgrid"); err != nil {
		return nil, err
	}
	m, err := s.repos.Microgrids.FindByID(ctx, microgridID)
	if err != nil {
		return nil, err
	}
	records, err := s.repos.Records.FindByMicrogrid(ctx, microgridID)
	if err != nil {
		return nil, err
	}
	estimates, err := s.repos.Estimates.FindByMicrogrid(ctx, microgridID)
	if err != nil {
		return nil, err
	}
	sources, err := s.repos.Sources.FindByMicrogrid(ctx, microgridID)
	if err != nil {
		return nil, err
	}
	return report.Build(*m, records, estimates, sources, s.now())
}

// Publish hands a summary to every sink and returns the joined sink errors.
func (s *ReportService) Publish(ctx context.Context, sum *report.Summary) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, sum); err != nil {
			log.Warn().Err(err).Str("sink", sink.Name()).Str("report_id", sum.ID).Msg("report sink failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Trigger builds and publishes a summary, logging instead of failing. It is
// called after record mutations, whose outcome it never changes.
func (s *ReportService) Trigger(ctx context.Context, microgridID int64) {
	if len(s.sinks) == 0 {
		return
	}
	sum, err := s.Build(ctx, microgridID)
	if err != nil {
		ev := log.Warn()
		if errors.Is(err, domain.ErrEmptyCollection) || errors.Is(err, domain.ErrNotFound) {
			ev = log.Debug()
		}
		ev.Err(err).Int64("microgrid_id", microgridID).Msg("report skipped")
		return
	}
	_ = s.Publish(ctx, sum)
}
