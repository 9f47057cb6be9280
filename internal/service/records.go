package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/analytics"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/estimate"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
)

// RecordService owns monthly records and keeps the estimate derived from each
// one in step with it. The record write and the estimate write are separate
// calls: when the second fails the record stays and the caller gets a
// PersistenceFailure.
type RecordService struct {
	repos   *repository.Repos
	reports *ReportService
}

func (s *RecordService) List(ctx context.Context) ([]domain.MonthlyRecord, error) {
	items, err := s.repos.Records.FindAll(ctx)
	return nonEmpty(items, err, "monthly records")
}

func (s *RecordService) Get(ctx context.Context, id int64) (*domain.MonthlyRecord, error) {
	if err := domain.RequireID(id, "monthly record"); err != nil {
		return nil, err
	}
	return s.repos.Records.FindByID(ctx, id)
}

func (s *RecordService) ByMicrogrid(ctx context.Context, microgridID int64) ([]domain.MonthlyRecord, error) {
	if err := domain.RequireID(microgridID, "microgrid"); err != nil {
		return nil, err
	}
	items, err := s.repos.Records.FindByMicrogrid(ctx, microgridID)
	return nonEmpty(items, err, "monthly records")
}

func (s *RecordService) ByPeriod(ctx context.Context, microgridID int64, p domain.Period) (*domain.MonthlyRecord, error) {
	if err := domain.RequireID(microgridID, "microgrid"); err != nil {
		return nil, err
	}
	if !domain.ValidYear(p.Year) {
		return nil, domain.IllegalArgument("invalid year %d: must have exactly 4 digits", p.Year)
	}
	if !domain.ValidMonth(p.Month) {
		return nil, domain.IllegalArgument("invalid month %d: must be between 1 and 12", p.Month)
	}
	return s.repos.Records.FindByPeriod(ctx, microgridID, p)
}

// Create stores r and the estimate for the following month. A microgrid has
// at most one record per month.
func (s *RecordService) Create(ctx context.Context, r domain.MonthlyRecord) (*domain.MonthlyRecord, error) {
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	derived, err := derive(r)
	if err != nil {
		return nil, err
	}
	_, err = s.repos.Records.FindByPeriod(ctx, r.MicrogridID, r.Period())
	switch {
	case err == nil:
		return nil, domain.Invalid("monthly record for microgrid %d at %s already exists", r.MicrogridID, r.Period())
	case !errors.Is(err, domain.ErrNotFound):
		return nil, domain.Persistence("find monthly record", err)
	}

	saved, err := s.repos.Records.Save(ctx, r)
	if err != nil {
		log.Error().Err(err).Int64("microgrid_id", r.MicrogridID).Int("year", r.Year).Int("month", r.Month).
			Msg("save monthly record failed")
		return nil, domain.Persistence("save monthly record", err)
	}

	if _, err := s.repos.Estimates.Save(ctx, derived); err != nil {
		log.Error().Err(err).Int64("record_id", saved.ID).Int64("microgrid_id", saved.MicrogridID).
			Stringer("period", derived.Period()).Msg("save derived estimate failed, record kept")
		return nil, domain.Persistence("save derived estimate", err)
	}
	log.Debug().Int64("record_id", saved.ID).Stringer("estimate_period", derived.Period()).
		Float64("estimated_watts", derived.EstimatedWatts).Msg("monthly record created")

	s.trigger(ctx, saved.MicrogridID)
	return saved, nil
}

// Update rewrites the measured values of an existing record and the derived
// estimate. Only watts and units are read from r; the microgrid and period
// come from the stored record, which updates never change.
func (s *RecordService) Update(ctx context.Context, r domain.MonthlyRecord) (*domain.MonthlyRecord, error) {
	if err := domain.RequireID(r.ID, "monthly record"); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	if err := r.ValidateMeasurements(); err != nil {
		return nil, err
	}
	original, err := s.repos.Records.FindByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	r.MicrogridID, r.Year, r.Month = original.MicrogridID, original.Year, original.Month
	derived, err := derive(r)
	if err != nil {
		return nil, err
	}

	ok, err := s.repos.Records.Update(ctx, r)
	if err != nil {
		return nil, domain.Persistence("update monthly record", err)
	}
	if !ok {
		return nil, domain.NotFound("monthly record %d not found", r.ID)
	}

	key := estimate.KeyFor(*original)
	matched, err := s.repos.Estimates.UpdateByPeriod(ctx, key.MicrogridID, key.Period, derived.EstimatedWatts)
	if err != nil {
		log.Error().Err(err).Int64("record_id", r.ID).Stringer("period", key.Period).
			Msg("update derived estimate failed, record kept")
		return nil, domain.Persistence("update derived estimate", err)
	}
	if !matched {
		log.Warn().Int64("record_id", r.ID).Int64("microgrid_id", key.MicrogridID).Stringer("period", key.Period).
			Msg("no derived estimate to update")
	}

	updated, err := s.repos.Records.FindByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	s.trigger(ctx, updated.MicrogridID)
	return updated, nil
}

// Delete removes a record and the estimate derived from its period.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID(id, "monthly record"); err != nil {
		return err
	}
	existing, err := s.repos.Records.FindByID(ctx, id)
	if err != nil {
		return err
	}
	key := estimate.KeyFor(*existing)

	ok, err := s.repos.Records.Delete(ctx, id)
	if err != nil {
		return domain.Persistence("delete monthly record", err)
	}
	if !ok {
		return domain.NotFound("monthly record %d not found", id)
	}

	n, err := s.repos.Estimates.DeleteByPeriod(ctx, key.MicrogridID, key.Period)
	if err != nil {
		log.Error().Err(err).Int64("record_id", id).Stringer("period", key.Period).
			Msg("delete derived estimate failed, record already removed")
		return domain.Persistence("delete derived estimate", err)
	}
	log.Debug().Int64("record_id", id).Int64("estimates_removed", n).Msg("monthly record deleted")

	s.trigger(ctx, existing.MicrogridID)
	return nil
}

func (s *RecordService) Ratio(ctx context.Context, microgridID int64) (float64, error) {
	items, err := s.ByMicrogrid(ctx, microgridID)
	if err != nil {
		return 0, err
	}
	return analytics.GenerationToConsumptionRatio(items)
}

func (s *RecordService) AverageDelta(ctx context.Context, microgridID int64) (float64, error) {
	items, err := s.ByMicrogrid(ctx, microgridID)
	if err != nil {
		return 0, err
	}
	return analytics.AverageDelta(items), nil
}

// derive builds the estimate for r, rejecting generation so large that the
// projection overflows.
func derive(r domain.MonthlyRecord) (domain.Estimate, error) {
	e := estimate.Derive(r)
	if math.IsInf(e.EstimatedWatts, 0) || math.IsNaN(e.EstimatedWatts) {
		return e, domain.Invalid("watts generated %g is too large to project an estimate", r.WattsGenerated)
	}
	return e, nil
}

func (s *RecordService) trigger(ctx context.Context, microgridID int64) {
	if s.reports == nil {
		return
	}
	s.reports.Trigger(ctx, microgridID)
}
