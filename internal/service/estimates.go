package service

import (
	"context"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/analytics"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
)

type EstimateService struct {
	repos *repository.Repos
}

func (s *EstimateService) List(ctx context.Context) ([]domain.Estimate, error) {
	items, err := s.repos.Estimates.FindAll(ctx)
	return nonEmpty(items, err, "estimates")
}

func (s *EstimateService) Get(ctx context.Context, id int64) (*domain.Estimate, error) {
	if err := domain.RequireID(id, "estimate"); err != nil {
		return nil, err
	}
	return s.repos.Estimates.FindByID(ctx, id)
}

func (s *EstimateService) ByMicrogrid(ctx context.Context, microgridID int64) ([]domain.Estimate, error) {
	if err := domain.RequireID(microgridID, "microgrid"); err != nil {
		return nil, err
	}
	items, err := s.repos.Estimates.FindByMicrogrid(ctx, microgridID)
	return nonEmpty(items, err, "estimates")
}

// Create stores a manually entered estimate. Derived estimates are written by
// RecordService.
func (s *EstimateService) Create(ctx context.Context, e domain.Estimate) (*domain.Estimate, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.repos.Estimates.Save(ctx, e)
}

func (s *EstimateService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID(id, "estimate"); err != nil {
		return err
	}
	ok, err := s.repos.Estimates.Delete(ctx, id)
	return mustExist(ok, err, "estimate %d not found", id)
}

// Average is the mean estimate of a microgrid. A microgrid without estimates
// is reported as NotFound.
func (s *EstimateService) Average(ctx context.Context, microgridID int64) (float64, error) {
	items, err := s.ByMicrogrid(ctx, microgridID)
	if err != nil {
		return 0, err
	}
	return analytics.Average(items), nil
}

func (s *EstimateService) Exceeds(ctx context.Context, microgridID int64, limit float64) (bool, error) {
	items, err := s.ByMicrogrid(ctx, microgridID)
	if err != nil {
		return false, err
	}
	return analytics.ExceedsThreshold(items, limit)
}

func (s *EstimateService) AnnualProjection(ctx context.Context, microgridID int64) (float64, error) {
	items, err := s.ByMicrogrid(ctx, microgridID)
	if err != nil {
		return 0, err
	}
	return analytics.ProjectedAnnualGeneration(items)
}

// ByYear returns the estimates of one year together with their average.
func (s *EstimateService) ByYear(ctx context.Context, microgridID int64, year int) ([]domain.Estimate, float64, error) {
	if !domain.ValidYear(year) {
		return nil, 0, domain.IllegalArgument("invalid year %d: must have exactly 4 digits", year)
	}
	items, err := s.ByMicrogrid(ctx, microgridID)
	if err != nil {
		return nil, 0, err
	}
	filtered, err := analytics.FilterByYear(items, year)
	if err != nil {
		return nil, 0, err
	}
	return filtered, analytics.Average(filtered), nil
}
