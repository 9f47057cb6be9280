package service

import (
	"context"
	"time"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/analytics"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
)

type SourceService struct {
	repos *repository.Repos
	now   func() time.Time
}

func (s *SourceService) List(ctx context.Context) ([]domain.EnergySource, error) {
	items, err := s.repos.Sources.FindAll(ctx)
	return nonEmpty(items, err, "energy sources")
}

func (s *SourceService) Get(ctx context.Context, id int64) (*domain.EnergySource, error) {
	if err := domain.RequireID(id, "energy source"); err != nil {
		return nil, err
	}
	return s.repos.Sources.FindByID(ctx, id)
}

func (s *SourceService) ByMicrogrid(ctx context.Context, microgridID int64) ([]domain.EnergySource, error) {
	if err := domain.RequireID(microgridID, "microgrid"); err != nil {
		return nil, err
	}
	items, err := s.repos.Sources.FindByMicrogrid(ctx, microgridID)
	return nonEmpty(items, err, "energy sources")
}

// Check applies defaults and validates without persisting.
func (s *SourceService) Check(src domain.EnergySource) (domain.EnergySource, error) {
	src.ApplyDefaults()
	return src, src.Validate()
}

func (s *SourceService) Create(ctx context.Context, src domain.EnergySource) (*domain.EnergySource, error) {
	src, err := s.Check(src)
	if err != nil {
		return nil, err
	}
	return s.repos.Sources.Save(ctx, src)
}

func (s *SourceService) Update(ctx context.Context, src domain.EnergySource) (*domain.EnergySource, error) {
	if err := domain.RequireID(src.ID, "energy source"); err != nil {
		return nil, err
	}
	src, err := s.Check(src)
	if err != nil {
		return nil, err
	}
	ok, err := s.repos.Sources.Update(ctx, src)
	if err := mustExist(ok, err, "energy source %d not found", src.ID); err != nil {
		return nil, err
	}
	return s.repos.Sources.FindByID(ctx, src.ID)
}

func (s *SourceService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID(id, "energy source"); err != nil {
		return err
	}
	ok, err := s.repos.Sources.Delete(ctx, id)
	return mustExist(ok, err, "energy source %d not found", id)
}

// TotalCapacity sums the installed capacity of a microgrid's sources.
func (s *SourceService) TotalCapacity(ctx context.Context, microgridID int64) (float64, error) {
	if _, err := s.ByMicrogrid(ctx, microgridID); err != nil {
		return 0, err
	}
	return s.repos.Sources.SumCapacity(ctx, microgridID)
}

func (s *SourceService) AllWithinLimit(ctx context.Context, microgridID int64, limit float64) (bool, error) {
	sources, err := s.ByMicrogrid(ctx, microgridID)
	if err != nil {
		return false, err
	}
	return analytics.AllWithinCapacityLimit(sources, limit)
}
