package service

import (
	"context"
	"errors"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
)

type MicrogridService struct {
	repos *repository.Repos
}

func (s *MicrogridService) List(ctx context.Context) ([]domain.Microgrid, error) {
	items, err := s.repos.Microgrids.FindAll(ctx)
	return nonEmpty(items, err, "microgrids")
}

func (s *MicrogridService) Get(ctx context.Context, id int64) (*domain.Microgrid, error) {
	if err := domain.RequireID(id, "microgrid"); err != nil {
		return nil, err
	}
	return s.repos.Microgrids.FindByID(ctx, id)
}

func (s *MicrogridService) Create(ctx context.Context, m domain.Microgrid) (*domain.Microgrid, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repos.Microgrids.FindByName(ctx, m.Name)
	switch {
	case err == nil && existing != nil:
		return nil, domain.Invalid("a microgrid named %q already exists", existing.Name)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return s.repos.Microgrids.Save(ctx, m)
}

// Update rewrites address and population figures. The name is fixed at
// creation.
func (s *MicrogridService) Update(ctx context.Context, m domain.Microgrid) (*domain.Microgrid, error) {
	if err := domain.RequireID(m.ID, "microgrid"); err != nil {
		return nil, err
	}
	current, err := s.repos.Microgrids.FindByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = current.Name
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	ok, err := s.repos.Microgrids.Update(ctx, m)
	if err := mustExist(ok, err, "microgrid %d not found", m.ID); err != nil {
		return nil, err
	}
	return s.repos.Microgrids.FindByID(ctx, m.ID)
}

func (s *MicrogridService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID(id, "microgrid"); err != nil {
		return err
	}
	ok, err := s.repos.Microgrids.Delete(ctx, id)
	return mustExist(ok, err, "microgrid %d not found", id)
}

// DensityWithin reports whether inhabitants per residence is at most limit.
func (s *MicrogridService) DensityWithin(ctx context.Context, id int64, limit float64) (float64, bool, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return 0, false, err
	}
	d, err := m.Density()
	if err != nil {
		return 0, false, err
	}
	return d, d <= limit, nil
}
