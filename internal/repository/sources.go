package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

const sourceColumns = `id, microgrid_id, type, installed_capacity, capacity_unit, installed_at, status`

type SourceRepo struct {
	db *sqlx.DB
}

func (r *SourceRepo) FindAll(ctx context.Context) ([]domain.EnergySource, error) {
	return selectAll[domain.EnergySource](ctx, r.db, "energy sources",
		`SELECT `+sourceColumns+` FROM energy_sources ORDER BY id`)
}

func (r *SourceRepo) FindByID(ctx context.Context, id int64) (*domain.EnergySource, error) {
	return getOne[domain.EnergySource](ctx, r.db, "energy source",
		`SELECT `+sourceColumns+` FROM energy_sources WHERE id = $1`, id)
}

func (r *SourceRepo) FindByMicrogrid(ctx context.Context, microgridID int64) ([]domain.EnergySource, error) {
	return selectAll[domain.EnergySource](ctx, r.db, "energy sources",
		`SELECT `+sourceColumns+` FROM energy_sources WHERE microgrid_id = $1 ORDER BY id`, microgridID)
}

func (r *SourceRepo) SumCapacity(ctx context.Context, microgridID int64) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(installed_capacity), 0) FROM energy_sources WHERE microgrid_id = $1`, microgridID)
	if err != nil {
		return 0, domain.Persistence("sum capacity", err)
	}
	return total, nil
}

func (r *SourceRepo) Save(ctx context.Context, s domain.EnergySource) (*domain.EnergySource, error) {
	id, err := insert(ctx, r.db, "energy source",
		`INSERT INTO energy_sources(microgrid_id, type, installed_capacity, capacity_unit, installed_at, status)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		s.MicrogridID, s.Type, s.InstalledCapacity, s.CapacityUnit, s.InstalledAt, s.Status)
	if err != nil {
		return nil, err
	}
	s.ID = id
	return &s, nil
}

func (r *SourceRepo) Update(ctx context.Context, s domain.EnergySource) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE energy_sources SET type = $1, installed_capacity = $2, capacity_unit = $3, installed_at = $4, status = $5 WHERE id = $6`,
		s.Type, s.InstalledCapacity, s.CapacityUnit, s.InstalledAt, s.Status, s.ID)
	if err != nil {
		return false, domain.Persistence("update energy source", err)
	}
	return affected(res, "update energy source")
}

func (r *SourceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM energy_sources WHERE id = $1`, id)
	if err != nil {
		return false, domain.Persistence("delete energy source", err)
	}
	return affected(res, "delete energy source")
}
