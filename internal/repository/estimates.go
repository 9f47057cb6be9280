package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

const estimateColumns = `id, microgrid_id, year, month, estimated_watts`

type EstimateRepo struct {
	db *sqlx.DB
}

func (r *EstimateRepo) FindAll(ctx context.Context) ([]domain.Estimate, error) {
	return selectAll[domain.Estimate](ctx, r.db, "estimates",
		`SELECT `+estimateColumns+` FROM estimates ORDER BY year, month`)
}

func (r *EstimateRepo) FindByID(ctx context.Context, id int64) (*domain.Estimate, error) {
	return getOne[domain.Estimate](ctx, r.db, "estimate",
		`SELECT `+estimateColumns+` FROM estimates WHERE id = $1`, id)
}

func (r *EstimateRepo) FindByMicrogrid(ctx context.Context, microgridID int64) ([]domain.Estimate, error) {
	return selectAll[domain.Estimate](ctx, r.db, "estimates",
		`SELECT `+estimateColumns+` FROM estimates WHERE microgrid_id = $1 ORDER BY year, month`, microgridID)
}

func (r *EstimateRepo) Save(ctx context.Context, e domain.Estimate) (*domain.Estimate, error) {
	id, err := insert(ctx, r.db, "estimate",
		`INSERT INTO estimates(microgrid_id, year, month, estimated_watts) VALUES ($1,$2,$3,$4) RETURNING id`,
		e.MicrogridID, e.Year, e.Month, e.EstimatedWatts)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return &e, nil
}

func (r *EstimateRepo) UpdateByPeriod(ctx context.Context, microgridID int64, p domain.Period, watts float64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE estimates SET estimated_watts = $1 WHERE id = (
			SELECT id FROM estimates WHERE microgrid_id = $2 AND year = $3 AND month = $4 ORDER BY id LIMIT 1)`,
		watts, microgridID, p.Year, p.Month)
	if err != nil {
		return false, domain.Persistence("update estimate", err)
	}
	return affected(res, "update estimate")
}

func (r *EstimateRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return false, domain.Persistence("delete estimate", err)
	}
	return affected(res, "delete estimate")
}

func (r *EstimateRepo) DeleteByPeriod(ctx context.Context, microgridID int64, p domain.Period) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM estimates WHERE id = (
			SELECT id FROM estimates WHERE microgrid_id = $1 AND year = $2 AND month = $3 ORDER BY id LIMIT 1)`,
		microgridID, p.Year, p.Month)
	if err != nil {
		return 0, domain.Persistence("delete estimate", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.Persistence("delete estimate", err)
	}
	return n, nil
}
