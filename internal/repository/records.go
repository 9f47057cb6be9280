package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

const recordColumns = `id, microgrid_id, year, month, watts_generated, generation_unit, watts_consumed, consumption_unit`

type RecordRepo struct {
	db *sqlx.DB
}

func (r *RecordRepo) FindAll(ctx context.Context) ([]domain.MonthlyRecord, error) {
	return selectAll[domain.MonthlyRecord](ctx, r.db, "monthly records",
		`SELECT `+recordColumns+` FROM monthly_records ORDER BY year, month`)
}

func (r *RecordRepo) FindByID(ctx context.Context, id int64) (*domain.MonthlyRecord, error) {
	return getOne[domain.MonthlyRecord](ctx, r.db, "monthly record",
		`SELECT `+recordColumns+` FROM monthly_records WHERE id = $1`, id)
}

func (r *RecordRepo) FindByMicrogrid(ctx context.Context, microgridID int64) ([]domain.MonthlyRecord, error) {
	return selectAll[domain.MonthlyRecord](ctx, r.db, "monthly records",
		`SELECT `+recordColumns+` FROM monthly_records WHERE microgrid_id = $1 ORDER BY year, month`, microgridID)
}

func (r *RecordRepo) FindByPeriod(ctx context.Context, microgridID int64, p domain.Period) (*domain.MonthlyRecord, error) {
	return getOne[domain.MonthlyRecord](ctx, r.db, "monthly record",
		`SELECT `+recordColumns+` FROM monthly_records WHERE microgrid_id = $1 AND year = $2 AND month = $3 ORDER BY id LIMIT 1`,
		microgridID, p.Year, p.Month)
}

func (r *RecordRepo) Save(ctx context.Context, rec domain.MonthlyRecord) (*domain.MonthlyRecord, error) {
	id, err := insert(ctx, r.db, "monthly record",
		`INSERT INTO monthly_records(microgrid_id, year, month, watts_generated, generation_unit, watts_consumed, consumption_unit)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		rec.MicrogridID, rec.Year, rec.Month, rec.WattsGenerated, rec.GenerationUnit, rec.WattsConsumed, rec.ConsumptionUnit)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

func (r *RecordRepo) Update(ctx context.Context, rec domain.MonthlyRecord) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE monthly_records SET watts_generated = $1, generation_unit = $2, watts_consumed = $3, consumption_unit = $4 WHERE id = $5`,
		rec.WattsGenerated, rec.GenerationUnit, rec.WattsConsumed, rec.ConsumptionUnit, rec.ID)
	if err != nil {
		return false, domain.Persistence("update monthly record", err)
	}
	return affected(res, "update monthly record")
}

func (r *RecordRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM monthly_records WHERE id = $1`, id)
	if err != nil {
		return false, domain.Persistence("delete monthly record", err)
	}
	return affected(res, "delete monthly record")
}
