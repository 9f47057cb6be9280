package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

// Microgrids persists microgrids. FindByID and FindByName report a NotFound
// error when nothing matches; list methods return an empty slice.
type Microgrids interface {
	FindAll(ctx context.Context) ([]domain.Microgrid, error)
	FindByID(ctx context.Context, id int64) (*domain.Microgrid, error)
	FindByName(ctx context.Context, name string) (*domain.Microgrid, error)
	Save(ctx context.Context, m domain.Microgrid) (*domain.Microgrid, error)
	Update(ctx context.Context, m domain.Microgrid) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Sources interface {
	FindAll(ctx context.Context) ([]domain.EnergySource, error)
	FindByID(ctx context.Context, id int64) (*domain.EnergySource, error)
	FindByMicrogrid(ctx context.Context, microgridID int64) ([]domain.EnergySource, error)
	SumCapacity(ctx context.Context, microgridID int64) (float64, error)
	Save(ctx context.Context, s domain.EnergySource) (*domain.EnergySource, error)
	Update(ctx context.Context, s domain.EnergySource) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Records persists monthly records. Update only rewrites the measured
// values and units; a record's microgrid and period are fixed at insert.
type Records interface {
	FindAll(ctx context.Context) ([]domain.MonthlyRecord, error)
	FindByID(ctx context.Context, id int64) (*domain.MonthlyRecord, error)
	FindByMicrogrid(ctx context.Context, microgridID int64) ([]domain.MonthlyRecord, error)
	FindByPeriod(ctx context.Context, microgridID int64, p domain.Period) (*domain.MonthlyRecord, error)
	Save(ctx context.Context, r domain.MonthlyRecord) (*domain.MonthlyRecord, error)
	Update(ctx context.Context, r domain.MonthlyRecord) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Estimates interface {
	FindAll(ctx context.Context) ([]domain.Estimate, error)
	FindByID(ctx context.Context, id int64) (*domain.Estimate, error)
	FindByMicrogrid(ctx context.Context, microgridID int64) ([]domain.Estimate, error)
	Save(ctx context.Context, e domain.Estimate) (*domain.Estimate, error)
	// UpdateByPeriod overwrites the watts of the oldest estimate at the key
	// and reports whether a row matched.
	UpdateByPeriod(ctx context.Context, microgridID int64, p domain.Period, watts float64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteByPeriod removes the oldest estimate at the key and returns how
	// many rows went, zero or one.
	DeleteByPeriod(ctx context.Context, microgridID int64, p domain.Period) (int64, error)
}

// Repos groups the stores of one backend.
type Repos struct {
	Microgrids Microgrids
	Sources    Sources
	Records    Records
	Estimates  Estimates
}

func New(db *sqlx.DB) *Repos {
	return &Repos{
		Microgrids: &MicrogridRepo{db: db},
		Sources:    &SourceRepo{db: db},
		Records:    &RecordRepo{db: db},
		Estimates:  &EstimateRepo{db: db},
	}
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.Persistence(op, err)
	}
	return n > 0, nil
}

func getOne[T any](ctx context.Context, db *sqlx.DB, what string, query string, args ...any) (*T, error) {
	var out T
	err := db.GetContext(ctx, &out, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("%s not found", what)
	}
	if err != nil {
		return nil, domain.Persistence("find "+what, err)
	}
	return &out, nil
}

func selectAll[T any](ctx context.Context, db *sqlx.DB, what string, query string, args ...any) ([]T, error) {
	out := []T{}
	if err := db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, domain.Persistence("list "+what, err)
	}
	return out, nil
}

const uniqueViolation = "23505"

// saveError turns a unique constraint violation into an InvalidEntity error
// and anything else into a PersistenceFailure.
func saveError(what string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.Invalid("%s already exists (%s)", what, pgErr.ConstraintName)
	}
	return domain.Persistence("save "+what, err)
}

// insert runs an INSERT ... RETURNING id statement.
func insert(ctx context.Context, db *sqlx.DB, what string, query string, args ...any) (int64, error) {
	var id int64
	if err := db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, saveError(what, err)
	}
	if id <= 0 {
		return 0, domain.Persistence("save "+what+": no generated id", nil)
	}
	return id, nil
}
