package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

const microgridColumns = `id, name, address, total_residences, total_inhabitants`

type MicrogridRepo struct {
	db *sqlx.DB
}

func (r *MicrogridRepo) FindAll(ctx context.Context) ([]domain.Microgrid, error) {
	return selectAll[domain.Microgrid](ctx, r.db, "microgrids",
		`SELECT `+microgridColumns+` FROM microgrids ORDER BY name`)
}

func (r *MicrogridRepo) FindByID(ctx context.Context, id int64) (*domain.Microgrid, error) {
	return getOne[domain.Microgrid](ctx, r.db, "microgrid",
		`SELECT `+microgridColumns+` FROM microgrids WHERE id = $1`, id)
}

func (r *MicrogridRepo) FindByName(ctx context.Context, name string) (*domain.Microgrid, error) {
	return getOne[domain.Microgrid](ctx, r.db, "microgrid",
		`SELECT `+microgridColumns+` FROM microgrids WHERE TRIM(name) = TRIM($1)`, name)
}

func (r *MicrogridRepo) Save(ctx context.Context, m domain.Microgrid) (*domain.Microgrid, error) {
	m.Name = strings.TrimSpace(m.Name)
	id, err := insert(ctx, r.db, "microgrid",
		`INSERT INTO microgrids(name, address, total_residences, total_inhabitants) VALUES ($1,$2,$3,$4) RETURNING id`,
		m.Name, m.Address, m.TotalResidences, m.TotalInhabitants)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return &m, nil
}

// Update leaves the name untouched; names are unique and set on creation.
func (r *MicrogridRepo) Update(ctx context.Context, m domain.Microgrid) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE microgrids SET address = $1, total_residences = $2, total_inhabitants = $3 WHERE id = $4`,
		m.Address, m.TotalResidences, m.TotalInhabitants, m.ID)
	if err != nil {
		return false, domain.Persistence("update microgrid", err)
	}
	return affected(res, "update microgrid")
}

func (r *MicrogridRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM microgrids WHERE id = $1`, id)
	if err != nil {
		return false, domain.Persistence("delete microgrid", err)
	}
	return affected(res, "delete microgrid")
}
