// Package memory is a process-local backend for the repository interfaces.
// It backs tests and STORE=memory runs; data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
)

// table is an id-keyed map with a monotonically increasing sequence.
type table[T any] struct {
	mu   sync.RWMutex
	seq  int64
	rows map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) insert(set func(*T, int64), v T) T {
	out, _ := t.insertUnique(set, v, nil)
	return out
}

// insertUnique stores v unless a row already clashes with it, mirroring a
// unique index.
func (t *table[T]) insertUnique(set func(*T, int64), v T, clash func(T) bool) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if clash != nil {
		for _, row := range t.rows {
			if clash(row) {
				return v, false
			}
		}
	}
	t.seq++
	set(&v, t.seq)
	t.rows[t.seq] = v
	return v, true
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []T{}
	for _, id := range ids {
		if keep == nil || keep(t.rows[id]) {
			out = append(out, t.rows[id])
		}
	}
	return out
}

func (t *table[T]) modify(id int64, fn func(*T)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return false
	}
	fn(&v)
	t.rows[id] = v
	return true
}

func (t *table[T]) remove(keep func(int64, T) bool) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int64
	for id, v := range t.rows {
		if keep(id, v) {
			delete(t.rows, id)
			n++
		}
	}
	return n
}

// New returns an empty backend.
func New() *repository.Repos {
	return &repository.Repos{
		Microgrids: &Microgrids{t: newTable[domain.Microgrid]()},
		Sources:    &Sources{t: newTable[domain.EnergySource]()},
		Records:    &Records{t: newTable[domain.MonthlyRecord]()},
		Estimates:  &Estimates{t: newTable[domain.Estimate]()},
	}
}

type Microgrids struct{ t *table[domain.Microgrid] }

func (m *Microgrids) FindAll(context.Context) ([]domain.Microgrid, error) {
	out := m.t.filter(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Microgrids) FindByID(_ context.Context, id int64) (*domain.Microgrid, error) {
	v, ok := m.t.get(id)
	if !ok {
		return nil, domain.NotFound("microgrid not found")
	}
	return &v, nil
}

func (m *Microgrids) FindByName(_ context.Context, name string) (*domain.Microgrid, error) {
	name = strings.TrimSpace(name)
	found := m.t.filter(func(g domain.Microgrid) bool { return strings.TrimSpace(g.Name) == name })
	if len(found) == 0 {
		return nil, domain.NotFound("microgrid not found")
	}
	return &found[0], nil
}

func (m *Microgrids) Save(_ context.Context, g domain.Microgrid) (*domain.Microgrid, error) {
	g.Name = strings.TrimSpace(g.Name)
	v, ok := m.t.insertUnique(func(x *domain.Microgrid, id int64) { x.ID = id }, g,
		func(x domain.Microgrid) bool { return x.Name == g.Name })
	if !ok {
		return nil, domain.Invalid("microgrid already exists (name %q)", g.Name)
	}
	return &v, nil
}

func (m *Microgrids) Update(_ context.Context, g domain.Microgrid) (bool, error) {
	return m.t.modify(g.ID, func(x *domain.Microgrid) {
		x.Address = g.Address
		x.TotalResidences = g.TotalResidences
		x.TotalInhabitants = g.TotalInhabitants
	}), nil
}

func (m *Microgrids) Delete(_ context.Context, id int64) (bool, error) {
	return m.t.remove(func(k int64, _ domain.Microgrid) bool { return k == id }) > 0, nil
}

type Sources struct{ t *table[domain.EnergySource] }

func (s *Sources) FindAll(context.Context) ([]domain.EnergySource, error) {
	return s.t.filter(nil), nil
}

func (s *Sources) FindByID(_ context.Context, id int64) (*domain.EnergySource, error) {
	v, ok := s.t.get(id)
	if !ok {
		return nil, domain.NotFound("energy source not found")
	}
	return &v, nil
}

func (s *Sources) FindByMicrogrid(_ context.Context, microgridID int64) ([]domain.EnergySource, error) {
	return s.t.filter(func(x domain.EnergySource) bool { return x.MicrogridID == microgridID }), nil
}

func (s *Sources) SumCapacity(ctx context.Context, microgridID int64) (float64, error) {
	rows, _ := s.FindByMicrogrid(ctx, microgridID)
	total := 0.0
	for _, r := range rows {
		total += r.InstalledCapacity
	}
	return total, nil
}

func (s *Sources) Save(_ context.Context, src domain.EnergySource) (*domain.EnergySource, error) {
	v := s.t.insert(func(x *domain.EnergySource, id int64) { x.ID = id }, src)
	return &v, nil
}

func (s *Sources) Update(_ context.Context, src domain.EnergySource) (bool, error) {
	return s.t.modify(src.ID, func(x *domain.EnergySource) {
		x.Type = src.Type
		x.InstalledCapacity = src.InstalledCapacity
		x.CapacityUnit = src.CapacityUnit
		x.InstalledAt = src.InstalledAt
		x.Status = src.Status
	}), nil
}

func (s *Sources) Delete(_ context.Context, id int64) (bool, error) {
	return s.t.remove(func(k int64, _ domain.EnergySource) bool { return k == id }) > 0, nil
}

func byPeriod[T interface{ Period() domain.Period }](out []T) {
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Period(), out[j].Period()
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
}

type Records struct{ t *table[domain.MonthlyRecord] }

func (r *Records) FindAll(context.Context) ([]domain.MonthlyRecord, error) {
	out := r.t.filter(nil)
	byPeriod(out)
	return out, nil
}

func (r *Records) FindByID(_ context.Context, id int64) (*domain.MonthlyRecord, error) {
	v, ok := r.t.get(id)
	if !ok {
		return nil, domain.NotFound("monthly record not found")
	}
	return &v, nil
}

func (r *Records) FindByMicrogrid(_ context.Context, microgridID int64) ([]domain.MonthlyRecord, error) {
	out := r.t.filter(func(x domain.MonthlyRecord) bool { return x.MicrogridID == microgridID })
	byPeriod(out)
	return out, nil
}

func (r *Records) FindByPeriod(_ context.Context, microgridID int64, p domain.Period) (*domain.MonthlyRecord, error) {
	found := r.t.filter(func(x domain.MonthlyRecord) bool {
		return x.MicrogridID == microgridID && x.Period() == p
	})
	if len(found) == 0 {
		return nil, domain.NotFound("monthly record not found")
	}
	return &found[0], nil
}

func (r *Records) Save(_ context.Context, rec domain.MonthlyRecord) (*domain.MonthlyRecord, error) {
	v, ok := r.t.insertUnique(func(x *domain.MonthlyRecord, id int64) { x.ID = id }, rec,
		func(x domain.MonthlyRecord) bool { return x.MicrogridID == rec.MicrogridID && x.Period() == rec.Period() })
	if !ok {
		return nil, domain.Invalid("monthly record already exists (microgrid %d, %s)", rec.MicrogridID, rec.Period())
	}
	return &v, nil
}

func (r *Records) Update(_ context.Context, rec domain.MonthlyRecord) (bool, error) {
	return r.t.modify(rec.ID, func(x *domain.MonthlyRecord) {
		x.WattsGenerated = rec.WattsGenerated
		x.GenerationUnit = rec.GenerationUnit
		x.WattsConsumed = rec.WattsConsumed
		x.ConsumptionUnit = rec.ConsumptionUnit
	}), nil
}

func (r *Records) Delete(_ context.Context, id int64) (bool, error) {
	return r.t.remove(func(k int64, _ domain.MonthlyRecord) bool { return k == id }) > 0, nil
}

type Estimates struct{ t *table[domain.Estimate] }

func (e *Estimates) FindAll(context.Context) ([]domain.Estimate, error) {
	out := e.t.filter(nil)
	byPeriod(out)
	return out, nil
}

func (e *Estimates) FindByID(_ context.Context, id int64) (*domain.Estimate, error) {
	v, ok := e.t.get(id)
	if !ok {
		return nil, domain.NotFound("estimate not found")
	}
	return &v, nil
}

func (e *Estimates) FindByMicrogrid(_ context.Context, microgridID int64) ([]domain.Estimate, error) {
	out := e.t.filter(func(x domain.Estimate) bool { return x.MicrogridID == microgridID })
	byPeriod(out)
	return out, nil
}

func (e *Estimates) Save(_ context.Context, est domain.Estimate) (*domain.Estimate, error) {
	v := e.t.insert(func(x *domain.Estimate, id int64) { x.ID = id }, est)
	return &v, nil
}

// oldestAt returns the id of the first estimate stored at the key, or 0.
func (e *Estimates) oldestAt(microgridID int64, p domain.Period) int64 {
	found := e.t.filter(func(x domain.Estimate) bool {
		return x.MicrogridID == microgridID && x.Period() == p
	})
	if len(found) == 0 {
		return 0
	}
	return found[0].ID
}

func (e *Estimates) UpdateByPeriod(_ context.Context, microgridID int64, p domain.Period, watts float64) (bool, error) {
	id := e.oldestAt(microgridID, p)
	if id == 0 {
		return false, nil
	}
	return e.t.modify(id, func(x *domain.Estimate) { x.EstimatedWatts = watts }), nil
}

func (e *Estimates) Delete(_ context.Context, id int64) (bool, error) {
	return e.t.remove(func(k int64, _ domain.Estimate) bool { return k == id }) > 0, nil
}

func (e *Estimates) DeleteByPeriod(_ context.Context, microgridID int64, p domain.Period) (int64, error) {
	id := e.oldestAt(microgridID, p)
	if id == 0 {
		return 0, nil
	}
	return e.t.remove(func(k int64, _ domain.Estimate) bool { return k == id }), nil
}
