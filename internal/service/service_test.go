package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

func TestMicrogridService(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newServices(t, Options{})

	_, err := svcs.Microgrids.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	m, err := svcs.Microgrids.Create(ctx, domain.Microgrid{Name: "Vila Solar", TotalResidences: 4, TotalInhabitants: 10})
	require.NoError(t, err)

	_, err = svcs.Microgrids.Create(ctx, domain.Microgrid{Name: " Vila Solar "})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidEntity)
	assert.Contains(t, err.Error(), "already exists")

	_, err = svcs.Microgrids.Create(ctx, domain.Microgrid{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidEntity)

	updated, err := svcs.Microgrids.Update(ctx, domain.Microgrid{ID: m.ID, Address: "Rua 1", TotalResidences: 5, TotalInhabitants: 10})
	require.NoError(t, err)
	assert.Equal(t, "Vila Solar", updated.Name)
	assert.Equal(t, "Rua 1", updated.Address)

	d, ok, err := svcs.Microgrids.DensityWithin(ctx, m.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-9)
	assert.True(t, ok)

	_, err = svcs.Microgrids.Update(ctx, domain.Microgrid{ID: 99, Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svcs.Microgrids.Delete(ctx, m.ID))
	assert.ErrorIs(t, svcs.Microgrids.Delete(ctx, m.ID), domain.ErrNotFound)
	_, err = svcs.Microgrids.Get(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidEntity)
}

func TestSourceService(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newServices(t, Options{})

	_, err := svcs.Sources.TotalCapacity(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	a, err := svcs.Sources.Create(ctx, domain.EnergySource{MicrogridID: 1, Type: "solar", InstalledCapacity: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCapacityUnit, a.CapacityUnit)
	assert.Equal(t, domain.DefaultSourceStatus, a.Status)
	_, err = svcs.Sources.Create(ctx, domain.EnergySource{MicrogridID: 1, Type: "wind", InstalledCapacity: 25.5})
	require.NoError(t, err)
	_, err = svcs.Sources.Create(ctx, domain.EnergySource{MicrogridID: 1, Type: "battery", InstalledCapacity: 4.5})
	require.NoError(t, err)

	total, err := svcs.Sources.TotalCapacity(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, total, 1e-9)

	ok, err := svcs.Sources.AllWithinLimit(ctx, 1, 30)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svcs.Sources.AllWithinLimit(ctx, 1, 20)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svcs.Sources.Create(ctx, domain.EnergySource{MicrogridID: 1, Type: "solar"})
	assert.ErrorIs(t, err, domain.ErrInvalidEntity)

	a.Status = "Manutencao"
	updated, err := svcs.Sources.Update(ctx, *a)
	require.NoError(t, err)
	assert.Equal(t, "Manutencao", updated.Status)

	require.NoError(t, svcs.Sources.Delete(ctx, a.ID))
	_, err = svcs.Sources.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstimateService(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newServices(t, Options{})

	_, err := svcs.Estimates.Average(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no estimates for the microgrid")

	for _, e := range []domain.Estimate{
		{MicrogridID: 1, Year: 2024, Month: 1, EstimatedWatts: 100},
		{MicrogridID: 1, Year: 2024, Month: 2, EstimatedWatts: 200},
		{MicrogridID: 1, Year: 2025, Month: 1, EstimatedWatts: 300},
	} {
		_, err := svcs.Estimates.Create(ctx, e)
		require.NoError(t, err)
	}

	avg, err := svcs.Estimates.Average(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, avg, 1e-9)

	exceeds, err := svcs.Estimates.Exceeds(ctx, 1, 150)
	require.NoError(t, err)
	assert.True(t, exceeds)
	exceeds, err = svcs.Estimates.Exceeds(ctx, 1, 250)
	require.NoError(t, err)
	assert.False(t, exceeds)

	annual, err := svcs.Estimates.AnnualProjection(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 600.0, annual, 1e-9)

	items, yearAvg, err := svcs.Estimates.ByYear(ctx, 1, 2024)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.InDelta(t, 150.0, yearAvg, 1e-9)

	_, _, err = svcs.Estimates.ByYear(ctx, 1, 99)
	assert.ErrorIs(t, err, domain.ErrIllegalArgument)

	_, err = svcs.Estimates.Create(ctx, domain.Estimate{MicrogridID: 1, Year: 2024, Month: 0, EstimatedWatts: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidEntity)
}

func TestReportService(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{}
	svcs, _ := newServices(t, Options{Sinks: []report.Sink{sink}})

	m, err := svcs.Microgrids.Create(ctx, domain.Microgrid{Name: "Vila Verde"})
	require.NoError(t, err)

	_, err = svcs.Reports.Build(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyCollection)
	_, err = svcs.Reports.Build(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svcs.Records.Create(ctx, domain.MonthlyRecord{MicrogridID: m.ID, Year: 2024, Month: 3, WattsGenerated: 90, WattsConsumed: 100})
	require.NoError(t, err)

	sum, err := svcs.Reports.Build(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, sum.Deficit(1.0))
	assert.Equal(t, 1, sum.Estimates)

	require.NoError(t, svcs.Reports.Publish(ctx, sum))
	svcs.Reports.Trigger(ctx, m.ID)
	assert.Len(t, sink.got, 2)
}
