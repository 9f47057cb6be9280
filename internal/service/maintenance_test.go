package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

func TestSourceOutlook(t *testing.T) {
	ctx := context.Background()
	svcs, _ := newServices(t, Options{})

	installed := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	src, err := svcs.Sources.Create(ctx, domain.EnergySource{MicrogridID: 1, Type: "solar", InstalledCapacity: 5, InstalledAt: &installed})
	require.NoError(t, err)

	out, err := svcs.Sources.Outlook(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, out.OperatingYears)
	days := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC).Sub(installed).Hours() / 24
	assert.InDelta(t, days*20, out.HoursRun, 1e-6)
	assert.NotEmpty(t, out.Recommendation)

	bare, err := svcs.Sources.Create(ctx, domain.EnergySource{MicrogridID: 1, Type: "wind", InstalledCapacity: 5})
	require.NoError(t, err)
	_, err = svcs.Sources.Outlook(ctx, bare.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalArgument)

	_, err = svcs.Sources.Outlook(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecommendation(t *testing.T) {
	assert.Contains(t, recommendation(0.9, domain.DefaultSourceStatus), "URGENT")
	assert.Equal(t, "Source operating normally", recommendation(0.01, domain.DefaultSourceStatus))
	assert.Contains(t, recommendation(0.01, "Manutencao"), "not operational")
}
