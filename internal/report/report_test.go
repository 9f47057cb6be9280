package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

var now = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func sample() (domain.Microgrid, []domain.MonthlyRecord, []domain.Estimate, []domain.EnergySource) {
	m := domain.Microgrid{ID: 7, Name: "Vila Solar"}
	records := []domain.MonthlyRecord{
		{MicrogridID: 7, Year: 2024, Month: 11, WattsGenerated: 300, WattsConsumed: 200},
		{MicrogridID: 7, Year: 2024, Month: 12, WattsGenerated: 100, WattsConsumed: 200},
	}
	estimates := []domain.Estimate{
		{MicrogridID: 7, Year: 2024, Month: 12, EstimatedWatts: 330},
		{MicrogridID: 7, Year: 2025, Month: 1, EstimatedWatts: 110},
	}
	sources := []domain.EnergySource{{MicrogridID: 7, Type: "solar", InstalledCapacity: 12.5}}
	return m, records, estimates, sources
}

func TestBuild(t *testing.T) {
	m, records, estimates, sources := sample()
	s, err := Build(m, records, estimates, sources, now)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, int64(7), s.MicrogridID)
	assert.Equal(t, domain.Period{Year: 2024, Month: 11}, s.FirstPeriod)
	assert.Equal(t, domain.Period{Year: 2024, Month: 12}, s.LastPeriod)
	assert.Equal(t, 2, s.Records)
	assert.InDelta(t, 400.0, s.TotalGenerated, 1e-9)
	assert.InDelta(t, 400.0, s.TotalConsumed, 1e-9)
	assert.InDelta(t, 0.0, s.AverageDelta, 1e-9)
	assert.InDelta(t, 1.0, s.Ratio, 1e-9)
	assert.InDelta(t, 220.0, s.AverageEstimate, 1e-9)
	assert.InDelta(t, 440.0, s.ProjectedAnnual, 1e-9)
	assert.Empty(t, s.EstimateTrend, "fewer estimates than the trend window")
	assert.InDelta(t, 12.5, s.InstalledCapacity, 1e-9)

	assert.False(t, s.Deficit(1.0))
	assert.True(t, s.Deficit(1.5))
}

func TestBuildRequiresRecords(t *testing.T) {
	m, _, estimates, sources := sample()
	_, err := Build(m, nil, estimates, sources, now)
	assert.ErrorIs(t, err, domain.ErrEmptyCollection)
}

func TestBuildWithoutEstimatesOrSources(t *testing.T) {
	m, records, _, _ := sample()
	s, err := Build(m, records, nil, nil, now)
	require.NoError(t, err)
	assert.Zero(t, s.AverageEstimate)
	assert.Zero(t, s.InstalledCapacity)
	assert.NotNil(t, s.EstimateTrend)
}

func TestRenderers(t *testing.T) {
	m, records, estimates, sources := sample()
	s, err := Build(m, records, estimates, sources, now)
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, RenderText(&text, s))
	assert.Contains(t, text.String(), "Vila Solar (#7)")
	assert.Contains(t, text.String(), "2024-11 .. 2024-12")

	raw, err := JSON(s)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Vila Solar", decoded["microgrid_name"])

	var pdf bytes.Buffer
	require.NoError(t, WritePDF(&pdf, s))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF")))
}

func TestLogSink(t *testing.T) {
	m, records, _, _ := sample()
	s, err := Build(m, records, nil, nil, now)
	require.NoError(t, err)
	assert.Equal(t, "log", LogSink{}.Name())
	assert.NoError(t, LogSink{}.Publish(context.Background(), s))
}
