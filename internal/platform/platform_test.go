package platform

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/config"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/domain"
)

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetupLogging("debug", false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetupLogging("shouting", false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestServicesWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	svcs, closeFn, err := Services(ctx, &config.Config{Store: config.StoreMemory, ReportOnMutation: true})
	require.NoError(t, err)
	defer closeFn()

	saved, err := svcs.Records.Create(ctx, domain.MonthlyRecord{MicrogridID: 1, Year: 2024, Month: 1, WattsGenerated: 10, WattsConsumed: 5})
	require.NoError(t, err)
	assert.Positive(t, saved.ID)
}
