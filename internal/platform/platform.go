// Package platform wires configuration into the process: logging, the
// selected store and the report sinks.
package platform

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/cloud"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/config"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/database"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/repository/memory"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/service"
)

// SetupLogging configures the global logger. Unknown levels fall back to info.
func SetupLogging(level string, console bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// OpenStore returns the repositories selected by cfg.Store and a close func.
func OpenStore(cfg *config.Config) (*repository.Repos, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on exit")
		return memory.New(), func() {}, nil
	}

	db, err := database.Connect(cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return repository.New(db), func() { db.Close() }, nil
}

// Services opens the store and the report sinks and builds the services.
func Services(ctx context.Context, cfg *config.Config) (*service.Services, func(), error) {
	repos, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	sinks, err := cloud.Sinks(ctx, cfg)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	svcs := service.New(repos, service.Options{
		Sinks:            sinks,
		ReportOnMutation: cfg.ReportOnMutation,
	})
	return svcs, closeStore, nil
}
