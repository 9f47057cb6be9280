package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/config"
	httpHandlers "github.com/ANIKETSHETTY47/microgrid-estimates/internal/http"
	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/platform"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	platform.SetupLogging(cfg.LogLevel, false)

	svcs, closeStore, err := platform.Services(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer closeStore()

	app := httpHandlers.NewApp(svcs)

	log.Info().Str("addr", cfg.APIAddr).Str("store", cfg.Store).Msg("api listening")
	if err := app.Listen(cfg.APIAddr); err != nil {
		log.Error().Err(err).Msg("server exit")
		closeStore()
		os.Exit(1)
	}
}
