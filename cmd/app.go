package cmd

import (
	"fmt"
	"os"

	"mangadex/internal/buildinfo"
	"mangadex/internal/config"
	"mangadex/internal/logger"
	"mangadex/internal/source"
)

type app struct {
	cfg    *config.AppConfig
	log    logger.Logger
	source *source.Mangadex
	out    *printer
}

// newApp reads the config, sets up logging and builds the source.
func newApp() *app {
	// read config
	cfg := config.New(configPath, buildinfo.Version)

	// init new logger
	log := logger.New(cfg.Config)

	s, err := source.NewMangadex(source.OptionsFromConfig(cfg.Config), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create source")
	}

	if err := s.ValidateInput(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	return &app{
		cfg:    cfg,
		log:    log,
		source: s,
		out:    newPrinter(os.Stdout, noColor),
	}
}

// fail prints err and exits.
func (a *app) fail(err error) {
	a.out.failure(err)
	os.Exit(1)
}
