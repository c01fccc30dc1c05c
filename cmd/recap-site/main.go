package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/conf"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/data"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/report"
)

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	output := flag.String("o", "", "output file (defaults to the configured report path)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using environment variables")
	}

	cfg, err := conf.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.SelfID == "" {
		logger.Fatal().Msg("RECAP_SELF_ID is required to attribute direct messages in the report")
	}
	outPath := cfg.ReportPath
	if *output != "" {
		outPath = *output
	}

	store, err := data.OpenStatsStore(cfg.DBPath)
	if err != nil {
		if errors.Is(err, domain.ErrNoDatabase) {
			fmt.Fprintf(os.Stderr, "Database not found: %s\nRun the analyzer first to create it.\n", cfg.DBPath)
			os.Exit(1)
		}
		logger.Fatal().Err(err).Msg("failed to open analysis database")
	}
	defer store.Close()

	snap, err := report.Build(context.Background(), store, cfg.TargetYear, cfg.SelfID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read aggregate snapshot")
	}

	f, err := os.Create(outPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create report file")
	}
	if err := report.Render(f, snap); err != nil {
		f.Close()
		logger.Fatal().Err(err).Msg("failed to render report")
	}
	if err := f.Close(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write report file")
	}

	logger.Info().Str("path", outPath).Int("year", snap.TargetYear).Msg("report generated")
}
