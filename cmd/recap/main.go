package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/usecase"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/conf"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/data"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/service"
)

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	storeMessages := flag.Bool("m", false, "store individual messages in the database (slower, more data)")
	queryMode := flag.Bool("q", false, "interactive SQL query mode over an existing database")
	serverQuery := flag.String("server", "", "show stats for servers matching a name substring")
	emoteQuery := flag.String("emote", "", "search emotes by name substring")
	userQuery := flag.String("user", "", "search mapped users by name or ID substring")
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

	switch {
	case *queryMode:
		os.Exit(runLookup(cfg, logger, func(ctx context.Context, l *service.Lookup) error {
			return l.Console(ctx, os.Stdin)
		}))
	case *serverQuery != "":
		os.Exit(runLookup(cfg, logger, func(ctx context.Context, l *service.Lookup) error {
			return l.Servers(ctx, *serverQuery)
		}))
	case *emoteQuery != "":
		os.Exit(runLookup(cfg, logger, func(ctx context.Context, l *service.Lookup) error {
			return l.Emotes(ctx, *emoteQuery)
		}))
	case *userQuery != "":
		os.Exit(runLookup(cfg, logger, func(ctx context.Context, l *service.Lookup) error {
			return l.Users(ctx, *userQuery)
		}))
	}

	os.Exit(runAnalysis(cfg, logger, *storeMessages))
}

// runAnalysis performs the full aggregation pass. Resume is automatic:
// completed conversations are skipped by their completion flag.
func runAnalysis(cfg *conf.Config, logger zerolog.Logger, storeMessages bool) int {
	if cfg.SelfID == "" {
		logger.Error().Msg("RECAP_SELF_ID is required for the analysis run")
		return 1
	}

	store, err := data.NewStatsStore(cfg.DBPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open analysis database")
		return 1
	}
	defer store.Close()

	export := data.NewExportReader(cfg.ExportDir)
	index, err := export.Index()
	if err != nil {
		logger.Warn().Err(err).Msg("label index unreadable, username mapping disabled")
		index = map[string]string{}
	}
	if len(index) == 0 {
		logger.Warn().Msg("no label index entries, username mapping will not be available")
	}

	resolver := usecase.NewIdentityResolver(store, index, cfg.SelfID, logger)
	processor := usecase.NewChannelProcessor(store, export, resolver, cfg.TargetYear, storeMessages, logger)
	analyzer := service.NewAnalyzer(processor, export, store, cfg.TargetYear, cfg.ProgressEvery, os.Stdout, logger)

	// SIGINT/SIGTERM stop the run cleanly between conversations; the store
	// stays resumable.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := analyzer.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("aggregation aborted")
		return 1
	}
	return 0
}

// runLookup opens the existing database read-only-style and runs one lookup
// mode. A missing database is a reported failure, not a crash.
func runLookup(cfg *conf.Config, logger zerolog.Logger, fn func(context.Context, *service.Lookup) error) int {
	store, err := data.OpenStatsStore(cfg.DBPath)
	if err != nil {
		if errors.Is(err, domain.ErrNoDatabase) {
			fmt.Fprintf(os.Stderr, "Database not found: %s\nRun the analyzer first to create it.\n", cfg.DBPath)
			return 1
		}
		logger.Error().Err(err).Msg("failed to open analysis database")
		return 1
	}
	defer store.Close()

	if err := fn(context.Background(), service.NewLookup(store, os.Stdout)); err != nil {
		logger.Error().Err(err).Msg("lookup failed")
		return 1
	}
	return 0
}
