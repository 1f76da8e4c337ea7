package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dice-stats/internal/cache"
	"github.com/dice-stats/internal/config"
	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/postgres"
	"github.com/dice-stats/internal/service"
	"github.com/google/uuid"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: statsctl [flags] <table>|games|tables\n\nTables:\n")
	for _, name := range service.TableNames() {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	// Command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	from := flag.String("from", "", "Start of the range (RFC 3339 or YYYY-MM-DD)")
	to := flag.String("to", "", "End of the range (RFC 3339 or YYYY-MM-DD, default now)")
	active := flag.Bool("active", false, "Only include active players")
	eventType := flag.String("event-type", "", "Event type id for per-type tables")
	activeEventTypes := flag.Bool("active-event-types", false, "Leave retired event types out of event-types")
	players := flag.String("players", "", "Player ids (comma-separated) to filter the games command by")
	noCache := flag.Bool("no-cache", false, "Bypass the cache")
	verbose := flag.Bool("v", false, "Log progress to stderr")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)
	if command == "tables" {
		fmt.Println(strings.Join(service.TableNames(), "\n"))
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *noCache {
		cfg.Cache.Disabled = true
	}

	scope, err := domain.ParseScope(*from, *to, *active, time.Now(), cfg.Stats.DefaultRangeDays)
	if err != nil {
		log.Fatalf("Invalid range: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := postgres.NewRepository(&cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer repo.Close()

	start := time.Now()
	var result any
	if command == "games" {
		result, err = games(ctx, repo, scope, *players)
	} else {
		result, err = table(ctx, cfg, repo, logger, command, scope, *eventType, *activeEventTypes)
	}
	if err != nil {
		log.Fatalf("Failed to compute %s: %v", command, err)
	}
	logger.Debug("computed", "command", command, "from", scope.From, "to", scope.To, "took", time.Since(start))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

func table(ctx context.Context, cfg *config.Config, repo *postgres.Repository, logger *slog.Logger,
	name string, scope domain.Scope, eventType string, activeEventTypes bool) (any, error) {
	params := service.TableParams{ActiveEventTypes: activeEventTypes}
	if eventType != "" {
		id, err := uuid.Parse(eventType)
		if err != nil {
			return nil, fmt.Errorf("parsing event type id: %w", err)
		}
		params.EventTypeID = id
	}

	store, closeStore, err := cache.OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	stats := service.NewStatisticsService(repo, cache.New(store, &cfg.Cache, logger), logger)
	return stats.Table(ctx, name, scope, params)
}

// games dumps the raw games of the range, with only the events of the given
// players when any are named
func games(ctx context.Context, repo *postgres.Repository, scope domain.Scope, players string) ([]domain.Game, error) {
	var playerIDs []uuid.UUID
	for _, raw := range strings.Split(players, ",") {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing player id %q: %w", raw, err)
		}
		playerIDs = append(playerIDs, id)
	}

	refs, err := repo.GamesInRange(ctx, scope.From, scope.To)
	if err != nil {
		return nil, err
	}
	gameIDs := make([]uuid.UUID, len(refs))
	for i, ref := range refs {
		gameIDs[i] = ref.ID
	}
	return repo.Games(ctx, gameIDs, playerIDs)
}
