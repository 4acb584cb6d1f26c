// Package main provides the reconciliation entry point.
// Executes: load config → wire sources and sinks → replay trades → audit keepers → publish
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	s3blob "keeper-ledger/internal/blob/s3"
	rediscache "keeper-ledger/internal/cache/redis"
	"keeper-ledger/internal/config"
	"keeper-ledger/internal/observability"
	"keeper-ledger/internal/orchestrator"
	"keeper-ledger/internal/storage"
	chstore "keeper-ledger/internal/storage/clickhouse"
	"keeper-ledger/internal/storage/jsonfile"
	"keeper-ledger/internal/storage/memory"
	"keeper-ledger/internal/storage/migrations"
	pgstore "keeper-ledger/internal/storage/postgres"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitConfig   = 2
	exitMismatch = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.toml", "Path to the TOML configuration file")
	mode := flag.String("mode", "", "Override run mode: board, keepers or all")
	season := flag.Int("season", 0, "Override the season")
	printJSON := flag.Bool("json", false, "Print the run summary as JSON on stdout")
	failOnDiff := flag.Bool("fail-on-diff", false, "Exit 3 when discrepancies or cost mismatches are found")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitConfig
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *season != 0 {
		cfg.Season = *season
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		return exitConfig
	}

	logger, err := observability.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return exitConfig
	}
	defer func() { _ = logger.Sync() }()

	lg, err := cfg.BuildLeague()
	if err != nil {
		logger.Error("build league", zap.Error(err))
		return exitConfig
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Warn("received signal, cancelling run", zap.String("signal", sig.String()))
		cancel()
	}()

	w, err := wire(ctx, cfg, logger)
	if err != nil {
		logger.Error("wire dependencies", zap.Error(err))
		return exitError
	}
	defer w.close()

	opts := orchestrator.Options{
		League:         lg,
		Season:         cfg.Season,
		PreviousSeason: cfg.PreviousSeason(),
		Mode:           cfg.Mode,
		Snapshots:      w.snapshots,
		Keepers:        w.keepers,
		DraftResults:   w.draftResults,
		Transactions:   w.transactions,
		Rosters:        w.rosters,
		RankCSV:        cfg.Sources.RankCSV,
		Corrections:    w.corrections,
		Runs:           w.runs,
		OutputDir:      cfg.Output.Dir,
		Formats:        cfg.Output.Formats,
		Metrics:        observability.NewMetrics(observability.DefaultNamespace),
		Logger:         logger,
	}
	if w.rankCache != nil {
		opts.RankCache = w.rankCache
	}
	if w.publisher != nil {
		opts.Publisher = w.publisher
	}

	if cfg.Mode != config.ModeKeepers {
		opts.Trades, err = config.LoadTradeLedger(cfg.Sources.TradesFile)
		if err == nil {
			err = config.ValidateTrades(opts.Trades, lg)
		}
		if err != nil {
			logger.Error("load trade ledger", zap.String("path", cfg.Sources.TradesFile), zap.Error(err))
			return exitConfig
		}
	}

	result, runErr := orchestrator.New(opts).Run(ctx)

	if err := opts.Metrics.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
		logger.Warn("push metrics", zap.Error(err))
	}

	if result != nil {
		if *printJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result.Summary); err != nil {
				logger.Warn("print summary", zap.Error(err))
			}
		} else {
			printSummary(result)
		}
	}

	switch {
	case runErr != nil:
		return exitError
	case *failOnDiff && (result.Summary.Discrepancies > 0 || result.Summary.Mismatches > 0):
		return exitMismatch
	}
	return exitOK
}

func printSummary(r *orchestrator.Result) {
	s := r.Summary
	fmt.Printf("Run %s (%s, season %d): %s\n", s.RunID, s.Mode, s.Season, s.Status)
	if s.Error != "" {
		fmt.Printf("  Error: %s\n", s.Error)
	}
	if r.Replay != nil {
		fmt.Printf("  Trades: %d applied, %d skipped, %d moves\n", s.TradesApplied, s.TradesSkipped, s.MovesApplied)
		fmt.Printf("  Board discrepancies: %d\n", s.Discrepancies)
	}
	if r.Keepers != nil {
		fmt.Printf("  Keepers: %d checked, %d match, %d mismatch, %d skipped\n",
			s.KeepersChecked, s.Matches, s.Mismatches, s.Skipped)
	}
	for _, out := range r.Outputs {
		fmt.Printf("  - %s\n", out)
	}
}

// wiring holds the sources and sinks selected by the configuration.
type wiring struct {
	snapshots    storage.SnapshotStore
	keepers      storage.KeeperStore
	draftResults storage.DraftResultStore
	transactions storage.TransactionStore
	rosters      storage.RosterStore
	corrections  storage.CorrectionStore
	runs         storage.RunStore

	rankCache *rediscache.RankCache
	publisher *s3blob.Writer

	closers []func()
}

func (w *wiring) close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
}

func wire(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*wiring, error) {
	w := &wiring{}
	ok := false
	defer func() {
		if !ok {
			w.close()
		}
	}()

	switch cfg.Sources.Backend {
	case config.BackendPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN, pgstore.WithMaxConns(cfg.Postgres.MaxConns))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		w.closers = append(w.closers, pool.Close)
		if cfg.Postgres.RunMigrations {
			applied, err := migrations.RunPostgresMigrations(ctx, pool)
			if err != nil {
				return nil, err
			}
			logger.Info("postgres migrations applied", zap.Strings("versions", applied))
		}
		w.snapshots = pgstore.NewSnapshotStore(pool)
		w.keepers = pgstore.NewKeeperStore(pool)
		w.draftResults = pgstore.NewDraftResultStore(pool)
		w.transactions = pgstore.NewTransactionStore(pool)
		w.rosters = pgstore.NewRosterStore(pool)
		w.corrections = pgstore.NewCorrectionStore(pool)

	case config.BackendFile:
		files := jsonfile.New(cfg.Sources.DataDir)
		w.snapshots, w.keepers, w.draftResults, w.transactions, w.rosters = files, files, files, files, files

	case config.BackendMemory:
		// Dry run: inputs come from data_dir, every write stays in memory.
		files := jsonfile.New(cfg.Sources.DataDir)
		snaps := memory.NewSnapshotStore()
		board, err := files.Get(ctx, cfg.Season, storage.SnapshotPersisted)
		switch {
		case err == nil:
			if err := snaps.Put(ctx, cfg.Season, storage.SnapshotPersisted, board); err != nil {
				return nil, err
			}
		case !errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("read persisted board: %w", err)
		}
		w.snapshots = snaps
		w.keepers, w.draftResults, w.transactions, w.rosters = files, files, files, files
		w.corrections = memory.NewCorrectionStore()
		w.runs = memory.NewRunStore()

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Sources.Backend)
	}

	if cfg.ClickHouse.Enabled {
		conn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickHouse.DSN)
		if err != nil {
			return nil, fmt.Errorf("prepare clickhouse: %w", err)
		}
		w.closers = append(w.closers, func() { _ = conn.Close() })
		w.runs = chstore.NewRunStore(conn)
	}

	if cfg.Redis.Enabled {
		client, err := rediscache.New(ctx, rediscache.ClientConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// The cache is an optimisation; the CSV is still read.
			logger.Warn("redis unavailable, rank cache disabled", zap.Error(err))
		} else {
			w.closers = append(w.closers, func() { _ = client.Close() })
			w.rankCache = rediscache.NewRankCache(client, cfg.RankTTL())
		}
	}

	if cfg.S3.Enabled {
		client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("create s3 client: %w", err)
		}
		w.publisher = s3blob.NewWriter(client, cfg.S3.Prefix)
	}

	ok = true
	return w, nil
}
