package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/history"
	"keeper-ledger/internal/rank"
	"keeper-ledger/internal/storage"
)

// inputs is everything the core needs, fully materialised before it runs.
type inputs struct {
	persisted *domain.LedgerSnapshot // nil when no board is stored

	keepers     []domain.KeeperRecord
	draft       domain.DraftResults
	txns        []domain.TransactionEvent
	prevDraft   domain.DraftResults
	prevRosters domain.Rosters
	ranks       *rank.Table
}

// load fetches every source concurrently. Missing optional sources load as
// empty and are logged; any other error cancels the rest.
func (o *Orchestrator) load(ctx context.Context, log *zap.Logger) (*inputs, error) {
	in := &inputs{}
	g, gctx := errgroup.WithContext(ctx)
	season, prev := o.opts.Season, o.opts.PreviousSeason

	if o.runsBoard() {
		g.Go(func() error {
			snap, err := o.opts.Snapshots.Get(gctx, season, storage.SnapshotPersisted)
			if errors.Is(err, storage.ErrNotFound) {
				log.Warn("no persisted draft board, every pick will be reported")
				return nil
			}
			if err != nil {
				return fmt.Errorf("load persisted board: %w", err)
			}
			in.persisted = snap
			return nil
		})
	}

	if o.runsKeepers() {
		g.Go(func() error {
			records, err := o.opts.Keepers.GetKeepers(gctx, season)
			if err != nil {
				return fmt.Errorf("load keepers: %w", err)
			}
			in.keepers = records
			return nil
		})
		g.Go(func() error {
			draft, err := optional[domain.DraftResults](log, "draft results", season)(o.opts.DraftResults.GetDraftResults(gctx, season))
			in.draft = draft
			return err
		})
		g.Go(func() error {
			txns, err := o.opts.Transactions.GetTransactions(gctx, season)
			if err != nil {
				return fmt.Errorf("load transactions: %w", err)
			}
			history.SortTransactions(txns)
			in.txns = txns
			return nil
		})
		g.Go(func() error {
			draft, err := optional[domain.DraftResults](log, "draft results", prev)(o.opts.DraftResults.GetDraftResults(gctx, prev))
			in.prevDraft = draft
			return err
		})
		g.Go(func() error {
			rosters, err := optional[domain.Rosters](log, "end-of-season rosters", prev)(o.opts.Rosters.GetEndOfSeason(gctx, prev))
			in.prevRosters = rosters
			return err
		})
		g.Go(func() error {
			table, err := o.loadRanks(gctx, log)
			in.ranks = table
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// optional turns ErrNotFound into an empty value.
func optional[T any](log *zap.Logger, what string, season int) func(T, error) (T, error) {
	return func(v T, err error) (T, error) {
		var zero T
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("source missing, treating as empty", zap.String("source", what), zap.Int("source_season", season))
			return zero, nil
		}
		if err != nil {
			return zero, fmt.Errorf("load %s for %d: %w", what, season, err)
		}
		return v, nil
	}
}

// loadRanks returns the cached table when present, else parses RankCSV and
// fills the cache. No CSV and no cache entry gives an empty table, so every
// lookup falls through to the secondary rank.
func (o *Orchestrator) loadRanks(ctx context.Context, log *zap.Logger) (*rank.Table, error) {
	season := o.opts.Season
	if o.opts.RankCache != nil {
		table, err := o.opts.RankCache.Get(ctx, season)
		if err == nil {
			log.Debug("rank table from cache", zap.Int("entries", table.Len()))
			return table, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("rank cache unavailable", zap.Error(err))
		}
	}

	if o.opts.RankCSV == "" {
		log.Warn("no rank table configured")
		return rank.NewTable(nil), nil
	}

	table, err := rank.LoadCSVFile(o.opts.RankCSV)
	if err != nil {
		return nil, fmt.Errorf("load rank csv: %w", err)
	}
	log.Info("rank table loaded", zap.String("path", o.opts.RankCSV), zap.Int("entries", table.Len()))

	if o.opts.RankCache != nil {
		if err := o.opts.RankCache.Set(ctx, season, table); err != nil {
			log.Warn("rank cache write failed", zap.Error(err))
		}
	}
	return table, nil
}
