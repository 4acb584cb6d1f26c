// Package orchestrator runs a reconciliation end to end.
// It coordinates: load inputs → replay trades → compare board → price keepers → audit → persist → publish
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/ledger"
	"keeper-ledger/internal/league"
	"keeper-ledger/internal/observability"
	"keeper-ledger/internal/rank"
	"keeper-ledger/internal/replay"
	"keeper-ledger/internal/reporting"
	"keeper-ledger/internal/storage"
	"keeper-ledger/internal/verification"
)

// Run modes.
const (
	ModeBoard   = "board"
	ModeKeepers = "keepers"
	ModeAll     = "all"
)

// RankCache caches a season's parsed rank table.
type RankCache interface {
	Get(ctx context.Context, season int) (*rank.Table, error)
	Set(ctx context.Context, season int, table *rank.Table) error
}

// Publisher uploads a rendered report.
type Publisher interface {
	PutBytes(ctx context.Context, name string, data []byte, contentType string) error
}

// Options for creating Orchestrator.
type Options struct {
	League         *league.League
	Season         int
	PreviousSeason int // season whose draft and rosters define continuing keepers
	Mode           string
	Trades         []domain.Trade

	// Required sources
	Snapshots    storage.SnapshotStore
	Keepers      storage.KeeperStore
	DraftResults storage.DraftResultStore
	Transactions storage.TransactionStore
	Rosters      storage.RosterStore

	// Rank data: the cache is consulted first, then RankCSV is parsed.
	RankCSV   string
	RankCache RankCache

	// Optional sinks
	Corrections storage.CorrectionStore
	Runs        storage.RunStore
	OutputDir   string
	Formats     []string
	Publisher   Publisher

	Metrics *observability.Metrics
	Logger  *zap.Logger

	Clock func() time.Time
	NewID func() string
}

// Orchestrator coordinates one reconciliation run.
type Orchestrator struct {
	opts   Options
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a new Orchestrator. Mode defaults to ModeAll.
func New(opts Options) *Orchestrator {
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	if opts.PreviousSeason == 0 {
		opts.PreviousSeason = opts.Season - 1
	}
	o := &Orchestrator{
		opts:   opts,
		logger: opts.Logger,
		now:    opts.Clock,
		newID:  opts.NewID,
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = func() time.Time { return time.Now().UTC() }
	}
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	return o
}

// Result contains the outputs of a run.
type Result struct {
	RunID         string
	Summary       domain.RunSummary
	Ledger        *ledger.Ledger
	Replay        *replay.Result
	Discrepancies []domain.Discrepancy
	Keepers       *verification.KeeperReport
	Report        *reporting.Report
	Outputs       []string // files written and objects uploaded
}

func (o *Orchestrator) runsBoard() bool   { return o.opts.Mode == ModeBoard || o.opts.Mode == ModeAll }
func (o *Orchestrator) runsKeepers() bool { return o.opts.Mode == ModeKeepers || o.opts.Mode == ModeAll }

func (o *Orchestrator) validate() error {
	var errs []error
	if o.opts.League == nil {
		errs = append(errs, errors.New("league is required"))
	}
	switch o.opts.Mode {
	case ModeBoard, ModeKeepers, ModeAll:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", o.opts.Mode))
	}
	if o.runsBoard() && o.opts.Snapshots == nil {
		errs = append(errs, errors.New("snapshot store is required for board mode"))
	}
	if o.runsKeepers() {
		if o.opts.Keepers == nil || o.opts.DraftResults == nil || o.opts.Transactions == nil || o.opts.Rosters == nil {
			errs = append(errs, errors.New("keeper, draft result, transaction and roster stores are required for keeper mode"))
		}
	}
	return errors.Join(errs...)
}

// Run executes the reconciliation.
// Phases:
//  1. Load every input in parallel
//  2. Replay trades onto a fresh ledger and compare it with the persisted board
//  3. Price every keeper record and audit against persisted costs
//  4. Persist the verified board, corrections and run audit
//  5. Render and publish reports, push metrics
//
// A trade that cannot be applied aborts the run; the failure is still
// recorded in the run audit and metrics.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("invalid orchestrator options: %w", err)
	}

	started := o.now()
	result := &Result{RunID: o.newID()}
	result.Summary = domain.RunSummary{
		RunID:     result.RunID,
		Season:    o.opts.Season,
		Mode:      o.opts.Mode,
		StartedAt: started,
	}
	log := o.logger.With(zap.String("run_id", result.RunID), zap.Int("season", o.opts.Season), zap.String("mode", o.opts.Mode))

	err := o.run(ctx, log, result)

	result.Summary.FinishedAt = o.now()
	result.Summary.Status = domain.RunStatusSucceeded
	if err != nil {
		result.Summary.Status = domain.RunStatusFailed
		result.Summary.Error = err.Error()
	}
	o.finish(ctx, log, result)

	if err != nil {
		log.Error("reconciliation failed", zap.Error(err))
		return result, err
	}
	log.Info("reconciliation complete",
		zap.Int("discrepancies", result.Summary.Discrepancies),
		zap.Int("mismatches", result.Summary.Mismatches),
		zap.Duration("elapsed", result.Summary.FinishedAt.Sub(started)),
	)
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, log *zap.Logger, result *Result) error {
	log.Info("Phase 1: loading inputs")
	in, err := o.load(ctx, log)
	if err != nil {
		return fmt.Errorf("phase 1 (load) failed: %w", err)
	}

	if o.runsBoard() {
		log.Info("Phase 2: replaying trades", zap.Int("trades", len(o.opts.Trades)))
		if err := o.reconcileBoard(log, in, result); err != nil {
			return fmt.Errorf("phase 2 (board) failed: %w", err)
		}
	}

	if o.runsKeepers() {
		log.Info("Phase 3: auditing keeper costs", zap.Int("records", len(in.keepers)))
		result.Keepers = o.auditKeepers(log, in)
		result.Summary.KeepersChecked = result.Keepers.Total
		result.Summary.Matches = result.Keepers.Matches
		result.Summary.Mismatches = result.Keepers.Mismatches
		result.Summary.Skipped = result.Keepers.Skipped
	}

	log.Info("Phase 4: persisting results")
	if err := o.persist(ctx, result); err != nil {
		return fmt.Errorf("phase 4 (persist) failed: %w", err)
	}

	log.Info("Phase 5: publishing reports")
	result.Report = o.report(result)
	outputs, err := o.publish(ctx, result.Report, result)
	if err != nil {
		return fmt.Errorf("phase 5 (publish) failed: %w", err)
	}
	result.Outputs = outputs
	return nil
}

// finish records the run audit and metrics. Failures here are logged, not returned.
func (o *Orchestrator) finish(ctx context.Context, log *zap.Logger, result *Result) {
	if o.opts.Runs != nil {
		summary := result.Summary
		if err := o.opts.Runs.InsertRun(ctx, &summary); err != nil {
			log.Warn("record run audit", zap.Error(err))
		} else if err := o.opts.Runs.InsertDiscrepancies(ctx, result.RunID, result.Discrepancies); err != nil {
			log.Warn("record run discrepancies", zap.Error(err))
		}
	}

	m := o.opts.Metrics
	if m == nil {
		return
	}
	s := result.Summary
	m.RecordRun(s.Mode, s.Status, s.FinishedAt.Sub(s.StartedAt).Seconds(), s.FinishedAt.Unix())
	m.TradesApplied.Add(float64(s.TradesApplied))
	m.TradesSkipped.Add(float64(s.TradesSkipped))
	if result.Replay != nil {
		for _, mv := range result.Replay.Applied {
			m.RecordMove(string(mv.Kind))
		}
	}
	m.Discrepancies.Set(float64(s.Discrepancies))
	if result.Keepers != nil {
		for _, r := range result.Keepers.Results {
			m.RecordKeeperOutcome(string(r.Outcome))
		}
		m.Corrections.Set(float64(len(result.Keepers.Corrections)))
	}
}
