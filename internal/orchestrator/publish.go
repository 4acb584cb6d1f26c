package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"keeper-ledger/internal/reporting"
	"keeper-ledger/internal/storage"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// artifact is one rendered output file.
type artifact struct {
	name        string
	contentType string
	data        []byte
}

// persist stores the verified board and proposed corrections. Persisted
// keeper costs are never modified.
func (o *Orchestrator) persist(ctx context.Context, result *Result) error {
	if result.Ledger != nil {
		snap := result.Ledger.Snapshot(o.opts.League.NARounds())
		if err := o.opts.Snapshots.Put(ctx, o.opts.Season, storage.SnapshotVerified, snap); err != nil {
			return fmt.Errorf("store verified board: %w", err)
		}
	}
	if o.opts.Corrections != nil && result.Keepers != nil && len(result.Keepers.Corrections) > 0 {
		if err := o.opts.Corrections.InsertBulk(ctx, result.RunID, o.opts.Season, result.Keepers.Corrections); err != nil {
			return fmt.Errorf("store corrections: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) report(result *Result) *reporting.Report {
	in := reporting.Input{
		RunID:         result.RunID,
		Season:        o.opts.Season,
		Mode:          o.opts.Mode,
		Replay:        result.Replay,
		Fingerprint:   result.Summary.LedgerFingerprint,
		Discrepancies: result.Discrepancies,
		Keepers:       result.Keepers,
	}
	if result.Ledger != nil {
		in.OwnerCounts = result.Ledger.OwnerCounts()
	}
	return reporting.NewGenerator().WithClock(o.now).Generate(in)
}

// render produces one artifact per configured format.
func (o *Orchestrator) render(r *reporting.Report, result *Result) ([]artifact, error) {
	var out []artifact
	for _, format := range o.opts.Formats {
		switch format {
		case FormatMarkdown:
			out = append(out, artifact{"report.md", "text/markdown; charset=utf-8", []byte(reporting.RenderMarkdown(r))})
		case FormatJSON:
			var buf bytes.Buffer
			if err := reporting.WriteJSON(&buf, reporting.ToJSON(r)); err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			out = append(out, artifact{"report.json", "application/json", buf.Bytes()})
		case FormatCSV:
			if r.Board != nil {
				csv, err := reporting.RenderDiscrepanciesCSV(result.Discrepancies)
				if err != nil {
					return nil, fmt.Errorf("render discrepancies csv: %w", err)
				}
				out = append(out, artifact{"discrepancies.csv", "text/csv", []byte(csv)})
			}
			if result.Keepers != nil {
				csv, err := reporting.RenderCorrectionsCSV(result.Keepers.Corrections)
				if err != nil {
					return nil, fmt.Errorf("render corrections csv: %w", err)
				}
				out = append(out, artifact{"corrections.csv", "text/csv", []byte(csv)})
			}
		default:
			return nil, fmt.Errorf("unknown output format %q", format)
		}
	}
	return out, nil
}

// publish writes artifacts under <OutputDir>/<season>/<runID>/ and uploads
// them with the same relative key.
func (o *Orchestrator) publish(ctx context.Context, r *reporting.Report, result *Result) ([]string, error) {
	artifacts, err := o.render(r, result)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, nil
	}

	rel := filepath.Join(strconv.Itoa(o.opts.Season), result.RunID)
	var written []string

	if o.opts.OutputDir != "" {
		dir := filepath.Join(o.opts.OutputDir, rel)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		for _, a := range artifacts {
			path := filepath.Join(dir, a.name)
			if err := os.WriteFile(path, a.data, 0o644); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}

	if o.opts.Publisher != nil {
		for _, a := range artifacts {
			key := filepath.ToSlash(filepath.Join(rel, a.name))
			if err := o.opts.Publisher.PutBytes(ctx, key, a.data, a.contentType); err != nil {
				return written, fmt.Errorf("upload %s: %w", key, err)
			}
			written = append(written, key)
		}
	}
	return written, nil
}
