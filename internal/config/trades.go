package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"keeper-ledger/internal/domain"
	"keeper-ledger/internal/league"
)

// ErrInvalidTradeLedger is returned when the trade ledger fails schema validation.
var ErrInvalidTradeLedger = errors.New("invalid trade ledger")

// tradeLedgerFile is the on-disk shape of the trade ledger.
type tradeLedgerFile struct {
	Trades []domain.Trade `yaml:"trades"`
}

// LoadTradeLedger reads a YAML trade ledger and expands ${VAR} references to
// set environment variables. File order is the application order.
func LoadTradeLedger(path string) ([]domain.Trade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trade ledger: %w", err)
	}
	return ParseTradeLedger([]byte(expandEnv(string(data))))
}

// expandEnv substitutes set environment variables and leaves everything else,
// such as "$5 FAAB" or an unset ${VAR}, as written.
func expandEnv(s string) string {
	return os.Expand(s, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if len(name) == 1 && strings.ContainsAny(name, "*#$@!?-0123456789") {
			return "$" + name
		}
		return "${" + name + "}"
	})
}

// ParseTradeLedger decodes and structurally validates a trade ledger.
// Unknown keys are rejected. League-dependent checks live in ValidateTrades.
func ParseTradeLedger(data []byte) ([]domain.Trade, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file tradeLedgerFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse trade ledger yaml: %w", err)
	}

	var errs []string
	seen := make(map[string]struct{}, len(file.Trades))
	for i, t := range file.Trades {
		label := fmt.Sprintf("trade %d", i+1)
		if t.ID != "" {
			label = fmt.Sprintf("trade %s", t.ID)
		}

		if strings.TrimSpace(t.ID) == "" {
			errs = append(errs, label+": id is required")
		} else if _, dup := seen[t.ID]; dup {
			errs = append(errs, label+": duplicate id")
		} else {
			seen[t.ID] = struct{}{}
		}
		if len(t.Moves) == 0 {
			errs = append(errs, label+": at least one move is required")
		}
		if t.Skip && strings.TrimSpace(t.SkipReason) == "" {
			errs = append(errs, label+": skip_reason is required when skip is set")
		}

		for j, m := range t.Moves {
			errs = append(errs, moveProblems(fmt.Sprintf("%s move %d", label, j+1), m)...)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w:\n  - %s", ErrInvalidTradeLedger, strings.Join(errs, "\n  - "))
	}
	return file.Trades, nil
}

func moveProblems(label string, m domain.Move) []string {
	var errs []string
	if !m.Kind.IsValid() {
		errs = append(errs, fmt.Sprintf("%s: unknown kind %q (valid: worst, exact_slot, exact_original_owner)", label, m.Kind))
	}
	if m.Round < 1 {
		errs = append(errs, label+": round must be positive")
	}
	if m.From == "" || m.To == "" {
		errs = append(errs, label+": from and to are required")
	} else if m.From == m.To {
		errs = append(errs, label+": from and to must differ")
	}
	switch m.Kind {
	case domain.MoveExactSlot:
		if m.Slot < 1 {
			errs = append(errs, label+": slot is required for exact_slot")
		}
	case domain.MoveExactOriginalOwner:
		if m.OriginalOwner == "" {
			errs = append(errs, label+": original_owner is required for exact_original_owner")
		}
	}
	return errs
}

// ValidateTrades checks every move against the league: rounds within the
// draft, slots within the league size and managers in the draft order.
func ValidateTrades(trades []domain.Trade, l *league.League) error {
	var errs []string
	for _, t := range trades {
		for j, m := range t.Moves {
			label := fmt.Sprintf("trade %s move %d", t.ID, j+1)
			if m.Round > l.Rounds() {
				errs = append(errs, fmt.Sprintf("%s: round %d outside 1..%d", label, m.Round, l.Rounds()))
			}
			if m.Kind == domain.MoveExactSlot && m.Slot > l.Size() {
				errs = append(errs, fmt.Sprintf("%s: slot %d outside 1..%d", label, m.Slot, l.Size()))
			}
			for _, name := range []string{m.From, m.To, m.OriginalOwner} {
				if name != "" && !l.IsManager(name) {
					errs = append(errs, fmt.Sprintf("%s: unknown manager %q", label, name))
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidTradeLedger, strings.Join(errs, "\n  - "))
	}
	return nil
}
