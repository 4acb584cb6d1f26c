// Package rank loads consensus player rankings and resolves player names
// against them.
package rank

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds a player name to its lookup key: accents stripped,
// lowercase, periods removed, whitespace collapsed. "José Ramírez Jr." and
// "jose ramirez jr" normalise identically.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.ReplaceAll(folded, ".", "")
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// abbreviate turns "shohei ohtani" into "s ohtani". Single-token names are
// returned unchanged.
func abbreviate(normalized string) string {
	parts := strings.Fields(normalized)
	if len(parts) < 2 {
		return normalized
	}
	first := []rune(parts[0])
	return string(first[0]) + " " + strings.Join(parts[1:], " ")
}

func lastName(normalized string) string {
	parts := strings.Fields(normalized)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
