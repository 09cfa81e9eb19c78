// Package align parses simulator alignment output and computes summary
// statistics over it.
//
// Two on-disk formats are supported, FASTA and the sequential PHYLIP
// variant INDELible writes. Both normalize to the same ordered list of
// equal-length sequences, so the analysis is format-agnostic: transpose the
// alignment into columns and count distinct column patterns and distinct
// full sequences.
//
// Malformed input degrades rather than fails: an alignment with zero
// records, or with records of differing lengths, yields zero statistics and
// a diagnostic. Only I/O failures surface as errors.
package align

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Format identifies an alignment file format.
type Format string

const (
	// FormatFasta is the ">"-header record format.
	FormatFasta Format = "fasta"

	// FormatPhylip is the sequential PHYLIP table INDELible emits:
	// a count header line, then one name/sequence row per taxon.
	FormatPhylip Format = "phylip"
)

// ParseFormat converts a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatFasta:
		return FormatFasta, nil
	case FormatPhylip:
		return FormatPhylip, nil
	}
	return "", fmt.Errorf("unknown alignment format %q: must be %q or %q", s, FormatFasta, FormatPhylip)
}

// Stats summarizes one alignment.
type Stats struct {
	// Patterns is the number of distinct column patterns, where a column
	// pattern is the tuple of symbols at one site across all sequences.
	Patterns int `json:"patterns"`

	// Sequences is the number of distinct full-length sequences.
	Sequences int `json:"sequences"`
}

// AnalyzeFile parses path in the given format and computes its Stats.
// The returned error covers open/read failures only; empty or
// length-inconsistent alignments are reported through logger and produce
// zero Stats.
func AnalyzeFile(path string, format Format, logger *slog.Logger) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open alignment: %w", err)
	}
	defer f.Close()

	var seqs []string
	switch format {
	case FormatPhylip:
		seqs, err = readPhylip(f)
	default:
		seqs, err = readFasta(f)
	}
	if err != nil {
		return Stats{}, fmt.Errorf("read alignment: %w", err)
	}

	return Analyze(seqs, logger), nil
}

// Analyze computes Stats over an already-parsed alignment.
func Analyze(seqs []string, logger *slog.Logger) Stats {
	if logger == nil {
		logger = slog.Default()
	}

	if len(seqs) == 0 {
		logger.Warn("no sequences found in alignment")
		return Stats{}
	}

	width := len(seqs[0])
	for _, s := range seqs {
		if len(s) != width {
			logger.Warn("sequences have different lengths", "got", len(s), "want", width)
			return Stats{}
		}
	}

	// Transpose into columns and count distinct column tuples. A column
	// pattern is the string of symbols at one site, top to bottom.
	patterns := make(map[string]struct{})
	col := make([]byte, len(seqs))
	for i := 0; i < width; i++ {
		for j, s := range seqs {
			col[j] = s[i]
		}
		patterns[string(col)] = struct{}{}
	}

	distinct := make(map[string]struct{}, len(seqs))
	for _, s := range seqs {
		distinct[s] = struct{}{}
	}

	return Stats{Patterns: len(patterns), Sequences: len(distinct)}
}
