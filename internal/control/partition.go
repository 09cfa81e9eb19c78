package control

import (
	"fmt"
	"os"
	"strings"
)

// Span is a 1-based inclusive site range covered by one partition.
type Span struct {
	Start int
	End   int
}

// PartitionSize returns the number of sites each partition covers.
// Integer division: when sites does not divide evenly, the remainder is
// dropped rather than redistributed. Both the control file and the
// partition file must use this value.
func PartitionSize(sites, partitions int) int {
	return sites / partitions
}

// Plan returns the contiguous, non-overlapping site ranges for each
// partition, in order. For sites=300, partitions=3 the plan is
// 1-100, 101-200, 201-300.
func Plan(sites, partitions int) []Span {
	size := PartitionSize(sites, partitions)
	spans := make([]Span, 0, partitions)
	for i := 1; i <= partitions; i++ {
		start := (i-1)*size + 1
		spans = append(spans, Span{Start: start, End: start + size - 1})
	}
	return spans
}

// WritePartitionFile writes the RAxML-style partition file, one line per
// partition in the form "DNA, part<i> = <start>-<end>".
func WritePartitionFile(path string, sites, partitions int) error {
	var b strings.Builder
	for i, span := range Plan(sites, partitions) {
		fmt.Fprintf(&b, "DNA, part%d = %d-%d\n", i+1, span.Start, span.End)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write partition file: %w", err)
	}
	return nil
}
