// Package trees extracts Newick tree descriptions from the tab-delimited
// tree table the simulator writes alongside its alignments.
package trees

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// minFields is the field count a trees.txt row must exceed before its last
// field is considered a tree description.
const minFields = 7

// Extract scans the tab-delimited table at inPath and writes every trailing
// field that looks like a Newick description to outPath, one per line,
// returning how many were extracted.
//
// "Looks like" is a substring heuristic, not a parse: the row must have
// more than seven tab-separated fields and the last one must contain both
// "(" and ");". A malformed table simply yields fewer trees.
func Extract(inPath, outPath string) (int, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, fmt.Errorf("open tree table: %w", err)
	}
	defer in.Close()

	var newicks []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		parts := strings.Split(strings.TrimSpace(sc.Text()), "\t")
		if len(parts) <= minFields {
			continue
		}
		last := parts[len(parts)-1]
		if strings.Contains(last, "(") && strings.Contains(last, ");") {
			newicks = append(newicks, last)
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read tree table: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create tree file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, tree := range newicks {
		fmt.Fprintln(w, tree)
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("write tree file: %w", err)
	}

	return len(newicks), nil
}
