package align

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// readFasta collects the sequences of a FASTA stream in record order.
// Sequence lines between headers are concatenated; identifiers are not
// needed by the analysis and are discarded.
func readFasta(r io.Reader) ([]string, error) {
	var (
		seqs []string
		cur  strings.Builder
		open bool
	)

	flush := func() {
		if open {
			seqs = append(seqs, cur.String())
			cur.Reset()
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			open = true
			continue
		}
		if open {
			cur.WriteString(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	return seqs, nil
}

// readPhylip collects the sequences of a sequential PHYLIP stream.
// The leading header line carries the taxon and site counts; each following
// non-blank line is one record with a name field and the sequence in the
// remaining whitespace-separated fields.
func readPhylip(r io.Reader) ([]string, error) {
	var seqs []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	first := true
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		// Skip the "<ntaxa> <nsites>" header if present.
		if first {
			first = false
			if len(fields) == 2 && isInt(fields[0]) && isInt(fields[1]) {
				continue
			}
		}

		if len(fields) < 2 {
			continue
		}
		seqs = append(seqs, strings.Join(fields[1:], ""))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return seqs, nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
