// Package control renders INDELible control files and the derived partition
// plan for a simulation run.
//
// The control grammar is an external protocol: the block vocabulary, model
// constants, and filenames are reproduced byte-for-byte as the simulator
// expects them, not abstracted. The one piece of arithmetic shared with the
// partition file writer (sites / partitions, integer division) lives in
// PartitionSize so the two can never disagree.
package control

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const banner = "/////////////////////////////////////////////////////////////////////////////////////\n"

// Render produces the full control document for one run.
//
// Per partition there is one [MODEL] block with a deliberately extreme GTR
// parameterization (all exchangeabilities 10.0, equal base frequencies,
// gamma rates 0.0..10.0 over 4 categories, no indels), all sharing a single
// random unrooted tree of taxa tips. Each model covers sites/partitions
// sites; remainder sites are silently dropped from the plan.
func Render(sites, taxa, partitions int, name string) string {
	var b strings.Builder

	b.WriteString(banner)
	b.WriteString("// INDELible V1.03 control file - Auto-generated for Maximum Uniqueness\n")
	fmt.Fprintf(&b, "// Simulating %d taxa, %d sites, %d partitions\n", taxa, sites, partitions)
	b.WriteString(banner)
	b.WriteString("\n")

	b.WriteString("[TYPE] NUCLEOTIDE 1\n\n")

	b.WriteString("[SETTINGS]\n")
	b.WriteString("    [output] PHYLIP\n")
	b.WriteString("    [randomseed] 4321\n\n")

	for i := 1; i <= partitions; i++ {
		fmt.Fprintf(&b, "[MODEL] Model%d\n", i)
		b.WriteString("    [submodel] GTR 10.0 10.0 10.0 10.0 10.0 10.0\n")
		b.WriteString("    [statefreq] 0.25 0.25 0.25 0.25\n")
		b.WriteString("    [rates] 0.0 10.0 4\n")
		b.WriteString("    [insertrate] 0.0\n")
		b.WriteString("    [deleterate] 0.0\n\n")
	}

	b.WriteString("[TREE] SimTree\n")
	fmt.Fprintf(&b, "    [unrooted] %d 10.0 2.0 1.0 2.0\n", taxa)
	b.WriteString("    [treelength] 7.0\n\n")

	b.WriteString("[PARTITIONS] AutoPartition\n")
	size := PartitionSize(sites, partitions)
	for i := 1; i <= partitions; i++ {
		fmt.Fprintf(&b, "    [SimTree Model%d %d]\n", i, size)
	}
	b.WriteString("\n")

	b.WriteString("[EVOLVE]\n")
	fmt.Fprintf(&b, "    AutoPartition 1 %s\n", name)

	return b.String()
}

// Emit writes the rendered control document to ControlFileName under dir.
func Emit(dir string, sites, taxa, partitions int, name string) error {
	path := filepath.Join(dir, ControlFileName)
	if err := os.WriteFile(path, []byte(Render(sites, taxa, partitions, name)), 0644); err != nil {
		return fmt.Errorf("write control file: %w", err)
	}
	return nil
}
