package control

import "fmt"

// Well-known filenames for one simulation run. INDELible reads the control
// file by its fixed name and writes trees.txt as a side effect of its own
// contract; everything else is keyed by the run name.
const (
	// ControlFileName is fixed by the external binary, NOT keyed by run
	// name. Sequential execution is what keeps overlapping runs from
	// clobbering it; any concurrent driver must first key this per run.
	ControlFileName = "control.txt"

	// TreeLogFileName is the tab-delimited tree table INDELible emits.
	TreeLogFileName = "trees.txt"

	// NewickFileName is where extracted Newick descriptions are collected.
	NewickFileName = "newick_trees.txt"
)

// AlignmentFileName returns the true-alignment PHYLIP file for a run.
func AlignmentFileName(name string) string {
	return fmt.Sprintf("%s_TRUE.phy", name)
}

// PartitionFileName returns the RAxML-style partition file for a run.
func PartitionFileName(name string) string {
	return fmt.Sprintf("%s_partitions.txt", name)
}

// LogFileName returns the captured simulator output log for a run.
func LogFileName(name string) string {
	return fmt.Sprintf("%s.log", name)
}
