package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmcateer/simbatch/internal/control"
	"github.com/rmcateer/simbatch/internal/trees"
)

// TreesOptions holds flags for the trees command.
type TreesOptions struct {
	*RootOptions
	Output string
}

// treesResult is the JSON payload of the trees command.
type treesResult struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Extracted int    `json:"extracted"`
}

// NewTreesCommand creates the trees command.
func NewTreesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trees <trees.txt>",
		Short: "Extract Newick trees from a simulator tree table",
		Long: `Scan the simulator's tab-delimited tree table and collect the trailing
fields that look like Newick descriptions, one per output line. This is a
best-effort textual extraction; malformed rows are skipped silently.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrees(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", control.NewickFileName, "file to write extracted trees to")

	return cmd
}

func runTrees(opts *TreesOptions, inPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	n, err := trees.Extract(inPath, opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to extract trees", err)
	}

	result := treesResult{Input: inPath, Output: opts.Output, Extracted: n}
	if done, jsonErr := formatter.JSON(result); done || jsonErr != nil {
		if jsonErr != nil {
			return WrapExitError(ExitCommandError, "failed to encode result", jsonErr)
		}
		return nil
	}

	fmt.Fprintf(formatter.Writer, "Extracted %d tree(s) from %s to %s\n", n, inPath, opts.Output)
	return nil
}
