package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rmcateer/simbatch/internal/align"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	AlignmentFormat string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <alignment>",
		Short: "Compute pattern and sequence counts for an alignment file",
		Long: `Analyze an existing alignment file without running a simulation.

Reports the number of distinct site patterns (column tuples) and distinct
full sequences. An empty or length-inconsistent alignment reports zeros.

Example:
  simbatch analyze --alignment-format phylip test1_TRUE.phy
  simbatch analyze --alignment-format fasta sim.fa --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AlignmentFormat, "alignment-format", string(align.FormatPhylip), "alignment file format (fasta|phylip)")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	format, err := align.ParseFormat(opts.AlignmentFormat)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid flag", err)
	}

	stats, err := align.AnalyzeFile(path, format, slog.Default())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to analyze alignment", err)
	}

	if done, jsonErr := formatter.JSON(stats); done || jsonErr != nil {
		if jsonErr != nil {
			return WrapExitError(ExitCommandError, "failed to encode result", jsonErr)
		}
		return nil
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(formatter.Writer, "%s: %d site patterns, %d distinct sequences\n", path, stats.Patterns, stats.Sequences)
	return nil
}
