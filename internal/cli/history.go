package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rmcateer/simbatch/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded by "run --db", most recently finished first.

Example:
  simbatch history --db runs.db --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs to list (0 = all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	store, err := history.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("error closing history database", "error", closeErr)
		}
	}()

	runs, err := store.List(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if done, jsonErr := formatter.JSON(runs); done || jsonErr != nil {
		if jsonErr != nil {
			return WrapExitError(ExitCommandError, "failed to encode runs", jsonErr)
		}
		return nil
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No recorded runs.")
		return nil
	}

	p := message.NewPrinter(language.English)
	for _, run := range runs {
		switch run.Status {
		case history.StatusOK:
			p.Fprintf(formatter.Writer, "%s  %s  sites=%d taxa=%d partitions=%d  patterns=%d sequences=%d trees=%d\n",
				run.FinishedAt.Format("2006-01-02 15:04:05"), run.Name,
				run.Sites, run.Taxa, run.Partitions,
				run.Patterns, run.Sequences, run.TreeCount)
		default:
			p.Fprintf(formatter.Writer, "%s  %s  sites=%d taxa=%d partitions=%d  FAILED: %s\n",
				run.FinishedAt.Format("2006-01-02 15:04:05"), run.Name,
				run.Sites, run.Taxa, run.Partitions, run.Error)
		}
	}
	return nil
}
