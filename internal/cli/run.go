package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rmcateer/simbatch/internal/batch"
	"github.com/rmcateer/simbatch/internal/history"
	"github.com/rmcateer/simbatch/internal/sim"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	WorkDir  string
	Binary   string
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <batch.yaml>",
		Short: "Execute a batch of simulation runs",
		Long: `Execute every run in a batch definition, strictly in order.

Each run writes the simulator control file, launches the binary, analyzes
the alignment it produced, writes the partition file, extracts Newick
trees, and moves the run's artifacts into <name>_results/. A failed run is
reported and the batch continues with the next one.

Example:
  simbatch run batch.yaml
  simbatch run --workdir /data/sims --binary ./indelible --db runs.db batch.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.WorkDir, "workdir", "", "directory to run simulations in (default: current directory)")
	cmd.Flags().StringVar(&opts.Binary, "binary", sim.DefaultBinary, "path to the simulator binary")
	cmd.Flags().StringVar(&opts.Database, "db", "", "optional SQLite database recording run history")

	return cmd
}

func runBatch(opts *RunOptions, batchPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	def, err := batch.Load(batchPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load batch definition", err)
	}
	formatter.VerboseLog("Loaded %d run(s) from %s", len(def.Runs), batchPath)

	if errs := batch.ValidateSchema(def); len(errs) > 0 {
		return WrapExitError(ExitCommandError, "batch definition does not conform to schema", errs[0])
	}

	var store *history.Store
	if opts.Database != "" {
		store, err = history.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open history database", err)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Error("error closing history database", "error", closeErr)
			}
		}()
	}

	driver := &batch.Driver{
		WorkDir: opts.WorkDir,
		Invoker: &sim.Invoker{Binary: opts.Binary, WorkDir: opts.WorkDir},
		History: store,
	}

	// A hung simulator otherwise hangs the batch forever; Ctrl-C stops
	// cleanly between runs and kills the subprocess of the current one.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := driver.Execute(ctx, def.Runs)

	if done, err := formatter.JSON(results); done || err != nil {
		return exitForResults(results, err)
	}

	printSummary(formatter, results)
	return exitForResults(results, nil)
}

// printSummary writes the human-readable per-run report. Large counts get
// digit grouping: batches simulate alignments of millions of sites.
func printSummary(f *OutputFormatter, results []batch.RunResult) {
	p := message.NewPrinter(language.English)
	for _, r := range results {
		if r.Failed() {
			p.Fprintf(f.Writer, "Run %s: FAILED (%v)\n", r.Config.Name, r.Err)
			continue
		}
		p.Fprintf(f.Writer, "Run %s: %d site patterns, %d distinct sequences, %d trees -> %s\n",
			r.Config.Name, r.Stats.Patterns, r.Stats.Sequences, r.TreeCount, r.ResultsDir)
	}
}

func exitForResults(results []batch.RunResult, jsonErr error) error {
	if jsonErr != nil {
		return WrapExitError(ExitCommandError, "failed to encode results", jsonErr)
	}
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d run(s) failed", failed, len(results)))
	}
	return nil
}
