package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmcateer/simbatch/internal/batch"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                    `json:"valid"`
	Errors []batch.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <batch.yaml>",
		Short: "Validate a batch definition without running it",
		Long: `Check a batch definition against the batch schema.

Catches malformed YAML, unknown fields, out-of-range parameters, and
duplicate run names before any simulation is launched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, batchPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	def, err := batch.Load(batchPath)
	if err != nil {
		if outErr := formatter.Error(batch.ErrCodeStructure, err.Error(), nil); outErr != nil {
			return WrapExitError(ExitCommandError, "failed to write output", outErr)
		}
		return NewExitError(ExitFailure, "batch definition is invalid")
	}
	formatter.VerboseLog("Loaded %d run(s) from %s", len(def.Runs), batchPath)

	errs := batch.ValidateSchema(def)
	result := ValidationResult{Valid: len(errs) == 0, Errors: errs}

	if done, jsonErr := formatter.JSON(result); done || jsonErr != nil {
		if jsonErr != nil {
			return WrapExitError(ExitCommandError, "failed to encode result", jsonErr)
		}
		if !result.Valid {
			return NewExitError(ExitFailure, "batch definition is invalid")
		}
		return nil
	}

	if !result.Valid {
		for _, e := range errs {
			fmt.Fprintf(formatter.Writer, "%s\n", e.Error())
		}
		return NewExitError(ExitFailure, "batch definition is invalid")
	}

	fmt.Fprintf(formatter.Writer, "%s: %d run(s), OK\n", batchPath, len(def.Runs))
	return nil
}
