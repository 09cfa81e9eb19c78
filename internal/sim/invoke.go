// Package sim invokes the external INDELible binary for one run.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rmcateer/simbatch/internal/control"
)

// DefaultBinary is where the simulator is expected when no path is given.
const DefaultBinary = "./indelible"

// Invoker runs the simulator binary in a working directory. The binary
// takes no arguments; it reads control.txt from that directory on its own.
type Invoker struct {
	// Binary is the simulator executable path. Relative paths are
	// resolved against WorkDir, matching how the binary is shipped next
	// to its control file.
	Binary string

	// WorkDir is the directory the simulator runs in. Empty means the
	// current directory.
	WorkDir string

	Logger *slog.Logger
}

// Run launches the simulator for the named run, capturing combined
// stdout/stderr into <name>.log in the working directory, and blocks until
// it exits or ctx is done.
//
// A non-zero exit status is NOT an error: the binary's correctness is out
// of scope, and a failed simulation surfaces downstream as a missing or
// malformed alignment. Callers that need to know whether simulation
// succeeded must check the alignment file, not this return value. Errors
// are limited to the log file being unwritable, the binary failing to
// start, and ctx cancellation.
func (iv *Invoker) Run(ctx context.Context, name string) error {
	logger := iv.Logger
	if logger == nil {
		logger = slog.Default()
	}

	binary := iv.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	// exec resolves relative paths against the process cwd, not cmd.Dir,
	// so anchor path-like binaries to the working directory ourselves.
	if iv.WorkDir != "" && !filepath.IsAbs(binary) && strings.ContainsRune(binary, '/') {
		binary = filepath.Join(iv.WorkDir, binary)
	}

	logPath := filepath.Join(iv.WorkDir, control.LogFileName(name))
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("create simulator log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.CommandContext(ctx, binary)
	cmd.Dir = iv.WorkDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	logger.Debug("starting simulator", "binary", binary, "run", name, "log", logPath)
	err = cmd.Run()

	// Cancellation wins over whatever exit state the kill produced.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("simulator interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug("simulator exited non-zero", "run", name, "code", exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return fmt.Errorf("start simulator %s: %w", binary, err)
	}

	logger.Debug("simulator finished", "run", name)
	return nil
}
