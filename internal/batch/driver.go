package batch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/rmcateer/simbatch/internal/align"
	"github.com/rmcateer/simbatch/internal/artifact"
	"github.com/rmcateer/simbatch/internal/control"
	"github.com/rmcateer/simbatch/internal/history"
	"github.com/rmcateer/simbatch/internal/trees"
)

// Invoker launches the external simulator for one named run.
// Satisfied by *sim.Invoker; tests substitute their own.
type Invoker interface {
	Run(ctx context.Context, name string) error
}

// Driver executes run configurations strictly sequentially.
type Driver struct {
	// WorkDir is where control files are written, the simulator runs,
	// and artifacts are collected. Empty means the current directory.
	WorkDir string

	Invoker Invoker

	// History, when non-nil, receives one record per finished run.
	History *history.Store

	Logger *slog.Logger
}

// RunResult is the outcome of one run's pipeline.
type RunResult struct {
	Config     RunConfig   `json:"config"`
	Stats      align.Stats `json:"stats"`
	TreeCount  int         `json:"tree_count"`
	ResultsDir string      `json:"results_dir,omitempty"`
	Started    time.Time   `json:"started"`
	Finished   time.Time   `json:"finished"`
	Err        error       `json:"-"`

	// Error mirrors Err for JSON output.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the run's pipeline was halted by an error.
func (r RunResult) Failed() bool {
	return r.Err != nil
}

// Execute runs the full pipeline for each configuration in order:
// emit control file, invoke simulator, analyze alignment, write partition
// file, extract trees, move artifacts.
//
// An error in one run halts that run only; the batch always continues to
// the next configuration. Per-run errors are captured in the results, and
// ctx cancellation stops the batch between runs.
func (d *Driver) Execute(ctx context.Context, runs []RunConfig) []RunResult {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	token := uuid.NewString()
	logger.Info("batch starting", "batch", token, "runs", len(runs))

	results := make([]RunResult, 0, len(runs))
	for _, cfg := range runs {
		if ctx.Err() != nil {
			logger.Warn("batch cancelled", "batch", token, "completed", len(results))
			break
		}

		runLogger := logger.With("batch", token, "run", cfg.Name)
		result := d.executeRun(ctx, cfg, runLogger)
		if result.Failed() {
			result.Error = result.Err.Error()
			runLogger.Error("run failed", "error", result.Err)
		} else {
			runLogger.Info("run finished",
				"patterns", result.Stats.Patterns,
				"sequences", result.Stats.Sequences,
				"trees", result.TreeCount)
		}

		d.record(ctx, token, result, runLogger)
		results = append(results, result)
	}

	logger.Info("batch finished", "batch", token, "runs", len(results))
	return results
}

// executeRun walks one configuration through the pipeline. The first error
// stops the remaining steps for this run.
func (d *Driver) executeRun(ctx context.Context, cfg RunConfig, logger *slog.Logger) (result RunResult) {
	result = RunResult{Config: cfg, Started: time.Now()}
	defer func() { result.Finished = time.Now() }()

	logger.Info("run starting", "sites", cfg.Sites, "taxa", cfg.Taxa, "partitions", cfg.Partitions)
	if cfg.Sites%cfg.Partitions != 0 {
		logger.Warn("sites do not divide evenly; remainder sites are dropped from the plan",
			"remainder", cfg.Sites%cfg.Partitions)
	}

	if err := control.Emit(d.WorkDir, cfg.Sites, cfg.Taxa, cfg.Partitions, cfg.Name); err != nil {
		result.Err = err
		return result
	}

	if err := d.invoke(ctx, cfg); err != nil {
		result.Err = err
		return result
	}

	stats, err := align.AnalyzeFile(
		filepath.Join(d.WorkDir, control.AlignmentFileName(cfg.Name)),
		align.FormatPhylip,
		logger,
	)
	if err != nil {
		result.Err = err
		return result
	}
	result.Stats = stats

	partPath := filepath.Join(d.WorkDir, control.PartitionFileName(cfg.Name))
	if err := control.WritePartitionFile(partPath, cfg.Sites, cfg.Partitions); err != nil {
		result.Err = err
		return result
	}

	n, err := trees.Extract(
		filepath.Join(d.WorkDir, control.TreeLogFileName),
		filepath.Join(d.WorkDir, control.NewickFileName),
	)
	if err != nil {
		result.Err = err
		return result
	}
	result.TreeCount = n

	folder, err := artifact.Move(d.WorkDir, cfg.Name)
	if err != nil {
		result.Err = err
		return result
	}
	result.ResultsDir = folder

	return result
}

// invoke runs the simulator under the configured per-run timeout.
func (d *Driver) invoke(ctx context.Context, cfg RunConfig) error {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return d.Invoker.Run(ctx, cfg.Name)
}

// record writes the run to the history store when one is configured.
// History is auxiliary: a write failure is logged, never fatal.
func (d *Driver) record(ctx context.Context, token string, result RunResult, logger *slog.Logger) {
	if d.History == nil {
		return
	}

	run := history.Run{
		BatchToken: token,
		Name:       result.Config.Name,
		Sites:      result.Config.Sites,
		Taxa:       result.Config.Taxa,
		Partitions: result.Config.Partitions,
		Patterns:   result.Stats.Patterns,
		Sequences:  result.Stats.Sequences,
		TreeCount:  result.TreeCount,
		Status:     history.StatusOK,
		ResultsDir: result.ResultsDir,
		StartedAt:  result.Started,
		FinishedAt: result.Finished,
	}
	if result.Failed() {
		run.Status = history.StatusFailed
		run.Error = result.Err.Error()
	}

	if err := d.History.Record(ctx, run); err != nil {
		logger.Warn("could not record run history", "error", err)
	}
}
