package batch

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// RunConfig is one simulation run definition. It is constructed by the
// caller (normally from a batch definition file) and read-only thereafter.
type RunConfig struct {
	// Name keys every per-run artifact (alignment, log, partition file,
	// results folder). Must be unique within a batch.
	Name string `yaml:"name" json:"name"`

	// Sites is the total alignment length to simulate.
	Sites int `yaml:"sites" json:"sites"`

	// Taxa is the number of tips on the simulated tree.
	Taxa int `yaml:"taxa" json:"taxa"`

	// Partitions is the number of contiguous site blocks, each with its
	// own substitution model. In practice it should divide Sites evenly;
	// when it does not, the remainder sites are dropped from the plan.
	Partitions int `yaml:"partitions" json:"partitions"`

	// Timeout bounds the simulator subprocess, e.g. "10m". Empty or "0"
	// waits forever, which matches the historical behavior.
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Definition is a batch of runs, executed in order.
type Definition struct {
	Runs []RunConfig `yaml:"runs" json:"runs"`
}

// Run names become filenames; keep them to characters that are safe on
// every filesystem and unambiguous in the control file.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Validate checks a single run configuration.
func (c RunConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !nameRe.MatchString(c.Name) {
		return fmt.Errorf("name %q may only contain letters, digits, '.', '_' and '-'", c.Name)
	}
	if c.Sites <= 0 {
		return fmt.Errorf("sites must be positive, got %d", c.Sites)
	}
	if c.Taxa <= 0 {
		return fmt.Errorf("taxa must be positive, got %d", c.Taxa)
	}
	if c.Partitions <= 0 {
		return fmt.Errorf("partitions must be positive, got %d", c.Partitions)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses the Timeout field. Zero means no timeout.
func (c RunConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout %q must not be negative", c.Timeout)
	}
	return d, nil
}

// Validate checks the whole definition: each run individually, plus name
// uniqueness across runs (names key artifacts and results folders).
func (d *Definition) Validate() error {
	if len(d.Runs) == 0 {
		return fmt.Errorf("runs list is required and must be non-empty")
	}

	seen := make(map[string]struct{}, len(d.Runs))
	for i, run := range d.Runs {
		if err := run.Validate(); err != nil {
			return fmt.Errorf("runs[%d]: %w", i, err)
		}
		if _, dup := seen[run.Name]; dup {
			return fmt.Errorf("runs[%d]: duplicate run name %q", i, run.Name)
		}
		seen[run.Name] = struct{}{}
	}
	return nil
}

// Load reads and parses a batch definition YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently defaulting.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch definition: %w", err)
	}

	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("parse batch definition: %w", err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch definition: %w", err)
	}

	return &def, nil
}
