package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRun() RunConfig {
	return RunConfig{Name: "test1", Sites: 300, Taxa: 5, Partitions: 3}
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr string
	}{
		{"valid", func(c *RunConfig) {}, ""},
		{"missing name", func(c *RunConfig) { c.Name = "" }, "name is required"},
		{"unsafe name", func(c *RunConfig) { c.Name = "a/b" }, "may only contain"},
		{"zero sites", func(c *RunConfig) { c.Sites = 0 }, "sites must be positive"},
		{"negative taxa", func(c *RunConfig) { c.Taxa = -1 }, "taxa must be positive"},
		{"zero partitions", func(c *RunConfig) { c.Partitions = 0 }, "partitions must be positive"},
		{"bad timeout", func(c *RunConfig) { c.Timeout = "fast" }, "timeout"},
		{"negative timeout", func(c *RunConfig) { c.Timeout = "-5s" }, "must not be negative"},
		{"valid timeout", func(c *RunConfig) { c.Timeout = "10m" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validRun()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRunConfig_TimeoutDuration(t *testing.T) {
	cfg := validRun()
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d, "empty timeout means wait forever")

	cfg.Timeout = "90s"
	d, err = cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestDefinition_Validate_DuplicateNames(t *testing.T) {
	def := &Definition{Runs: []RunConfig{validRun(), validRun()}}
	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate run name")
}

func TestDefinition_Validate_Empty(t *testing.T) {
	err := (&Definition{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-empty")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := `
runs:
  - name: test1
    sites: 50
    taxa: 5
    partitions: 1
  - name: test2
    sites: 300000
    taxa: 200
    partitions: 3
    timeout: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	def, err := Load(path)
	require.NoError(t, err)
	require.Len(t, def.Runs, 2)
	assert.Equal(t, RunConfig{Name: "test1", Sites: 50, Taxa: 5, Partitions: 1}, def.Runs[0])
	assert.Equal(t, "30m", def.Runs[1].Timeout)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := "runs:\n  - name: test1\n    sites: 50\n    taxa: 5\n    partitons: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err, "typoed field names must fail loudly")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidDefinition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runs:\n  - name: test1\n    sites: -5\n    taxa: 5\n    partitions: 1\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sites must be positive")
}
