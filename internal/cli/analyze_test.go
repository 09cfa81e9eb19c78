package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmcateer/simbatch/internal/align"
)

func TestAnalyze_PhylipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.phy")
	require.NoError(t, os.WriteFile(path, []byte(" 3 4\nt1    ACGT\nt2    ACGA\nt3    ACGT\n"), 0644))

	buf := &bytes.Buffer{}
	cmd := NewAnalyzeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "2 site patterns, 2 distinct sequences")
}

func TestAnalyze_FastaJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.fa")
	require.NoError(t, os.WriteFile(path, []byte(">t1\nACGT\n>t2\nACGA\n"), 0644))

	buf := &bytes.Buffer{}
	cmd := NewAnalyzeCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--alignment-format", "fasta", path})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string      `json:"status"`
		Data   align.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, align.Stats{Patterns: 4, Sequences: 2}, resp.Data)
}

func TestAnalyze_EmptyAlignmentReportsZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.phy")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	buf := &bytes.Buffer{}
	cmd := NewAnalyzeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute(), "empty input degrades to zeros, not an error")
	assert.Contains(t, buf.String(), "0 site patterns, 0 distinct sequences")
}

func TestAnalyze_UnknownFormat(t *testing.T) {
	cmd := NewAnalyzeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--alignment-format", "nexus", "whatever.phy"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAnalyze_MissingFile(t *testing.T) {
	cmd := NewAnalyzeCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.phy")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
