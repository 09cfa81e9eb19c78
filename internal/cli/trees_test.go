package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrees_ExtractsToOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "trees.txt")
	out := filepath.Join(dir, "newick_trees.txt")
	require.NoError(t, os.WriteFile(in, []byte("1\tSimTree\ta\tb\tc\td\te\t(A,B);\n"), 0644))

	buf := &bytes.Buffer{}
	cmd := NewTreesCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-o", out, in})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Extracted 1 tree(s)")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "(A,B);\n", string(data))
}

func TestTrees_MissingInput(t *testing.T) {
	cmd := NewTreesCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.txt")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory_EmptyStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No recorded runs.")
}
