package control

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionSize(t *testing.T) {
	tests := []struct {
		name       string
		sites      int
		partitions int
		want       int
	}{
		{"even", 300, 3, 100},
		{"uneven drops remainder", 1001, 4, 250},
		{"single partition", 50, 1, 50},
		{"more partitions than sites", 3, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PartitionSize(tt.sites, tt.partitions))
		})
	}
}

func TestPlan_ContiguousRanges(t *testing.T) {
	spans := Plan(300, 3)
	require.Len(t, spans, 3)
	assert.Equal(t, Span{1, 100}, spans[0])
	assert.Equal(t, Span{101, 200}, spans[1])
	assert.Equal(t, Span{201, 300}, spans[2])
}

func TestPlan_RemainderDropped(t *testing.T) {
	spans := Plan(10, 3)
	require.Len(t, spans, 3)
	// 10/3 = 3; site 10 is covered by no partition.
	assert.Equal(t, Span{7, 9}, spans[2])
}

func TestWritePartitionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.txt")

	err := WritePartitionFile(path, 300, 3)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "DNA, part1 = 1-100\nDNA, part2 = 101-200\nDNA, part3 = 201-300\n", string(data))
}

func TestWritePartitionFile_BadPath(t *testing.T) {
	err := WritePartitionFile(filepath.Join(t.TempDir(), "missing", "p.txt"), 300, 3)
	assert.Error(t, err)
}
