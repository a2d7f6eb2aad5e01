package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ccicconetti/stateful-faas-sim/sim"
)

func TestWriteCSV_NewFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	outputs := []sim.Output{{Seed: 1, AvgBusyNodes: 2, TotalTraffic: 3, MigrationRate: 0.1, ExecutionTime: 0.01}}

	err := writeCSV(path, false, "", "", outputs)
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), sim.CSVHeader())
	assert.Contains(t, string(data), "1,2,3,0.1,0.01")
}

func TestWriteCSV_AppendToExistingNonEmptyFileSkipsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	first := []sim.Output{{Seed: 1}}
	assert.NoError(t, writeCSV(path, false, "", "", first))

	second := []sim.Output{{Seed: 2}}
	assert.NoError(t, writeCSV(path, true, "", "", second))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	headerCount := 0
	for _, line := range splitLines(string(data)) {
		if line == sim.CSVHeader() {
			headerCount++
		}
	}
	assert.Equal(t, 1, headerCount, "header must appear exactly once across both writes")
}

func TestWriteCSV_AppendToEmptyFileStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	f, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	outputs := []sim.Output{{Seed: 1}}
	assert.NoError(t, writeCSV(path, true, "", "", outputs))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), sim.CSVHeader())
}

func TestWriteCSV_AdditionalColumnsPrepended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	outputs := []sim.Output{{Seed: 1}}

	err := writeCSV(path, false, "policy,", "stateless-min-nodes,", outputs)
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "policy,"+sim.CSVHeader())
	assert.Contains(t, string(data), "stateless-min-nodes,1,")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
