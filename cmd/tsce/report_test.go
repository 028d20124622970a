package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// scanInto populates a datastore for report tests.
func scanInto(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := writeProject(t, files)
	dbPath := filepath.Join(t.TempDir(), "tsce.db")
	resetScanFlags(dbPath, "human")
	require.NoError(t, runScan(&cobra.Command{}, []string{dir}))
	return dbPath
}

func resetReportFlags(datastore, format string) {
	resetGlobalFlags()
	reportDatastore = datastore
	reportFormat = format
	reportColor = "never"
}

func TestRunReportHuman(t *testing.T) {
	dbPath := scanInto(t, map[string]string{"Card.tsx": cardSource})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetReportFlags(dbPath, "human")
	require.NoError(t, runReport(cmd, []string{}))

	output := buf.String()
	assert.Contains(t, output, "File:")
	assert.Contains(t, output, "Card.tsx")
	assert.Contains(t, output, "4:4 <Wrapper>")
	assert.Contains(t, output, "5:6 <Title>")
	assert.NotContains(t, output, "\x1b[", "colors should be disabled")
}

func TestRunReportColorAlways(t *testing.T) {
	dbPath := scanInto(t, map[string]string{"Card.tsx": cardSource})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetReportFlags(dbPath, "human")
	reportColor = "always"
	require.NoError(t, runReport(cmd, []string{}))

	assert.Contains(t, buf.String(), "Wrapper")
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestRunReportJSON(t *testing.T) {
	dbPath := scanInto(t, map[string]string{"Card.tsx": cardSource})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetReportFlags(dbPath, "json")
	require.NoError(t, runReport(cmd, []string{}))

	var records []*types.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "const Wrapper = tw.div`flex p-2`", records[0].Declaration)
}

func TestRunReportEmpty(t *testing.T) {
	dbPath := scanInto(t, map[string]string{"Plain.ts": "export const x = 1\n"})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	resetReportFlags(dbPath, "human")
	require.NoError(t, runReport(cmd, []string{}))
	assert.Contains(t, buf.String(), "No unbound components.")
}

func TestRunReportErrors(t *testing.T) {
	tests := []struct {
		name      string
		datastore string
		format    string
		color     string
		want      string
	}{
		{name: "memory", datastore: ":memory:", format: "human", color: "never", want: "in-memory"},
		{name: "missing", datastore: "/nonexistent/tsce.db", format: "human", color: "never", want: "datastore not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetReportFlags(tt.datastore, tt.format)
			reportColor = tt.color
			err := runReport(&cobra.Command{}, []string{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunReportInvalidOptions(t *testing.T) {
	dbPath := scanInto(t, map[string]string{"Card.tsx": cardSource})

	resetReportFlags(dbPath, "xml")
	err := runReport(&cobra.Command{}, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	resetReportFlags(dbPath, "human")
	reportColor = "sometimes"
	err = runReport(&cobra.Command{}, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color mode")
}

func TestColorEnabled(t *testing.T) {
	on, err := colorEnabled("always")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := colorEnabled("never")
	require.NoError(t, err)
	assert.False(t, off)

	t.Setenv("NO_COLOR", "1")
	auto, err := colorEnabled("auto")
	require.NoError(t, err)
	assert.False(t, auto)
}
