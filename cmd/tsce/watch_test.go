package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/tsce/pkg/scanner"
	"github.com/praetorian-inc/tsce/pkg/watch"
)

func TestReportChange(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"Card.tsx":   cardSource,
		"Plain.tsx":  "export const x = 1\n",
		"Broken.tsx": "const A = () => <Abc></Xyz>\n",
	})

	core, err := scanner.NewCore(scanner.Options{})
	require.NoError(t, err)
	defer core.Close()

	tests := []struct {
		name  string
		event watch.Event
		want  string
	}{
		{name: "unbound", event: watch.Event{Path: filepath.Join(dir, "Card.tsx")}, want: "Card.tsx: hasUnboundComponents=true (2)"},
		{name: "clean", event: watch.Event{Path: filepath.Join(dir, "Plain.tsx")}, want: "Plain.tsx: hasUnboundComponents=false (0)"},
		{name: "syntax", event: watch.Event{Path: filepath.Join(dir, "Broken.tsx")}, want: "Broken.tsx: syntax error"},
		{name: "removed", event: watch.Event{Path: filepath.Join(dir, "Gone.tsx"), Removed: true}, want: "Gone.tsx: removed"},
		{name: "vanished", event: watch.Event{Path: filepath.Join(dir, "Vanished.tsx")}, want: "Vanished.tsx: removed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&buf)

			require.NoError(t, reportChange(cmd, core, tt.event))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRunWatchNotDirectory(t *testing.T) {
	resetGlobalFlags()
	dir := writeProject(t, map[string]string{"Card.tsx": cardSource})
	file := filepath.Join(dir, "Card.tsx")
	_, err := os.Stat(file)
	require.NoError(t, err)

	err = runWatch(&cobra.Command{}, []string{file})
	require.Error(t, err)
	assert.ErrorIs(t, err, watch.ErrNotDirectory)
}
