package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/cli/commands"
	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/leapstack-labs/launchdash/internal/testutil"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "summary", "export", "query", "doctor", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	assert.NotNil(t, root.RunE, "bare invocation should serve")

	for _, flag := range []string{"config", "data", "host", "port", "watch", "log-level", "log-format", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRoot_SummaryThroughFlags(t *testing.T) {
	chdir(t, t.TempDir())
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	path := testutil.WriteLaunchCSV(t, testutil.SampleLaunches()...)

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"summary", "--data", path, "-o", "json", "--site", "VAFB SLC-4E"})

	require.NoError(t, root.Execute())

	var summary commands.SummaryOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, path, summary.DataPath)
	require.Len(t, summary.Sites, 1)
	assert.Equal(t, 2, summary.Sites[0].Launches)
	assert.InDelta(t, 0.5, summary.Sites[0].SuccessRate, 1e-9)
}

func TestRoot_InvalidConfigFails(t *testing.T) {
	chdir(t, t.TempDir())
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"summary", "--log-format", "xml"})

	assert.ErrorContains(t, root.Execute(), "log.format")
}

func TestCompletionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "launchdash")
}
