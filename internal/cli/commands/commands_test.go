package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/testutil"
)

// useDataset points the loaded configuration at a fixture CSV.
func useDataset(t *testing.T, output string) string {
	t.Helper()
	path := testutil.WriteLaunchCSV(t, testutil.SampleLaunches()...)

	t.Setenv("LAUNCHDASH_DATA_PATH", path)
	t.Setenv("LAUNCHDASH_OUTPUT", output)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	return path
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewSummaryCommand(t *testing.T) {
	cmd := NewSummaryCommand()

	assert.Equal(t, "summary", cmd.Use)
	for _, flag := range []string{"site", "min-payload", "max-payload"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewExportCommand(t *testing.T) {
	cmd := NewExportCommand()

	assert.Equal(t, "export", cmd.Use)
	for _, flag := range []string{"chart", "format", "out", "site", "min-payload", "max-payload"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestSummary_JSON(t *testing.T) {
	useDataset(t, "json")

	tests := []struct {
		name      string
		args      []string
		wantSites []string
		wantTotal int
	}{
		{
			name:      "all sites",
			wantSites: []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"},
			wantTotal: 7,
		},
		{
			name:      "single site",
			args:      []string{"--site", "CCAFS LC-40"},
			wantSites: []string{"CCAFS LC-40"},
			wantTotal: 2,
		},
		{
			// Padded to [900, 3100]: keeps 1950 and 2490.
			name:      "payload range",
			args:      []string{"--min-payload", "1000", "--max-payload", "3000"},
			wantSites: []string{"CCAFS LC-40", "KSC LC-39A"},
			wantTotal: 2,
		},
		{
			name:      "no match",
			args:      []string{"--site", "Boca Chica"},
			wantSites: []string{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewSummaryCommand()
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetErr(&buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())

			var out SummaryOutput
			require.NoError(t, json.Unmarshal(buf.Bytes(), &out), buf.String())

			sites := make([]string, 0, len(out.Sites))
			for _, s := range out.Sites {
				sites = append(sites, s.Site)
			}
			assert.Equal(t, tt.wantSites, sites)
			assert.Equal(t, tt.wantTotal, out.Total.Launches)
		})
	}
}

func TestSummary_Markdown(t *testing.T) {
	useDataset(t, "markdown")

	cmd := NewSummaryCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--site", "KSC LC-39A"})
	require.NoError(t, cmd.Execute())

	md := buf.String()
	assert.Contains(t, md, "# Launch outcomes")
	assert.Contains(t, md, "| KSC LC-39A | 2 | 2 | 0 | 100.0% |")
	assert.NotContains(t, md, "\x1b[")
}

func TestSummary_NegativePayload(t *testing.T) {
	useDataset(t, "json")

	cmd := NewSummaryCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--min-payload", "-5"})
	assert.ErrorContains(t, cmd.Execute(), "negative")
}

func TestSummary_MissingFile(t *testing.T) {
	t.Setenv("LAUNCHDASH_DATA_PATH", filepath.Join(t.TempDir(), "missing.csv"))
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	cmd := NewSummaryCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs(nil)

	err = cmd.Execute()
	var loadErr *dataset.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "cannot open file", loadErr.Reason)
}

func TestExport(t *testing.T) {
	useDataset(t, "text")
	dir := t.TempDir()

	t.Run("png from extension", func(t *testing.T) {
		out := filepath.Join(dir, "pie.png")
		cmd := NewExportCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--chart", "pie", "--site", "KSC LC-39A", "--out", out})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	})

	t.Run("json to stdout", func(t *testing.T) {
		cmd := NewExportCommand()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--chart", "scatter", "--format", "json", "--out", "-"})
		require.NoError(t, cmd.Execute())

		var fig chart.Figure
		require.NoError(t, json.Unmarshal(buf.Bytes(), &fig))
		assert.Equal(t, "Payload vs success for all sites", fig.Layout.Title.Text)
	})

	t.Run("empty selection leaves no file", func(t *testing.T) {
		out := filepath.Join(dir, "empty.svg")
		cmd := NewExportCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--chart", "scatter", "--site", "Boca Chica", "--out", out})

		assert.ErrorIs(t, cmd.Execute(), chart.ErrEmptyChart)
		_, err := os.Stat(out)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unknown chart", func(t *testing.T) {
		cmd := NewExportCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--chart", "histogram"})
		assert.ErrorContains(t, cmd.Execute(), "unknown chart")
	})
}

func TestExportFormat(t *testing.T) {
	assert.Equal(t, "svg", exportFormat("SVG", "x.png"))
	assert.Equal(t, "json", exportFormat("", "fig.json"))
	assert.Equal(t, "png", exportFormat("", "-"))
	assert.Equal(t, "png", exportFormat("", ""))
	assert.Equal(t, "png", exportFormat("", "chart.gif"))
}
