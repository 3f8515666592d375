package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("data", "", "")
	fs.String("host", "", "")
	fs.Int("port", 0, "")
	fs.Bool("watch", false, "")
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	fs.StringP("output", "o", "", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", newFlagSet())
	require.NoError(t, err)

	assert.Equal(t, DefaultDataPath, cfg.DataPath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, "127.0.0.1", cfg.UI.Host)
	assert.Equal(t, 8050, cfg.UI.Port)
	assert.False(t, cfg.UI.Watch)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	ResetConfig()

	yml := `data_path: from-file.csv
ui:
  port: 9000
  host: 0.0.0.0
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "launchdash.yaml"), []byte(yml), 0o600))

	t.Setenv("LAUNCHDASH_UI__PORT", "9100")
	t.Setenv("LAUNCHDASH_LOG__FORMAT", "json")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--data", "from-flag.csv"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)

	assert.Equal(t, "launchdash.yaml", GetConfigFileUsed())
	assert.Equal(t, "from-flag.csv", cfg.DataPath, "flag beats file")
	assert.Equal(t, 9100, cfg.UI.Port, "env beats file")
	assert.Equal(t, "0.0.0.0", cfg.UI.Host, "file beats default")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	chdir(t, t.TempDir())
	ResetConfig()
	t.Setenv("LAUNCHDASH_UI__HOST", "10.0.0.1")

	fs := newFlagSet()
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", cfg.UI.Host)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	chdir(t, t.TempDir())
	ResetConfig()

	_, err := LoadConfig("nope.yaml", nil)
	assert.ErrorContains(t, err, "nope.yaml")
}

func TestLoadConfig_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	ResetConfig()

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--port", "70000", "--log-level", "loud"}))

	_, err := LoadConfig("", fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.port")
	assert.Contains(t, err.Error(), "log.level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty data path", mutate: func(c *Config) { c.DataPath = " " }, wantErr: "data_path"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "bad output", mutate: func(c *Config) { c.OutputFormat = "csv" }, wantErr: "output"},
		{name: "yaml output", mutate: func(c *Config) { c.OutputFormat = "yaml" }},
		{name: "port zero falls back", mutate: func(c *Config) { c.UI.Port = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetUIConfig_NilFallsBack(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultUIConfig(), cfg.GetUIConfig())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, &LogConfig{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("shown", "site", "KSC LC-39A")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"site":"KSC LC-39A"`)
}

func TestGetLogger_Fallback(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	logger := NewLogger(&buf, &LogConfig{Level: "debug", Format: "text"})
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	GetLogger(ctx).Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFlagForKeyAndEnvVar(t *testing.T) {
	assert.Equal(t, "data", FlagForKey("data_path"))
	assert.Equal(t, "port", FlagForKey("ui.port"))
	assert.Empty(t, FlagForKey("ui.session_secret"))

	assert.Equal(t, "ui.port", KeyForFlag("port"))
	assert.Equal(t, "log.format", KeyForFlag("log-format"))
	assert.Empty(t, KeyForFlag("site"), "command options are not config")

	assert.Equal(t, "LAUNCHDASH_DATA_PATH", EnvVar("data_path"))
	assert.Equal(t, "LAUNCHDASH_UI__SESSION_SECRET", EnvVar("ui.session_secret"))
}
