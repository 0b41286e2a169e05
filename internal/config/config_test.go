package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/pointer"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Dispatch.LegacyMouseEvents)
	assert.True(t, cfg.Dispatch.CapturePrePass)
	assert.Equal(t, pointer.DefaultMaxCommitPasses, cfg.Dispatch.MaxCommitPasses)
	assert.Equal(t, "runtime", cfg.Pointer.Context)
	assert.Equal(t, 400*time.Millisecond, time.Duration(cfg.Pointer.DoubleClickTime))
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"commit passes", func(c *Config) { c.Dispatch.MaxCommitPasses = 0 }},
		{"context", func(c *Config) { c.Pointer.Context = "game" }},
		{"double click time", func(c *Config) { c.Pointer.DoubleClickTime = Duration(-time.Second) }},
		{"double click distance", func(c *Config) { c.Pointer.DoubleClickDistance = -1 }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDecode_TOML(t *testing.T) {
	data := []byte(`
[dispatch]
legacy_mouse_events = false
max_commit_passes = 8

[pointer]
context = "editor"
double_click_time = "250ms"

[log]
level = "debug"
`)
	cfg, err := Decode(Default(), data, FormatTOML)
	require.NoError(t, err)

	assert.False(t, cfg.Dispatch.LegacyMouseEvents)
	assert.True(t, cfg.Dispatch.CapturePrePass, "absent keys keep defaults")
	assert.Equal(t, 8, cfg.Dispatch.MaxCommitPasses)
	assert.Equal(t, pointer.ContextEditor, cfg.PointerContext())
	assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.Pointer.DoubleClickTime))
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestDecode_YAML(t *testing.T) {
	data := []byte(`
dispatch:
  capture_pre_pass: false
  metrics: true
pointer:
  double_click_time: 1s
  double_click_distance: 2.5
log:
  format: json
`)
	cfg, err := Decode(Default(), data, FormatYAML)
	require.NoError(t, err)

	assert.False(t, cfg.Dispatch.CapturePrePass)
	assert.True(t, cfg.Dispatch.Metrics)
	assert.Equal(t, time.Second, time.Duration(cfg.Pointer.DoubleClickTime))
	assert.Equal(t, 2.5, cfg.Pointer.DoubleClickDistance)
	assert.Equal(t, "json", cfg.Log.Format)

	d := cfg.DispatchConfig()
	assert.False(t, d.CapturePrePass)
	assert.True(t, d.EnableMetrics)
	assert.True(t, d.LegacyMouseEvents)
}

func TestDecode_EmptyYAML(t *testing.T) {
	cfg, err := Decode(Default(), nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecode_Errors(t *testing.T) {
	var pe *ParseError

	_, err := Decode(Default(), []byte("[dispatch]\nbogus = 1\n"), FormatTOML)
	assert.ErrorAs(t, err, &pe)

	_, err = Decode(Default(), []byte("pointer:\n  double_click_time: soon\n"), FormatYAML)
	assert.ErrorAs(t, err, &pe)

	_, err = Decode(Default(), nil, Format("ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"a.toml":      FormatTOML,
		"b.yaml":      FormatYAML,
		"dir/c.YML":   FormatYAML,
		"/abs/d.Toml": FormatTOML,
	}
	for path, want := range tests {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("config.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"UIFLOW_DISPATCH_LEGACY_MOUSE_EVENTS":  "off",
		"UIFLOW_DISPATCH_MAX_COMMIT_PASSES":    "2",
		"UIFLOW_POINTER_CONTEXT":               "Editor",
		"UIFLOW_POINTER_DOUBLE_CLICK_TIME":     "1.5s",
		"UIFLOW_POINTER_DOUBLE_CLICK_DISTANCE": "3",
		"UIFLOW_LOG_LEVEL":                     "WARN",
		"UIFLOW_LOG_FORMAT":                    "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := ApplyEnv(Default(), lookup)
	require.NoError(t, err)

	assert.False(t, cfg.Dispatch.LegacyMouseEvents)
	assert.Equal(t, 2, cfg.Dispatch.MaxCommitPasses)
	assert.Equal(t, "editor", cfg.Pointer.Context)
	assert.Equal(t, 1500*time.Millisecond, time.Duration(cfg.Pointer.DoubleClickTime))
	assert.Equal(t, 3.0, cfg.Pointer.DoubleClickDistance)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "empty values are ignored")
}

func TestApplyEnv_Invalid(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "UIFLOW_DISPATCH_METRICS" {
			return "maybe", true
		}
		return "", false
	}
	_, err := ApplyEnv(Default(), lookup)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	assert.Contains(t, vars, "UIFLOW_LOG_LEVEL")
	assert.Contains(t, vars, "UIFLOW_DISPATCH_CAPTURE_PRE_PASS")
	for _, v := range vars {
		assert.Regexp(t, `^UIFLOW_[A-Z_]+$`, v)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uiflow.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"trace\"\n"), 0o644))

	t.Setenv("UIFLOW_LOG_FORMAT", "json")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	var buf bytes.Buffer
	logger := logging.New(cfg.LoggingConfig(&buf))
	logger.Trace("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log: [unclosed"), 0o644))
	_, err = Load(bad)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bad, pe.Path)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[dispatch]\nmax_commit_passes = 0\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	other := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(other, nil, 0o644))
	_, err = Load(other)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Dispatch, cfg.Dispatch)
}

func TestClickDetector_FromConfig(t *testing.T) {
	cfg := Default()
	cfg.Pointer.DoubleClickTime = Duration(50 * time.Millisecond)
	d := cfg.ClickDetector()
	require.NotNil(t, d)
	assert.Equal(t, 0, d.LastCount())
}
