package config

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dshills/uiflow/internal/dispatch"
	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/pointer"
)

// Config is the complete uiflow configuration.
type Config struct {
	Dispatch DispatchConfig `toml:"dispatch" yaml:"dispatch"`
	Pointer  PointerConfig  `toml:"pointer" yaml:"pointer"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// DispatchConfig configures the dispatcher and the under-pointer tracker.
type DispatchConfig struct {
	// LegacyMouseEvents mirrors primary pointer events into mouse events.
	LegacyMouseEvents bool `toml:"legacy_mouse_events" yaml:"legacy_mouse_events"`

	// CapturePrePass lets the mouse captor see focus-routed events first.
	CapturePrePass bool `toml:"capture_pre_pass" yaml:"capture_pre_pass"`

	// MaxCommitPasses bounds how often one tracker commit re-runs when
	// transition handlers move pointers.
	MaxCommitPasses int `toml:"max_commit_passes" yaml:"max_commit_passes"`

	// Metrics enables per-kind dispatch statistics.
	Metrics bool `toml:"metrics" yaml:"metrics"`
}

// PointerConfig configures pointer handling.
type PointerConfig struct {
	// Context is "runtime" or "editor".
	Context string `toml:"context" yaml:"context"`

	// DoubleClickTime is the longest pause between clicks of a sequence.
	DoubleClickTime Duration `toml:"double_click_time" yaml:"double_click_time"`

	// DoubleClickDistance is the farthest a click may land from the previous
	// one, in cells.
	DoubleClickDistance float64 `toml:"double_click_distance" yaml:"double_click_distance"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := dispatch.DefaultConfig()
	return Config{
		Dispatch: DispatchConfig{
			LegacyMouseEvents: d.LegacyMouseEvents,
			CapturePrePass:    d.CapturePrePass,
			MaxCommitPasses:   pointer.DefaultMaxCommitPasses,
			Metrics:           d.EnableMetrics,
		},
		Pointer: PointerConfig{
			Context:             pointer.ContextRuntime.String(),
			DoubleClickTime:     Duration(input.DefaultDoubleClickTime),
			DoubleClickDistance: input.DefaultDoubleClickDistance,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
	}
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.Dispatch.MaxCommitPasses < 1 {
		return errors.Wrapf(ErrInvalidConfig, "dispatch.max_commit_passes must be at least 1, got %d", c.Dispatch.MaxCommitPasses)
	}
	if _, ok := pointer.ParseContext(c.Pointer.Context); !ok {
		return errors.Wrapf(ErrInvalidConfig, "pointer.context %q", c.Pointer.Context)
	}
	if c.Pointer.DoubleClickTime < 0 {
		return errors.Wrapf(ErrInvalidConfig, "pointer.double_click_time %s is negative", c.Pointer.DoubleClickTime)
	}
	if c.Pointer.DoubleClickDistance < 0 {
		return errors.Wrapf(ErrInvalidConfig, "pointer.double_click_distance %g is negative", c.Pointer.DoubleClickDistance)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return errors.Wrapf(ErrInvalidConfig, "log.level %q", c.Log.Level)
	}
	switch logging.Format(strings.ToLower(c.Log.Format)) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return errors.Wrapf(ErrInvalidConfig, "log.format %q", c.Log.Format)
	}
	return nil
}

// DispatchConfig converts the dispatch section for dispatch.New.
func (c Config) DispatchConfig() dispatch.Config {
	d := dispatch.DefaultConfig().
		WithLegacyMouseEvents(c.Dispatch.LegacyMouseEvents).
		WithCapturePrePass(c.Dispatch.CapturePrePass)
	if c.Dispatch.Metrics {
		d = d.WithMetrics()
	}
	return d
}

// PointerContext returns the configured pointer context.
func (c Config) PointerContext() pointer.Context {
	ctx, _ := pointer.ParseContext(c.Pointer.Context)
	return ctx
}

// ClickDetector builds a click detector with the configured thresholds.
func (c Config) ClickDetector() *input.ClickDetector {
	return input.NewClickDetector(time.Duration(c.Pointer.DoubleClickTime), c.Pointer.DoubleClickDistance)
}

// LoggingConfig converts the log section, writing to out.
func (c Config) LoggingConfig(out io.Writer) logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: logging.Format(strings.ToLower(c.Log.Format)),
		Output: out,
	}
}

// Duration is a time.Duration written as a string like "400ms" in config
// files.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Wrapf(err, "duration %q", text)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: duration must be a scalar", value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}
