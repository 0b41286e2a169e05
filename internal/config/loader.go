package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UIFLOW_"

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor selects the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment, then validates it. An empty path skips the file layer; a
// missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "reading config file")
		}
		format, err := FormatFor(path)
		if err != nil {
			return Config{}, err
		}
		if cfg, err = Decode(cfg, data, format); err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Path = path
			}
			return Config{}, err
		}
	}

	cfg, err := ApplyEnv(cfg, os.LookupEnv)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays data onto base. Keys absent from data keep base values.
func Decode(base Config, data []byte, format Format) (Config, error) {
	cfg := base
	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			// Empty document.
			err = nil
		}
	default:
		return base, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return base, &ParseError{Path: "<" + string(format) + ">", Err: err}
	}
	return cfg, nil
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

type envBinding struct {
	name  string
	apply func(c *Config, value string) error
}

var envBindings = []envBinding{
	{"DISPATCH_LEGACY_MOUSE_EVENTS", func(c *Config, v string) error {
		return parseBool(v, &c.Dispatch.LegacyMouseEvents)
	}},
	{"DISPATCH_CAPTURE_PRE_PASS", func(c *Config, v string) error {
		return parseBool(v, &c.Dispatch.CapturePrePass)
	}},
	{"DISPATCH_MAX_COMMIT_PASSES", func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		c.Dispatch.MaxCommitPasses = n
		return err
	}},
	{"DISPATCH_METRICS", func(c *Config, v string) error {
		return parseBool(v, &c.Dispatch.Metrics)
	}},
	{"POINTER_CONTEXT", func(c *Config, v string) error {
		c.Pointer.Context = strings.ToLower(strings.TrimSpace(v))
		return nil
	}},
	{"POINTER_DOUBLE_CLICK_TIME", func(c *Config, v string) error {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		c.Pointer.DoubleClickTime = Duration(d)
		return err
	}},
	{"POINTER_DOUBLE_CLICK_DISTANCE", func(c *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		c.Pointer.DoubleClickDistance = f
		return err
	}},
	{"LOG_LEVEL", func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
		return nil
	}},
	{"LOG_FORMAT", func(c *Config, v string) error {
		c.Log.Format = strings.ToLower(strings.TrimSpace(v))
		return nil
	}},
}

// EnvVars returns the names of all recognized environment variables.
func EnvVars() []string {
	names := make([]string, len(envBindings))
	for i, b := range envBindings {
		names[i] = EnvPrefix + b.name
	}
	return names
}

// ApplyEnv overlays UIFLOW_* variables read through lookup onto cfg.
// Empty values are ignored.
func ApplyEnv(cfg Config, lookup LookupFunc) (Config, error) {
	for _, b := range envBindings {
		name := EnvPrefix + b.name
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		if err := b.apply(&cfg, v); err != nil {
			return cfg, errors.Wrapf(ErrInvalidConfig, "%s=%q: %v", name, v, err)
		}
	}
	return cfg, nil
}

func parseBool(s string, dst *bool) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0":
		*dst = false
	default:
		return errors.Errorf("not a boolean: %q", s)
	}
	return nil
}
