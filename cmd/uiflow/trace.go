package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/uiflow/internal/config"
	"github.com/dshills/uiflow/internal/dispatch"
	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

var traceMetrics bool

var traceCmd = &cobra.Command{
	Use:   "trace <script.yaml>",
	Short: "Replay an input script and print every dispatch step",
	Long: `Replay a YAML input script against the demo panel. Each sample is
printed followed by the dispatch steps it caused and any status messages.

  size: [80, 24]
  samples:
    - {type: pointer-down, x: 12, y: 3, button: primary}
    - {type: pointer-up, x: 12, y: 3, button: primary, at: 40}
    - {type: key-down, key: Tab}
    - {type: key-down, key: c, mods: ctrl}
    - {type: command, command: save}

Sample times default to 50ms after the previous sample; "at" sets an
absolute offset in milliseconds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return traceRun(cmd.OutOrStdout(), args[0], scriptPath, cfg, traceMetrics)
	},
}

func init() {
	traceCmd.Flags().BoolVarP(&traceMetrics, "metrics", "m", false, "print per-kind dispatch statistics")
	rootCmd.AddCommand(traceCmd)
}

// script is the YAML form of a recorded input session.
type script struct {
	Size    []int          `yaml:"size"`
	Samples []scriptSample `yaml:"samples"`
}

type scriptSample struct {
	Type    string  `yaml:"type"`
	Pointer int     `yaml:"pointer"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	DX      float64 `yaml:"dx"`
	DY      float64 `yaml:"dy"`
	Button  string  `yaml:"button"`
	Key     string  `yaml:"key"`
	Mods    string  `yaml:"mods"`
	Command string  `yaml:"command"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	At      int64   `yaml:"at"`
}

var traceEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const traceStep = 50 * time.Millisecond

// parseScript decodes data into samples and the initial panel size.
func parseScript(data []byte) (int, int, []input.Sample, error) {
	var sc script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return 0, 0, nil, errors.Wrap(err, "parse script")
	}

	w, h := 80, 24
	switch len(sc.Size) {
	case 0:
	case 2:
		w, h = sc.Size[0], sc.Size[1]
	default:
		return 0, 0, nil, errors.Errorf("size: want [width, height], got %d values", len(sc.Size))
	}

	samples := make([]input.Sample, 0, len(sc.Samples))
	at := traceEpoch
	for i, raw := range sc.Samples {
		if raw.At > 0 {
			at = traceEpoch.Add(time.Duration(raw.At) * time.Millisecond)
		} else if i > 0 {
			at = at.Add(traceStep)
		}
		s, err := raw.sample(at)
		if err != nil {
			return 0, 0, nil, errors.Wrapf(err, "sample %d", i+1)
		}
		samples = append(samples, s)
	}
	return w, h, samples, nil
}

func (r scriptSample) sample(at time.Time) (input.Sample, error) {
	typ, ok := input.ParseSampleType(r.Type)
	if !ok || typ == input.SampleNone {
		return input.Sample{}, errors.Errorf("unknown type %q", r.Type)
	}
	s := input.Sample{Type: typ, Time: at, Button: ui.ButtonNone}

	switch {
	case s.IsPointer():
		if !pointer.Valid(r.Pointer) {
			return s, errors.Errorf("invalid pointer %d", r.Pointer)
		}
		s.PointerID = r.Pointer
		s.PointerType = pointer.TypeOf(r.Pointer)
		s.Primary = r.Pointer == pointer.MousePointerID ||
			r.Pointer == pointer.TouchPointerIDBase ||
			r.Pointer == pointer.PenPointerIDBase
		s.Position = ui.Vec2{X: r.X, Y: r.Y}
		s.Wheel = ui.Vec2{X: r.DX, Y: r.DY}
		s.Modifiers = key.ParseModifiers(r.Mods)
		if typ == input.SamplePointerDown || typ == input.SamplePointerUp {
			b, err := parseButton(r.Button)
			if err != nil {
				return s, err
			}
			s.Button = b
		}
	case typ == input.SampleKeyDown || typ == input.SampleKeyUp:
		stroke, err := parseKey(r.Key, r.Mods)
		if err != nil {
			return s, err
		}
		s.Key = stroke
	case typ == input.SampleCommand:
		if r.Command == "" {
			return s, errors.New("command sample without a command")
		}
		s.Command = r.Command
	case typ == input.SampleResize:
		s.Size = ui.Vec2{X: r.Width, Y: r.Height}
	}
	return s, nil
}

func parseButton(name string) (ui.Button, error) {
	switch strings.ToLower(name) {
	case "", "primary", "left":
		return ui.ButtonPrimary, nil
	case "secondary", "right":
		return ui.ButtonSecondary, nil
	case "middle":
		return ui.ButtonMiddle, nil
	case "back":
		return ui.ButtonBack, nil
	case "forward":
		return ui.ButtonForward, nil
	}
	return ui.ButtonNone, errors.Errorf("unknown button %q", name)
}

// parseKey accepts a key name like "Tab" or a single character.
func parseKey(name, mods string) (key.Stroke, error) {
	stroke := key.Stroke{Modifiers: key.ParseModifiers(mods)}
	if r := []rune(name); len(r) == 1 {
		stroke.Key = key.KeyRune
		stroke.Rune = r[0]
		return stroke, nil
	}
	stroke.Key = key.FromName(name)
	if stroke.Key == key.KeyNone || stroke.Key == key.KeyRune {
		return stroke, errors.Errorf("unknown key %q", name)
	}
	return stroke, nil
}

func traceRun(out io.Writer, path, luaPath string, cfg config.Config, showMetrics bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read script")
	}
	w, h, samples, err := parseScript(data)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LoggingConfig(os.Stderr))
	status := func(msg string) {
		if msg != "" {
			fmt.Fprintf(out, "  status: %s\n", msg)
		}
	}
	tracer := dispatch.TracerFunc(func(evt *ui.Event, node *ui.Element, phase ui.Phase) {
		fmt.Fprintf(out, "  %-12s %-24s node=%s target=%s\n", phase, evt.Kind().Name(), name(node), name(evt.Target()))
	})

	if showMetrics {
		cfg.Dispatch.Metrics = true
	}
	a, err := newApp(cfg, log, status, dispatch.WithTracer(tracer))
	if err != nil {
		return err
	}
	defer a.Close()
	if luaPath != "" {
		if err := a.LoadScript(luaPath); err != nil {
			return err
		}
	}

	if err := a.Resize(w, h); err != nil {
		return err
	}
	for i, s := range samples {
		fmt.Fprintf(out, "#%d %s\n", i+1, describe(s))
		if err := a.Handle(s); err != nil {
			fmt.Fprintf(out, "  error: %v\n", err)
		}
		if a.quit {
			fmt.Fprintln(out, "quit")
			break
		}
	}

	if showMetrics && a.d.Metrics() != nil {
		m := a.d.Metrics()
		fmt.Fprintf(out, "\n%d dispatches, %d errors\n", m.TotalDispatches(), m.TotalErrors())
		for _, km := range m.TopKinds(10) {
			fmt.Fprintf(out, "  %-24s %5d stopped=%d captured=%d\n", km.Name, km.DispatchCount, km.StoppedCount, km.CapturedCount)
		}
	}
	return nil
}

func describe(s input.Sample) string {
	switch {
	case s.IsPointer():
		d := fmt.Sprintf("%s pointer=%d at %s", s.Type, s.PointerID, s.Position)
		if s.Button != ui.ButtonNone {
			d += " button=" + s.Button.String()
		}
		return d
	case s.Type == input.SampleKeyDown || s.Type == input.SampleKeyUp:
		return fmt.Sprintf("%s %s", s.Type, s.Key)
	case s.Type == input.SampleCommand:
		return fmt.Sprintf("%s %s", s.Type, s.Command)
	case s.Type == input.SampleResize:
		return fmt.Sprintf("%s %s", s.Type, s.Size)
	}
	return s.Type.String()
}

func name(el *ui.Element) string {
	if el == nil {
		return "-"
	}
	return el.Name()
}
