package main

import (
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/uiflow/internal/config"
	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/term"
)

var (
	runWatch   bool
	runLogFile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive demo panel",
	Long: `Open the demo panel in the terminal.

  Tab / Shift+Tab   cycle focus
  drag              drag the "drag" box with the primary button
  right click       open the contextual menu, pick an item with 1-9
  Esc               clear focus
  q / Ctrl+C        quit

Logs are discarded unless --log-file is set. With --watch the config file
is reloaded when it changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runDemo(cfg)
	},
}

func init() {
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "reload the config file when it changes")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "write logs to this file")
	rootCmd.AddCommand(runCmd)
}

// reloadEvent carries a watched config reload into the event loop.
type reloadEvent struct {
	when time.Time
	cfg  config.Config
	err  error
}

func (e *reloadEvent) When() time.Time { return e.when }

func runDemo(cfg config.Config) error {
	var out io.Writer = io.Discard
	if runLogFile != "" {
		f, err := os.OpenFile(runLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		out = f
	}
	log := logging.New(cfg.LoggingConfig(out))

	surface, err := term.NewTerminalSurface()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := surface.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer surface.Shutdown()

	renderer := term.NewRenderer(surface)
	a, err := newApp(cfg, log, renderer.SetStatus)
	if err != nil {
		return err
	}
	defer a.Close()
	if scriptPath != "" {
		if err := a.LoadScript(scriptPath); err != nil {
			return err
		}
	}

	if runWatch && configPath != "" {
		w, err := config.NewWatcher(configPath, func(cfg config.Config, err error) {
			_ = surface.PostEvent(&reloadEvent{when: time.Now(), cfg: cfg, err: err})
		}, config.WithWatcherLogger(logging.Component(log, "config")))
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if err := a.Resize(surface.Size()); err != nil {
		log.WithError(err).Error("initial resize")
	}
	renderer.SetStatus("Tab: focus  right click: menu  q: quit")
	renderer.Draw(a.p)

	tr := input.NewTranslator()
	var samples []input.Sample
	for !a.quit {
		ev := surface.PollEvent()
		if ev == nil {
			return nil
		}

		if rel, ok := ev.(*reloadEvent); ok {
			if rel.err != nil {
				renderer.SetStatus("config: " + rel.err.Error())
			} else {
				a.Reconfigure(rel.cfg)
				renderer.SetStatus("config reloaded")
			}
			renderer.Draw(a.p)
			continue
		}

		samples = tr.Translate(ev, samples[:0])
		for _, s := range samples {
			if s.Type == input.SampleResize {
				surface.Sync()
			}
			if err := a.Handle(s); err != nil {
				log.WithError(err).WithField("sample", s.Type.String()).Warn("sample rejected")
			}
		}
		if _, ok := ev.(*tcell.EventResize); ok || len(samples) > 0 {
			renderer.Draw(a.p)
		}
	}
	return nil
}
