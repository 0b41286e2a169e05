package main

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/uiflow/internal/config"
	"github.com/dshills/uiflow/internal/dispatch"
	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/panel"
	"github.com/dshills/uiflow/internal/pointer"
	luascript "github.com/dshills/uiflow/internal/script"
	"github.com/dshills/uiflow/internal/ui"
)

// app ties a demo panel to a status sink. run and trace share it.
type app struct {
	cfg    config.Config
	log    *logrus.Logger
	d      *dispatch.Dispatcher
	p      *panel.Panel
	demo   *demo
	menus  *menuPresenter
	script *luascript.Engine
	status func(string)
	quit   bool
}

func newApp(cfg config.Config, log *logrus.Logger, status func(string), opts ...dispatch.Option) (*app, error) {
	a := &app{cfg: cfg, log: log, status: status}

	opts = append([]dispatch.Option{dispatch.WithLogger(logging.Component(log, "dispatch"))}, opts...)
	a.d = dispatch.New(cfg.DispatchConfig(), opts...)
	a.menus = newMenuPresenter(status)
	a.p = panel.New(
		panel.WithName("demo"),
		panel.WithDispatcher(a.d),
		panel.WithContext(cfg.PointerContext()),
		panel.WithClickDetector(cfg.ClickDetector()),
		panel.WithLogger(logging.Component(log, "panel")),
		panel.WithMenuPresenter(a.menus),
		panel.WithTrackerOptions(
			pointer.WithMaxCommitPasses(cfg.Dispatch.MaxCommitPasses),
			pointer.WithTrackerLogger(logging.Component(log, "tracker")),
		),
	)

	demo, err := newDemo(a.p, status, func() { a.quit = true })
	if err != nil {
		return nil, err
	}
	a.demo = demo
	return a, nil
}

// LoadScript runs a Lua behavior script against the demo tree.
func (a *app) LoadScript(path string) error {
	if a.script == nil {
		a.script = luascript.NewEngine(a.p,
			luascript.WithStatus(a.status),
			luascript.WithLogger(logging.Component(a.log, "script")),
		)
	}
	return a.script.DoFile(path)
}

// Resize sizes the root to w by h cells.
func (a *app) Resize(w, h int) error {
	return a.p.Resize(ui.Rect{Max: ui.Vec2{X: float64(w), Y: float64(h)}})
}

// Handle feeds one sample to the panel. Keys go to an open menu first.
func (a *app) Handle(s input.Sample) error {
	if s.Type == input.SampleKeyDown && a.menus.HandleKey(s.Key) {
		return nil
	}
	return a.p.HandleSample(s)
}

// Reconfigure applies a reloaded configuration. Pointer context and click
// thresholds are fixed for the life of the panel.
func (a *app) Reconfigure(cfg config.Config) {
	a.cfg = cfg
	a.d.SetConfig(cfg.DispatchConfig())
	a.log.SetLevel(logging.ParseLevel(cfg.Log.Level))
}

func (a *app) Close() {
	a.menus.close()
	if a.script != nil {
		a.script.Close()
	}
	a.p.Close()
}
