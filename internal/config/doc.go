// Package config loads uiflow configuration.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← UIFLOW_*, highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← uiflow.toml or uiflow.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load("uiflow.toml")
//	if err != nil {
//	    return err
//	}
//	d := dispatch.New(cfg.DispatchConfig())
//
// # File Formats
//
// The decoder is chosen by extension: .toml uses go-toml, .yaml and .yml
// use yaml.v3. Durations are written as strings such as "400ms".
//
// # Environment Variables
//
// Every setting has an environment variable named after its section and
// key, for example UIFLOW_DISPATCH_LEGACY_MOUSE_EVENTS or UIFLOW_LOG_LEVEL.
// Booleans accept true/false, yes/no, on/off and 1/0.
//
// # Live Reload
//
// Watcher observes the config file with fsnotify and reloads it after
// writes settle:
//
//	w, err := config.NewWatcher(path, func(cfg config.Config, err error) {
//	    ...
//	})
//	defer w.Close()
package config
