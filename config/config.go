package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

//go:embed config.json
var config embed.FS

const (
	confName     = "config.json"
	overlayName  = "config.toml"
	LogName      = "goditor.log"
	LineAbsolute = "absolute"
	LineRelative = "relative"
	LineOff      = "off"
)

type EditorConfig struct {
	LineNumbers    string            `json:"lineNumbers" toml:"lineNumbers"`
	Theme          string            `json:"theme" toml:"theme"`
	ShowExplorer   bool              `json:"showExplorer" toml:"showExplorer"`
	ExplorerWidth  int               `json:"explorerWidth" toml:"explorerWidth"`
	ExplorerIgnore []string          `json:"explorerIgnore" toml:"explorerIgnore"`
	TrimFiles      bool              `json:"trimFiles" toml:"trimFiles"`
	Keybindings    map[string]string `json:"keybindings" toml:"keybindings"`
}

func (e EditorConfig) clone() EditorConfig {
	e.ExplorerIgnore = slices.Clone(e.ExplorerIgnore)
	e.Keybindings = maps.Clone(e.Keybindings)
	return e
}

type Config struct {
	log     *log.Logger
	dir     string
	watcher *fsnotify.Watcher

	mu           sync.Mutex
	editorConfig EditorConfig
	onChange     func(EditorConfig)
}

// Dir is the configuration directory: $XDG_CONFIG_HOME/goditor or ~/.goditor.
func Dir() string {
	if os.Getenv("XDG_CONFIG_HOME") == "" {
		return filepath.Join(os.Getenv("HOME"), ".goditor")
	}
	return filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "goditor")
}

func NewConfig(log *log.Logger, dir string) *Config {
	return &Config{log: log, dir: dir}
}

// Defaults returns the embedded configuration.
func Defaults() EditorConfig {
	content, err := fs.ReadFile(config, confName)
	if err != nil {
		panic("Invariance: embedded config missing: " + err.Error())
	}
	var cfg EditorConfig
	if err := json.Unmarshal(content, &cfg); err != nil {
		panic("Invariance: embedded config invalid: " + err.Error())
	}
	return cfg
}

// Init writes the default config file if there is none and loads the config.
func (cfg *Config) Init() error {
	if err := cfg.writeConfigIfMissing(); err != nil {
		return err
	}
	return cfg.reload()
}

// Editor returns a copy of the current settings.
func (cfg *Config) Editor() EditorConfig {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	return cfg.editorConfig.clone()
}

// OnChange registers a callback that runs, on the watcher goroutine, after every reload.
func (cfg *Config) OnChange(f func(EditorConfig)) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.onChange = f
}

func (cfg *Config) writeConfigIfMissing() error {
	confFile := filepath.Join(cfg.dir, confName)
	if _, err := os.Stat(confFile); err == nil {
		return nil
	}

	content, err := fs.ReadFile(config, confName)
	if err != nil {
		return fmt.Errorf("reading embedded config: %w", err)
	}
	if err := os.MkdirAll(cfg.dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(confFile, content, 0664); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	cfg.log.Printf("Wrote default config to %v", confFile)
	return nil
}

// load reads the defaults, then config.json, then config.toml on top.
func (cfg *Config) load() (EditorConfig, error) {
	editorConfig := Defaults()

	content, err := os.ReadFile(filepath.Join(cfg.dir, confName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return editorConfig, fmt.Errorf("reading %s: %w", confName, err)
	}
	if len(bytes.TrimSpace(content)) > 0 {
		if err := json.Unmarshal(content, &editorConfig); err != nil {
			return editorConfig, fmt.Errorf("parsing %s: %w", confName, err)
		}
	}

	content, err = os.ReadFile(filepath.Join(cfg.dir, overlayName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return editorConfig, fmt.Errorf("reading %s: %w", overlayName, err)
	}
	if len(content) > 0 {
		if err := toml.Unmarshal(content, &editorConfig); err != nil {
			return editorConfig, fmt.Errorf("parsing %s: %w", overlayName, err)
		}
	}

	switch editorConfig.LineNumbers {
	case LineAbsolute, LineRelative, LineOff:
	default:
		cfg.log.Printf("Unknown lineNumbers %q, using %s", editorConfig.LineNumbers, LineAbsolute)
		editorConfig.LineNumbers = LineAbsolute
	}
	if editorConfig.ExplorerWidth <= 0 {
		editorConfig.ExplorerWidth = Defaults().ExplorerWidth
	}
	return editorConfig, nil
}

func (cfg *Config) reload() error {
	editorConfig, err := cfg.load()
	if err != nil {
		return err
	}

	cfg.mu.Lock()
	cfg.editorConfig = editorConfig
	onChange := cfg.onChange
	cfg.mu.Unlock()

	if onChange != nil {
		onChange(editorConfig.clone())
	}
	return nil
}

// Watch reloads the config whenever a file in the config directory is written.
// A config that fails to load keeps the previous settings.
func (cfg *Config) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	if err := watcher.Add(cfg.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching config directory: %w", err)
	}
	cfg.watcher = watcher

	go cfg.rereadConfigOnFileChange(watcher)
	return nil
}

func (cfg *Config) rereadConfigOnFileChange(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if name != confName && name != overlayName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := cfg.reload(); err != nil {
				cfg.log.Printf("Could not reload config: %v", err)
				continue
			}
			cfg.log.Printf("Reloaded config after %v", event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cfg.log.Printf("Config watcher error: %v", err)
		}
	}
}

func (cfg *Config) Close() error {
	if cfg.watcher == nil {
		return nil
	}
	return cfg.watcher.Close()
}
