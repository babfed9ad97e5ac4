// Package config persists the media center endpoint and reports changes to it.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/20after4/configdir"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

const (
	AppName        = "kodikey"
	configFileName = "config.toml"

	DefaultHost = "localhost"
	DefaultPort = 8080
	DefaultPath = "jsonrpc"
)

const (
	DaemonGnome    = "gnome"
	DaemonCinnamon = "cinnamon"
)

type Endpoint struct {
	Host string
	Port int
	Path string
}

type Config struct {
	Endpoint Endpoint
	// Daemon selects the settings daemon that owns the media keys.
	Daemon string
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint: Endpoint{
			Host: DefaultHost,
			Port: DefaultPort,
			Path: DefaultPath,
		},
		Daemon: DaemonGnome,
	}
}

func (c *Config) Validate() error {
	if c.Endpoint.Host == "" {
		return errors.New("endpoint host is empty")
	}
	if c.Endpoint.Port < 1 || c.Endpoint.Port > 65535 {
		return fmt.Errorf("endpoint port %d out of range", c.Endpoint.Port)
	}
	switch c.Daemon {
	case DaemonGnome, DaemonCinnamon:
	default:
		return fmt.Errorf("unknown daemon %q", c.Daemon)
	}
	return nil
}

// ErrEmptyConfig is returned for a config file with no content, which is also
// what a reader sees between an editor truncating the file and rewriting it.
var ErrEmptyConfig = errors.New("config file is empty")

// reloadDelay coalesces the burst of events a single save produces.
const reloadDelay = 100 * time.Millisecond

func DefaultFilePath() string {
	return filepath.Join(configdir.LocalConfig(AppName), configFileName)
}

func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyConfig
	}

	c := DefaultConfig()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) WriteConfigFile(path string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Provider owns the config file. It hands out the current Config and calls
// back whenever the file is edited.
type Provider struct {
	path string

	mu      sync.Mutex
	current Config
	watcher *fsnotify.Watcher
}

// Open loads path, writing the defaults first if the file does not exist.
func Open(path string) (*Provider, error) {
	if err := configdir.MakePath(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	c, err := ReadConfigFile(path)
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, ErrEmptyConfig) {
		c = DefaultConfig()
		if err := c.WriteConfigFile(path); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		log.Printf("Wrote default config to %s", path)
	} else if err != nil {
		return nil, err
	}

	return &Provider{path: path, current: *c}, nil
}

func (p *Provider) Path() string {
	return p.path
}

func (p *Provider) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Watch calls onChange with the new Config each time the file changes to a
// valid, different configuration. Events are coalesced for reloadDelay and an
// empty file is treated as a save in progress. Invalid edits are logged and
// skipped.
func (p *Provider) Watch(ctx context.Context, onChange func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are seen too.
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(p.path), err)
	}

	p.mu.Lock()
	p.watcher = w
	p.mu.Unlock()

	go p.watch(ctx, w, onChange)
	return nil
}

func (p *Provider) watch(ctx context.Context, w *fsnotify.Watcher, onChange func(Config)) {
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if c, changed := p.reload(); changed {
				onChange(c)
			}
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(p.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

func (p *Provider) reload() (Config, bool) {
	c, err := ReadConfigFile(p.path)
	if errors.Is(err, ErrEmptyConfig) {
		return Config{}, false
	}
	if err != nil {
		log.Printf("Ignoring config change: %v", err)
		return Config{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if *c == p.current {
		return p.current, false
	}
	p.current = *c
	return p.current, true
}

// Finalize stops watching the config file.
func (p *Provider) Finalize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher == nil {
		return nil
	}
	err := p.watcher.Close()
	p.watcher = nil
	return err
}
