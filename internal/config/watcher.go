// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// DefaultDebounce is how long the watcher waits after the last write before
// reloading. Editors often save in several steps.
const DefaultDebounce = 250 * time.Millisecond

// Reload is delivered by a Watcher after a config file changed.
// Exactly one of Config and Err is set.
type Reload struct {
	Config *Config
	Err    error
}

// Watcher reloads configuration when config.toml or config.json in a
// directory changes.
type Watcher struct {
	dir      string
	load     func() (*Config, error)
	watcher  *fsnotify.Watcher
	debounce time.Duration
	updates  chan Reload

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher watches the default config directory and reloads with Load.
func NewWatcher() (*Watcher, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}
	return NewWatcherFor(dir, Load, DefaultDebounce)
}

// NewWatcherFor watches dir and calls load after each debounced change.
func NewWatcherFor(dir string, load func() (*Config, error), debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		load:     load,
		watcher:  fw,
		debounce: debounce,
		updates:  make(chan Reload, 1),
		ctx:      ctx,
		cancel:   cancel,
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates returns the channel of reload results. It is closed by Close.
func (w *Watcher) Updates() <-chan Reload {
	return w.updates
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.updates)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isConfigFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

		case <-fire:
			fire = nil
			cfg, err := w.load()
			if err != nil {
				cfg = nil
			}
			w.publish(Reload{Config: cfg, Err: err})
		}
	}
}

// publish keeps only the newest result when the consumer lags behind.
func (w *Watcher) publish(r Reload) {
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- r:
	case <-w.ctx.Done():
	}
}

func isConfigFile(name string) bool {
	base := filepath.Base(name)
	return base == "config.toml" || base == "config.json"
}
