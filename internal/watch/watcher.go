// Package watch reloads a site configuration whenever its file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 500 * time.Millisecond

// Loader produces a fresh Site from the watched file.
type Loader func() (*config.Site, error)

// Handler receives every successfully loaded Site whose fingerprint differs from the previous one.
type Handler func(ctx context.Context, site *config.Site) error

// Option tunes a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits after the last event before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounceTime = d }
}

// WithMetrics records reload outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(w *Watcher) { w.metrics = m }
}

// WithPollInterval also schedules a reload every d, for file systems where
// change notifications are unreliable (network mounts, some container volumes).
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// Watcher monitors a configuration file and hands each new valid Site to a Handler.
// A Site that fails to load is logged and the previous Site stays current.
type Watcher struct {
	configPath   string
	load         Loader
	handle       Handler
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	reloadMu     sync.Mutex
	stopChan     chan struct{}
	reloadChan   chan struct{}
	debounceTime time.Duration
	pollInterval time.Duration
	scheduler    gocron.Scheduler
	metrics      *Metrics
	stopped      bool

	current atomic.Pointer[config.Site]
	reloads atomic.Int64
}

// New creates a Watcher for configPath. Nothing is watched until Start.
func New(configPath string, load Loader, handle Handler, opts ...Option) (*Watcher, error) {
	if load == nil || handle == nil {
		return nil, errors.New("watch: loader and handler are required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Resolve absolute path for consistent watching
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	w := &Watcher{
		configPath:   absPath,
		load:         load,
		handle:       handle,
		watcher:      fw,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start loads the configuration once, hands it to the Handler and begins watching.
// The initial load must succeed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.performReload(ctx); err != nil {
		return err
	}

	// Watch the directory: editors replace files by rename, which drops a file watch.
	configDir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}

	if w.pollInterval > 0 {
		if err := w.startPolling(); err != nil {
			return err
		}
	}

	slog.Info("Starting configuration watcher", logfields.Path(w.configPath))

	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true

	slog.Info("Stopping configuration watcher", logfields.Path(w.configPath))
	close(w.stopChan)
	if w.scheduler != nil {
		if err := w.scheduler.Shutdown(); err != nil {
			slog.Error("Error stopping poll scheduler", logfields.Error(err))
		}
	}
	return w.watcher.Close()
}

func (w *Watcher) startPolling() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if _, err := s.NewJob(
		gocron.DurationJob(w.pollInterval),
		gocron.NewTask(w.triggerReload),
		gocron.WithName("config-poll"),
	); err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to schedule config polling: %w", err)
	}
	s.Start()
	w.scheduler = s
	slog.Debug("Polling configuration", logfields.Path(w.configPath), slog.Duration("interval", w.pollInterval))
	return nil
}

// Current returns the most recently accepted Site, or nil before Start.
func (w *Watcher) Current() *config.Site {
	return w.current.Load()
}

// Reloads counts the Sites handed to the Handler, including the initial one.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	configFile := filepath.Base(w.configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != configFile {
				continue
			}

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Config file change detected", logfields.Path(event.Name), logfields.Event(event.Op.String()))
				w.triggerReload()
			case event.Has(fsnotify.Remove):
				slog.Warn("Config file removed", logfields.Path(event.Name))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop handles debounced configuration reloads
func (w *Watcher) reloadLoop(ctx context.Context) {
	var reloadTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			return
		case <-w.stopChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			return
		case <-w.reloadChan:
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(w.debounceTime, func() {
				if err := w.performReload(ctx); err != nil {
					slog.Error("Failed to reload configuration", logfields.Path(w.configPath), logfields.Error(err))
				}
			})
		}
	}
}

func (w *Watcher) triggerReload() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
		// Reload already pending
	}
}

// performReload loads the file and hands the result on when it changed.
func (w *Watcher) performReload(ctx context.Context) error {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	start := time.Now()
	reloadID := uuid.NewString()
	site, err := w.load()
	if err != nil {
		w.metrics.observe(ResultFailed, start)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fp := site.Fingerprint()
	if prev := w.current.Load(); prev != nil && prev.Fingerprint() == fp {
		w.metrics.observe(ResultUnchanged, start)
		slog.Debug("Configuration unchanged", logfields.ReloadID(reloadID), logfields.Path(w.configPath), logfields.Fingerprint(fp))
		return nil
	}

	if err := w.handle(ctx, site); err != nil {
		w.metrics.observe(ResultFailed, start)
		return fmt.Errorf("failed to apply configuration: %w", err)
	}
	w.current.Store(site)
	w.reloads.Add(1)
	w.metrics.observe(ResultApplied, start)

	slog.Info("Configuration loaded",
		logfields.ReloadID(reloadID),
		logfields.Path(w.configPath),
		logfields.Fingerprint(fp),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}
