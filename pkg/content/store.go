package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for writes to settle before
// reloading.
const DefaultDebounce = 200 * time.Millisecond

// Store holds the live site content. Readers always see a complete Site.
type Store struct {
	mu       sync.RWMutex
	site     *Site
	logger   *slog.Logger
	debounce time.Duration
	onReload []func(*Site)
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for reload reports.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithReloadHook registers fn to run after every successful reload.
func WithReloadHook(fn func(*Site)) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.onReload = append(s.onReload, fn)
		}
	}
}

// NewStore returns a store serving site.
func NewStore(site *Site, opts ...StoreOption) *Store {
	s := &Store{
		site:     site,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Site returns the current content.
func (s *Store) Site() *Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// Replace swaps the current content.
func (s *Store) Replace(site *Site) {
	if site == nil {
		return
	}
	s.mu.Lock()
	s.site = site
	hooks := append([]func(*Site){}, s.onReload...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(site)
	}
}

// LoadDir reads DefaultFile from dir and replaces the current content. The
// previous content stays in place when the file is invalid.
func (s *Store) LoadDir(dir string) error {
	site, err := Load(os.DirFS(dir), DefaultFile)
	if err != nil {
		return err
	}
	s.Replace(site)
	return nil
}

// Watch reloads content from dir whenever DefaultFile changes, until ctx is
// done. Invalid edits are logged and ignored.
func (s *Store) Watch(ctx context.Context, dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: create watcher: %w", err)
	}
	defer fsw.Close()

	// Editors often replace files by rename, so watch the directory.
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("content: watch %s: %w", dir, err)
	}
	s.logger.Info("content watcher started", "dir", dir, "debounce", s.debounce)

	target := filepath.Join(dir, DefaultFile)
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			pending = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("content watcher error", "error", err)

		case <-pending:
			pending = nil
			if err := s.LoadDir(dir); err != nil {
				s.logger.Warn("content reload rejected", "dir", dir, "error", err)
				continue
			}
			s.logger.Info("content reloaded", "dir", dir)
		}
	}
}
