// Package watcher reloads the subject file when it changes on disk.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/regexlens/internal/log"
)

// Update is the subject file's content after a change. Err is set when the
// file could not be read.
type Update struct {
	Path    string
	Content string
	Err     error
}

// Watcher monitors the subject file and sends its new content after changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	updates   chan Update
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 100 * time.Millisecond,
	}
}

// New creates a new subject file watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      cfg.Path,
		debounce:  cfg.Debounce,
		updates:   make(chan Update, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory. Watching the directory rather
// than the file survives editors that save by renaming a temp file over it.
// The returned channel is closed after Stop.
func (w *Watcher) Start() (<-chan Update, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	log.Debug(log.CatWatcher, "Watching subject", "path", w.path, "debounce", w.debounce)
	go w.loop()

	return w.updates, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	defer close(w.updates)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			update := Load(w.path)
			if update.Err != nil {
				log.ErrorErr(log.CatWatcher, "Reloading subject failed", update.Err, "path", w.path)
			}

			// Keep only the newest content if the reader is behind
			select {
			case <-w.updates:
			default:
			}
			select {
			case w.updates <- update:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a reload.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == filepath.Clean(w.path) ||
		filepath.Base(event.Name) == filepath.Base(w.path) && filepath.Dir(event.Name) == filepath.Dir(w.path)
}

// Load reads the subject file.
func Load(path string) Update {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's subject file
	if err != nil {
		return Update{Path: path, Err: fmt.Errorf("reading subject: %w", err)}
	}
	return Update{Path: path, Content: string(data)}
}

// ListenCmd creates a Bubble Tea command that waits for the next update.
// Returns nil if the context is cancelled or the channel is closed.
func ListenCmd(ctx context.Context, ch <-chan Update) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-ch:
			if !ok {
				return nil
			}
			return update
		}
	}
}
