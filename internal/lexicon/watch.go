package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reloads a vocabulary file when it changes on disk and hands each
// successfully loaded Lexicon to onChange. A file that fails to load is
// logged and the previous tables stay in effect.
type Watcher struct {
	path     string
	onChange func(*Lexicon)
	logger   *slog.Logger
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

func NewWatcher(path string, onChange func(*Lexicon), logger *slog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("vocabulary watcher: path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger,
		debounce: defaultDebounce,
		fsw:      fsw,
	}, nil
}

// Start watches the file's directory, so editors that replace the file by
// rename are still seen. Events are processed until ctx is done or Stop.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	go w.loop(ctx)
	w.logger.Info("vocabulary watcher started", "path", w.path)
	return nil
}

func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("vocabulary watcher error", "error", err)
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	lex, err := Load(w.path)
	if err != nil {
		w.logger.Warn("vocabulary reload failed, keeping previous tables", "path", w.path, "error", err)
		return
	}
	w.logger.Info("vocabulary reloaded", "path", w.path)
	w.onChange(lex)
}
