package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const docExt = ".json"

// Dir stores every document as <key>.json in a directory. Writes go through a
// temporary file renamed over the target so readers never see a torn document.
type Dir struct {
	path string
	subs subscribers

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// OpenDir creates the directory if needed.
func OpenDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory holding the documents.
func (d *Dir) Path() string { return d.path }

func (d *Dir) file(key string) string { return filepath.Join(d.path, key+docExt) }

func (d *Dir) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.file(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

func (d *Dir) Set(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	target := d.file(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write temp file for %q: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace %q: %w", key, err)
	}
	return nil
}

// Subscribe watches the directory with fsnotify, so changes made by other
// processes are reported too. The watcher starts with the first subscriber.
func (d *Dir) Subscribe(fn func(key string)) func() {
	cancel := d.subs.add(fn)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.watcher != nil {
		return cancel
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("cannot watch data dir", "path", d.path, "err", err)
		return cancel
	}
	if err := w.Add(d.path); err != nil {
		slog.Warn("cannot watch data dir", "path", d.path, "err", err)
		w.Close()
		return cancel
	}
	d.watcher = w
	go d.watch(w)
	return cancel
}

func (d *Dir) watch(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, docExt) {
				continue
			}
			d.subs.notify(strings.TrimSuffix(name, docExt))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("data dir watcher", "path", d.path, "err", err)
		}
	}
}

func (d *Dir) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.watcher == nil {
		return nil
	}
	err := d.watcher.Close()
	d.watcher = nil
	return err
}
