package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is delivered by a Watcher each time the watched file changes.
// Err is set when the new contents failed to load; Config then holds defaults.
type Reload struct {
	Config RunnerConfig
	Err    error
}

// Watcher reloads a config file whenever it is written or replaced.
// Editors often replace files via rename, so the parent directory is watched
// and events are filtered by name.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Reloads chan Reload
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		Reloads: make(chan Reload, 4),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Reloads.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// debounce collapses the burst of events editors emit for one save.
const debounce = 100 * time.Millisecond

func (w *Watcher) run() {
	defer close(w.Reloads)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			cfg, err := LoadFile(w.path)
			select {
			case w.Reloads <- Reload{Config: cfg, Err: err}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Reloads <- Reload{Config: DefaultRunnerConfig(), Err: err}:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}
