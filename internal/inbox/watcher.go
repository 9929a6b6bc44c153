package inbox

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"renamer/internal/errors"
	"renamer/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers the selections dropped into an inbox directory
type Watcher struct {
	dir string

	// Channel delivering forwarded selections
	selections chan []string

	// Channel to signal stop
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
	stopped bool
	log     *log.Logger
}

// NewWatcher creates dir if needed and starts watching it. Messages are not
// delivered until Start.
func NewWatcher(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewFileError("failed to create inbox", dir, errors.FilesystemError, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing inbox: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to watch inbox %s", dir)
	}

	return &Watcher{
		dir:        dir,
		selections: make(chan []string, 10),
		fsWatcher:  fsWatcher,
		log:        log.Component("inbox").With(log.F("dir", dir)),
	}, nil
}

// Dir returns the watched directory
func (w *Watcher) Dir() string {
	return w.dir
}

// Selections returns the channel of forwarded path lists. It is closed by Stop.
func (w *Watcher) Selections() <-chan []string {
	return w.selections
}

// Start delivers messages already waiting in the inbox, oldest first, then
// every new one as it arrives
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		return fmt.Errorf("watcher stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop()
	w.log.Debug("inbox watcher started")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	for _, path := range w.pending() {
		if !w.consume(path) {
			return
		}
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isMessage(event.Name) {
				continue
			}
			if !w.consume(event.Name) {
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// pending lists waiting messages by modification time
func (w *Watcher) pending() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.log.WithError(err).Warn("cannot list inbox")
		return nil
	}
	type item struct {
		path string
		info fs.FileInfo
	}
	var items []item
	for _, e := range entries {
		if e.IsDir() || !isMessage(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, item{path: filepath.Join(w.dir, e.Name()), info: info})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].info.ModTime().Before(items[j].info.ModTime())
	})
	paths := make([]string, len(items))
	for i, it := range items {
		paths[i] = it.path
	}
	return paths
}

// consume reads, deletes and delivers one message. It returns false when the
// watcher was stopped while waiting to deliver.
func (w *Watcher) consume(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		// a duplicate event for a message already consumed
		if !errors.Is(err, fs.ErrNotExist) {
			w.log.WithError(err).With(log.F("file", path)).Warn("cannot read message")
		}
		return true
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.log.WithError(err).With(log.F("file", path)).Warn("cannot remove message")
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		w.log.WithError(err).With(log.F("file", path)).Warn("discarding malformed message")
		return true
	}
	if len(msg.Paths) == 0 {
		return true
	}

	w.log.With(log.F("id", msg.ID), log.F("files", len(msg.Paths))).Info("selection received")
	select {
	case w.selections <- msg.Paths:
		return true
	case <-w.stopChan:
		return false
	}
}

// Stop halts delivery and closes the Selections channel. A stopped Watcher
// cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true
	if w.running {
		close(w.stopChan)
	}
	if err := w.fsWatcher.Close(); err != nil {
		w.log.WithError(err).Error("error closing fsnotify watcher")
	}
	if w.running {
		<-w.done
		w.running = false
	}
	close(w.selections)
	w.log.Debug("inbox watcher stopped")
}
