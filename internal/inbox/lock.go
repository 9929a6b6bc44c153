package inbox

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"renamer/internal/errors"
	"renamer/internal/log"
)

const pidFile = "renamer.pid"

// ErrLocked is returned by Acquire when a live process holds the lock
var ErrLocked = errors.New("another renamer instance is running")

// Lock is a pid file that marks the instance receiving forwarded selections
type Lock struct {
	path string
	held bool
}

// NewLock returns the lock for the inbox dir
func NewLock(dir string) *Lock {
	return &Lock{path: filepath.Join(dir, pidFile)}
}

// Path returns the pid file location
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock. A pid file left by a dead process is reclaimed.
func (l *Lock) Acquire() error {
	if l.held {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return errors.NewFileError("failed to create inbox", filepath.Dir(l.path), errors.FilesystemError, err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(l.path)
				return fmt.Errorf("failed to write PID: %v", errors.Join(werr, cerr))
			}
			l.held = true
			return nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return errors.NewFileError("failed to create PID file", l.path, errors.FilesystemError, err)
		}

		pid, err := readPID(l.path)
		if err == nil && processAlive(pid) {
			return ErrLocked
		}
		log.LogWithFields(log.F("file", l.path)).Info("reclaiming stale pid file")
		if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.NewFileError("failed to remove stale PID file", l.path, errors.FilesystemError, err)
		}
	}
	return ErrLocked
}

// Release removes the pid file if this Lock holds it
func (l *Lock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Held reports whether this Lock owns the pid file
func (l *Lock) Held() bool {
	return l.held
}

// HolderPID returns the pid recorded in dir's pid file
func HolderPID(dir string) (int, error) {
	return readPID(filepath.Join(dir, pidFile))
}

// Running returns the pid of the live process holding dir's lock
func Running(dir string) (int, bool) {
	pid, err := HolderPID(dir)
	if err != nil || !processAlive(pid) {
		return 0, false
	}
	return pid, true
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file %s: %w", path, err)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return p.Signal(syscall.Signal(0)) == nil
}
