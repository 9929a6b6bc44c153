// Package rename performs the filesystem side of a batch: it walks a preview
// in order and renames every changed entry, continuing past failures.
package rename

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"renamer/internal/errors"
	"renamer/internal/fsys"
	"renamer/internal/log"
	"renamer/pkg/types"
)

// Outcome is the result of one Execute call
type Outcome = types.RenameOutcome

// Executor renames files described by preview entries
type Executor struct {
	fs     fsys.FS
	dryRun bool
	mu     sync.Mutex // one batch at a time
	log    *log.Logger
}

// Option configures an Executor
type Option func(*Executor)

// WithFS sets the filesystem (the OS by default)
func WithFS(fs fsys.FS) Option {
	return func(e *Executor) { e.fs = fs }
}

// WithDryRun makes Execute report what it would do without renaming
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) { e.dryRun = dryRun }
}

// New creates an Executor
func New(opts ...Option) *Executor {
	e := &Executor{
		fs:  fsys.NewOS(),
		log: log.Component("rename"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetDryRun sets whether renames are performed or only simulated
func (e *Executor) SetDryRun(dryRun bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dryRun = dryRun
}

// IsDryRun returns whether the executor only simulates renames
func (e *Executor) IsDryRun() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dryRun
}

// Execute renames every changed entry in order. Unchanged entries are skipped
// and not counted. Failures are recorded as "<originalName>: <reason>" and
// the batch continues; nothing is rolled back.
//
// NewFilePaths has one element per entry: the destination for renamed
// entries, the original path otherwise.
func (e *Executor) Execute(entries []types.PreviewEntry) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := Outcome{
		Errors:       []string{},
		NewFilePaths: make([]string, 0, len(entries)),
	}
	var sim *overlay
	if e.dryRun {
		sim = newOverlay(e.fs)
	}

	for _, entry := range entries {
		if !entry.HasChanged {
			out.NewFilePaths = append(out.NewFilePaths, entry.OriginalPath)
			continue
		}

		dest, err := e.renameEntry(entry, sim)
		if err != nil {
			out.FailureCount++
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", entry.OriginalName, reason(err)))
			out.NewFilePaths = append(out.NewFilePaths, entry.OriginalPath)
			l := e.log.WithError(err).With(log.F("file", entry.OriginalPath), log.F("target", entry.NewName))
			if errors.IsTargetExists(err) {
				l.Info("rename skipped, target exists")
			} else {
				l.Warn("rename failed")
			}
			continue
		}
		out.SuccessCount++
		out.NewFilePaths = append(out.NewFilePaths, dest)
	}

	e.log.With(
		log.F("renamed", out.SuccessCount),
		log.F("failed", out.FailureCount),
		log.F("dry_run", e.dryRun),
	).Info("batch finished")
	return out
}

func (e *Executor) renameEntry(entry types.PreviewEntry, sim *overlay) (string, error) {
	if why := InvalidNameReason(entry.NewName); why != "" {
		return "", errors.NewFileError("invalid target name: "+why, entry.NewName, errors.InvalidTargetName, nil)
	}

	src := filepath.Clean(entry.OriginalPath)
	dest := filepath.Join(filepath.Dir(src), entry.NewName)

	if sim != nil {
		if err := sim.rename(src, dest); err != nil {
			return "", err
		}
		e.log.With(log.F("file", src), log.F("target", dest)).Info("would rename")
		return dest, nil
	}

	if err := e.checkDestination(src, dest); err != nil {
		return "", err
	}
	e.log.With(log.F("file", src), log.F("target", dest)).Debug("renaming")
	if err := e.fs.Rename(src, dest); err != nil {
		return "", errors.NewFileError("rename failed", src, errors.FilesystemError, err)
	}
	return dest, nil
}

// checkDestination rejects dest when something other than src lives there.
// A case-only rename on a case-insensitive filesystem stats dest as src itself.
func (e *Executor) checkDestination(src, dest string) error {
	destInfo, err := e.fs.Lstat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.NewFileError("cannot check destination", dest, errors.FilesystemError, err)
	}
	srcInfo, err := e.fs.Lstat(src)
	if err == nil && e.fs.SameFile(srcInfo, destInfo) {
		return nil
	}
	return errors.NewFileError("target already exists", dest, errors.TargetExists, nil)
}

// reason renders err the way it appears after "<originalName>: "
func reason(err error) string {
	var fe *errors.FileError
	if !errors.As(err, &fe) {
		return err.Error()
	}
	if cause := errors.Unwrap(fe); cause != nil && fe.Kind() == errors.FilesystemError {
		return cause.Error()
	}
	return fe.Message()
}

// InvalidNameReason returns why name cannot be used as a base name, or ""
func InvalidNameReason(name string) string {
	switch {
	case name == "":
		return "empty name"
	case name == "." || name == "..":
		return "reserved name"
	case strings.ContainsRune(name, 0):
		return "contains NUL"
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return "contains path separator"
	}
	return ""
}

// overlay tracks simulated renames so a dry run reports the same collisions
// a real batch would hit
type overlay struct {
	fs     fsys.FS
	exists map[string]bool
}

func newOverlay(fs fsys.FS) *overlay {
	return &overlay{fs: fs, exists: make(map[string]bool)}
}

func (o *overlay) has(path string) bool {
	if v, ok := o.exists[path]; ok {
		return v
	}
	return fsys.Exists(o.fs, path)
}

func (o *overlay) rename(src, dest string) error {
	if !o.has(src) {
		return errors.NewFileError("rename failed", src, errors.FilesystemError, fs.ErrNotExist)
	}
	if o.has(dest) {
		srcInfo, err1 := o.fs.Lstat(src)
		destInfo, err2 := o.fs.Lstat(dest)
		if err1 != nil || err2 != nil || !o.fs.SameFile(srcInfo, destInfo) {
			return errors.NewFileError("target already exists", dest, errors.TargetExists, nil)
		}
	}
	o.exists[src] = false
	o.exists[dest] = true
	return nil
}
