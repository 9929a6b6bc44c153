// Package engine is the facade over pattern compilation, preview and batch
// execution. It owns the current selection and the last preview and records
// successful batches in the history store.
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"renamer/internal/errors"
	"renamer/internal/fsys"
	"renamer/internal/history"
	"renamer/internal/log"
	"renamer/internal/preview"
	"renamer/internal/rename"
	"renamer/internal/selection"
	"renamer/pkg/types"
)

// Re-exported so callers only need this package
var (
	ErrNoPreview         = errors.ErrNoPreview
	ErrNothingToDo       = errors.ErrNothingToDo
	ErrExecuteInProgress = errors.ErrExecuteInProgress
	ErrSuperseded        = errors.ErrSuperseded
)

// PreviewResult is delivered by PreviewAsync
type PreviewResult struct {
	Set preview.Set
	Err error
}

// Engine coordinates one rename workflow. All methods are safe for
// concurrent use; Execute calls never interleave.
type Engine struct {
	mu         sync.Mutex
	selection  []string
	initial    []string
	hasInitial bool
	state      State
	last       *preview.Set
	selGen     uint64
	cancel     context.CancelFunc

	// seq numbers preview requests and selection changes; only the newest
	// request's result is applied
	seq atomic.Uint64

	execMu   sync.Mutex
	history  *history.Store
	executor *rename.Executor
	filter   *selection.Filter
	log      *log.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithExecutor replaces the default OS-backed executor
func WithExecutor(x *rename.Executor) Option {
	return func(e *Engine) { e.executor = x }
}

// WithFS runs renames against fs
func WithFS(fs fsys.FS) Option {
	return func(e *Engine) { e.executor = rename.New(rename.WithFS(fs)) }
}

// WithFilter drops selected paths the filter rejects
func WithFilter(f *selection.Filter) Option {
	return func(e *Engine) { e.filter = f }
}

// New creates an Engine. A nil store keeps history in memory only.
func New(store *history.Store, opts ...Option) *Engine {
	e := &Engine{
		history: store,
		log:     log.Component("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = history.NewMemoryStore()
	}
	if e.executor == nil {
		e.executor = rename.New()
	}
	return e
}

// SetSelection replaces the selection with paths, in order. It is the single
// ingestion point for startup arguments and forwarded selections alike.
// The current preview is discarded and in-flight previews are superseded.
func (e *Engine) SetSelection(paths []string) {
	paths = e.filter.Apply(paths)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq.Add(1)
	e.cancelPending()
	e.selection = paths
	e.selGen++
	e.last = nil
	if !e.hasInitial {
		e.initial = append([]string(nil), paths...)
		e.hasInitial = true
	}
	if len(paths) == 0 {
		e.state = Idle
	} else {
		e.state = Selected
	}
	e.log.With(log.F("files", len(paths))).Debug("selection replaced")
}

// Selection returns a copy of the current selection
func (e *Engine) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.selection...)
}

// InitialSelection returns the first selection the engine received
func (e *Engine) InitialSelection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.initial...)
}

// State returns the current workflow state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Preview computes the preview of spec over the current selection and makes
// it the last preview. An invalid pattern is not fatal: the all-unchanged
// set is applied and returned together with the *errors.PatternError.
// When a newer preview or selection arrived meanwhile the result is
// discarded and ErrSuperseded returned.
func (e *Engine) Preview(ctx context.Context, spec types.TransformSpec) (preview.Set, error) {
	seq := e.seq.Add(1)
	return e.preview(ctx, seq, spec)
}

func (e *Engine) preview(ctx context.Context, seq uint64, spec types.TransformSpec) (preview.Set, error) {
	e.mu.Lock()
	entries := types.EntriesFromPaths(e.selection)
	e.mu.Unlock()

	set, err := preview.Generate(ctx, entries, spec)
	if err != nil && !errors.IsInvalidPattern(err) {
		return preview.Set{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq.Load() {
		return set, ErrSuperseded
	}
	e.last = set.Clone()
	if len(e.selection) > 0 {
		e.state = Previewed
	}
	if err != nil {
		e.log.WithError(err).Debug("pattern rejected, preview unchanged")
	}
	return set, err
}

// PreviewAsync cancels any preview still running from an earlier
// PreviewAsync call and computes spec in the background. The channel
// receives exactly one result and is then closed.
func (e *Engine) PreviewAsync(ctx context.Context, spec types.TransformSpec) <-chan PreviewResult {
	out := make(chan PreviewResult, 1)

	child, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancelPending()
	e.cancel = cancel
	// taken with the cancel func installed so the newest request holds the
	// highest seq
	seq := e.seq.Add(1)
	e.mu.Unlock()

	go func() {
		defer close(out)
		defer cancel()
		set, err := e.preview(child, seq, spec)
		// cancelled by a newer request rather than by the caller
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			err = ErrSuperseded
		}
		out <- PreviewResult{Set: set, Err: err}
	}()
	return out
}

// cancelPending must be called with mu held
func (e *Engine) cancelPending() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// LastPreview returns a copy of the preview Execute would run
func (e *Engine) LastPreview() (preview.Set, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return preview.Set{}, false
	}
	return *e.last.Clone(), true
}

// Execute renames the changed entries of the last preview.
//
// It returns ErrNoPreview when no preview of the current selection exists,
// ErrNothingToDo (with an empty outcome) when the preview changes nothing,
// and ErrExecuteInProgress when another Execute is running. Per-file
// failures are reported in the outcome, never as an error.
//
// On success the selection becomes the outcome's NewFilePaths, unless the
// selection was replaced while the batch ran. A batch with at least one
// successful rename is recorded in history.
func (e *Engine) Execute(ctx context.Context) (rename.Outcome, error) {
	if !e.execMu.TryLock() {
		return rename.Outcome{}, ErrExecuteInProgress
	}
	defer e.execMu.Unlock()

	if err := ctx.Err(); err != nil {
		return rename.Outcome{}, err
	}

	e.mu.Lock()
	if e.last == nil {
		e.mu.Unlock()
		return rename.Outcome{}, ErrNoPreview
	}
	last := *e.last
	gen := e.selGen
	e.mu.Unlock()

	if last.ChangedCount() == 0 {
		return rename.Outcome{Errors: []string{}, NewFilePaths: last.Paths()}, ErrNothingToDo
	}

	out := e.executor.Execute(last.Entries)
	if e.executor.IsDryRun() {
		return out, nil
	}

	if out.SuccessCount > 0 {
		if err := e.history.Record(last.Spec); err != nil {
			e.log.WithError(err).Warn("could not record history")
		}
	}

	e.mu.Lock()
	if gen == e.selGen {
		e.seq.Add(1)
		e.selection = append([]string(nil), out.NewFilePaths...)
		e.last = nil
		e.state = Executed
	}
	e.mu.Unlock()

	e.log.With(
		log.F("renamed", out.SuccessCount),
		log.F("failed", out.FailureCount),
		log.F("spec", last.Spec.String()),
	).Info("batch executed")
	return out, nil
}

// History returns the stored transformations, most recent first
func (e *Engine) History() []types.HistoryEntry {
	return e.history.List()
}

// AddToHistory records spec without executing it. Storage failures are
// logged, the in-memory history is still updated.
func (e *Engine) AddToHistory(spec types.TransformSpec) {
	if err := e.history.Record(spec); err != nil {
		e.log.WithError(err).Warn("could not record history")
	}
}

// ClearHistory removes every history entry
func (e *Engine) ClearHistory() error {
	return e.history.Clear()
}

// Subscribe feeds every path list received on in through SetSelection until
// in is closed or ctx is done. The returned channel reports each selection
// as applied (after filtering) and is closed when the subscription ends.
func (e *Engine) Subscribe(ctx context.Context, in <-chan []string) <-chan []string {
	applied := make(chan []string, 1)
	go func() {
		defer close(applied)
		for {
			select {
			case <-ctx.Done():
				return
			case paths, ok := <-in:
				if !ok {
					return
				}
				e.SetSelection(paths)
				e.log.With(log.F("files", len(paths))).Info("selection forwarded")
				select {
				case applied <- e.Selection():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return applied
}
