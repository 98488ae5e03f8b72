package services

import (
	"context"
	"sync"
	"time"

	"github.com/inkvane/story-core/internal/domain/entities"
)

// DefaultAutosaveInterval is the idle period after the last position update
// before a buffered layout is committed.
const DefaultAutosaveInterval = 500 * time.Millisecond

// LayoutAutoSaver coalesces frequent position updates into debounced
// layout writes. Updates buffer in memory; a commit happens only after the
// idle interval passes with no further updates, and always writes the most
// recent buffered state. Flush commits synchronously and is called on view
// switch and shutdown so the final arrangement is never lost.
type LayoutAutoSaver struct {
	layouts  *LayoutService
	interval time.Duration

	mu      sync.Mutex
	pending map[string]entities.Layout // viewID -> latest buffered layout
	timer   *time.Timer
	lastErr error
}

// NewLayoutAutoSaver creates an autosaver committing through the given
// LayoutService. A non-positive interval falls back to the default.
func NewLayoutAutoSaver(layouts *LayoutService, interval time.Duration) *LayoutAutoSaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &LayoutAutoSaver{
		layouts:  layouts,
		interval: interval,
		pending:  make(map[string]entities.Layout),
	}
}

// Update buffers a full layout for a view and restarts the idle timer. The
// buffered map replaces any earlier buffer for the same view.
func (a *LayoutAutoSaver) Update(viewID string, layout entities.Layout) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending[viewID] = layout.Clone()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.interval, a.fire)
}

// Flush synchronously commits every buffered layout. Buffers are retained
// on failure so a later flush can retry; the first error is returned.
func (a *LayoutAutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	return a.commitLocked(ctx)
}

// Close flushes any pending writes. The autosaver must not be used after
// Close.
func (a *LayoutAutoSaver) Close() error {
	return a.Flush(context.Background())
}

// Err returns the error from the most recent background commit, if any.
func (a *LayoutAutoSaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// fire runs on timer expiry.
func (a *LayoutAutoSaver) fire() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = a.commitLocked(context.Background())
}

// commitLocked writes all buffered layouts. Caller must hold mu.
func (a *LayoutAutoSaver) commitLocked(ctx context.Context) error {
	var firstErr error
	for viewID, layout := range a.pending {
		if err := a.layouts.SaveLayout(ctx, viewID, layout); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delete(a.pending, viewID)
	}
	return firstErr
}
