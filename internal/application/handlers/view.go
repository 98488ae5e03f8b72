package handlers

import (
	"context"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/services"
)

// ViewHandler handles view and layout operations. Interactive position
// updates go through the autosaver so rapid edits coalesce into one write;
// everything else commits synchronously.
type ViewHandler struct {
	layouts   *services.LayoutService
	autosaver *services.LayoutAutoSaver
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(layouts *services.LayoutService, autosaver *services.LayoutAutoSaver) *ViewHandler {
	return &ViewHandler{
		layouts:   layouts,
		autosaver: autosaver,
	}
}

// HandleCreate creates a view seeded with the default grid layout.
func (h *ViewHandler) HandleCreate(ctx context.Context, storyID, name string, kind entities.ViewKind) (*entities.View, error) {
	return h.layouts.CreateView(ctx, storyID, name, kind)
}

// HandleList returns a story's views.
func (h *ViewHandler) HandleList(ctx context.Context, storyID string) ([]entities.View, error) {
	return h.layouts.Views(ctx, storyID)
}

// HandleLoadLayout returns a view's positions, with grid slots assigned to
// characters created after the last save.
func (h *ViewHandler) HandleLoadLayout(ctx context.Context, viewID string) (entities.Layout, error) {
	return h.layouts.LoadLayout(ctx, viewID)
}

// HandleSaveLayout replaces a view's layout immediately.
func (h *ViewHandler) HandleSaveLayout(ctx context.Context, viewID string, layout entities.Layout) error {
	return h.layouts.SaveLayout(ctx, viewID, layout)
}

// HandleBufferLayout buffers a layout for debounced persistence during
// interactive repositioning.
func (h *ViewHandler) HandleBufferLayout(viewID string, layout entities.Layout) {
	h.autosaver.Update(viewID, layout)
}

// HandleFlush commits any buffered layout writes synchronously. Called on
// view switch and shutdown.
func (h *ViewHandler) HandleFlush(ctx context.Context) error {
	return h.autosaver.Flush(ctx)
}

// HandleReset recomputes the deterministic grid layout for a view.
func (h *ViewHandler) HandleReset(ctx context.Context, viewID string) (entities.Layout, error) {
	return h.layouts.ResetToGrid(ctx, viewID)
}
