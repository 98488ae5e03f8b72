// Package handlers adapts the domain services to the command surface.
package handlers

import (
	"context"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/services"
)

// CharacterHandler handles character operations.
type CharacterHandler struct {
	store *services.StoreService
}

// NewCharacterHandler creates a new CharacterHandler.
func NewCharacterHandler(store *services.StoreService) *CharacterHandler {
	return &CharacterHandler{store: store}
}

// HandleCreate creates a character in a story.
func (h *CharacterHandler) HandleCreate(ctx context.Context, storyID, name string, attrs entities.CharacterAttrs) (*entities.Character, error) {
	return h.store.Create(ctx, storyID, name, attrs)
}

// HandleGet returns a character by ID.
func (h *CharacterHandler) HandleGet(ctx context.Context, id string) (*entities.Character, error) {
	return h.store.Get(ctx, id)
}

// HandleUpdate applies a partial attribute change.
func (h *CharacterHandler) HandleUpdate(ctx context.Context, id string, attrs entities.CharacterAttrs) (*entities.Character, error) {
	return h.store.Update(ctx, id, attrs)
}

// HandleList returns a story's characters in creation order.
func (h *CharacterHandler) HandleList(ctx context.Context, storyID string) ([]entities.Character, error) {
	return h.store.List(ctx, storyID)
}

// HandleDelete removes a character and cascades to its edges and view
// layout entries.
func (h *CharacterHandler) HandleDelete(ctx context.Context, id string) error {
	return h.store.Delete(ctx, id)
}
