package handlers

import (
	"context"
	"fmt"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/services"
)

// RelationshipHandler handles relationship operations.
type RelationshipHandler struct {
	graph    *services.GraphService
	registry *services.RegistryService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(graph *services.GraphService, registry *services.RegistryService) *RelationshipHandler {
	return &RelationshipHandler{
		graph:    graph,
		registry: registry,
	}
}

// CreateResult carries a created edge plus the inverse labels the caller
// may offer for confirmation. Suggestions are informational; nothing is
// applied unless the caller confirms.
type CreateResult struct {
	Edge        *entities.RelationshipEdge `json:"edge"`
	Suggestions []string                   `json:"suggestions,omitempty"`
}

// HandleCreate creates a relationship edge and returns it together with
// any inverse suggestions for the new edge.
func (h *RelationshipHandler) HandleCreate(ctx context.Context, storyID, sourceID, targetID, typeLabel string) (*CreateResult, error) {
	edge, err := h.graph.Create(ctx, storyID, sourceID, targetID, typeLabel)
	if err != nil {
		return nil, err
	}
	suggestions, err := h.graph.SuggestInverse(ctx, edge.ID)
	if err != nil {
		return nil, fmt.Errorf("suggesting inverse: %w", err)
	}
	return &CreateResult{Edge: edge, Suggestions: suggestions}, nil
}

// HandleSuggestInverse returns the inverse labels for an existing edge.
func (h *RelationshipHandler) HandleSuggestInverse(ctx context.Context, edgeID string) ([]string, error) {
	return h.graph.SuggestInverse(ctx, edgeID)
}

// HandleConfirmInverse creates the paired reverse edge with the chosen
// label.
func (h *RelationshipHandler) HandleConfirmInverse(ctx context.Context, edgeID, label string) (*entities.RelationshipEdge, error) {
	return h.graph.ConfirmInverse(ctx, edgeID, label)
}

// HandleDelete removes an edge.
func (h *RelationshipHandler) HandleDelete(ctx context.Context, edgeID string) error {
	return h.graph.Delete(ctx, edgeID)
}

// HandleList returns the edges incident to a character, grouped by
// direction.
func (h *RelationshipHandler) HandleList(ctx context.Context, characterID string) (*entities.EdgeList, error) {
	return h.graph.Relationships(ctx, characterID)
}

// HandleSuggestTypes returns the ranked type vocabulary for a story.
func (h *RelationshipHandler) HandleSuggestTypes(ctx context.Context, storyID string) ([]entities.TypeUsage, error) {
	return h.registry.Suggest(ctx, storyID)
}
