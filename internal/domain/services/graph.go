package services

import (
	"context"
	"strings"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/ports"
)

// GraphService owns the directed, typed edges between characters and
// implements inverse-relationship inference.
type GraphService struct {
	gateway  ports.Gateway
	registry *RegistryService
}

// NewGraphService creates a new GraphService. Edge creation records type
// usage in the registry.
func NewGraphService(gateway ports.Gateway, registry *RegistryService) *GraphService {
	return &GraphService{
		gateway:  gateway,
		registry: registry,
	}
}

// Create adds a directed edge from source to target with the given type
// label. Self-edges and cross-story references are rejected with
// ValidationError; a duplicate (source, target, type) triple, compared
// case-insensitively and trimmed, fails with ConflictError.
func (s *GraphService) Create(ctx context.Context, storyID, sourceID, targetID, typeLabel string) (*entities.RelationshipEdge, error) {
	edge, err := s.createEdge(ctx, storyID, sourceID, targetID, typeLabel)
	if err != nil {
		return nil, err
	}

	if err := s.registry.RecordUsage(ctx, storyID, edge.Type); err != nil {
		// The edge write is undone so a rejected command leaves no trace.
		_ = s.gateway.DeleteEdge(ctx, edge.ID)
		return nil, err
	}
	return edge, nil
}

// createEdge validates and persists the edge without touching the type
// registry. Usage is recorded by the caller once the whole command has
// succeeded.
func (s *GraphService) createEdge(ctx context.Context, storyID, sourceID, targetID, typeLabel string) (*entities.RelationshipEdge, error) {
	normalized := entities.NormalizeType(typeLabel)
	if normalized == "" {
		return nil, &entities.ValidationError{Reason: "relationship type is required"}
	}
	if sourceID == targetID {
		return nil, &entities.ValidationError{Reason: "a character cannot have a relationship with itself"}
	}

	source, err := s.findCharacter(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	target, err := s.findCharacter(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if source.StoryID != storyID || target.StoryID != storyID {
		return nil, &entities.ValidationError{Reason: "source and target must belong to the edge's story"}
	}

	edges, err := s.gateway.LoadEdges(ctx, storyID)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "loading edges", Err: err}
	}
	for _, e := range edges {
		if e.SourceID == sourceID && e.TargetID == targetID && entities.NormalizeType(e.Type) == normalized {
			return nil, &entities.ConflictError{SourceID: sourceID, TargetID: targetID, Type: typeLabel}
		}
	}

	edge := &entities.RelationshipEdge{
		ID:        generateUUID(),
		StoryID:   storyID,
		SourceID:  sourceID,
		TargetID:  targetID,
		Type:      strings.TrimSpace(typeLabel),
		Color:     entities.DefaultEdgeColor,
		Width:     entities.DefaultEdgeWidth,
		CreatedAt: timeNow(),
	}
	if _, err := s.gateway.SaveEdge(ctx, edge); err != nil {
		return nil, &entities.PersistenceError{Op: "saving edge", Err: err}
	}
	return edge, nil
}

// SuggestInverse returns the inverse type labels to offer for an edge,
// filtered by the target character's gender. An empty slice means the type
// is unknown to the role table and no suggestion is offered. The suggestion
// is never applied automatically; callers confirm with ConfirmInverse or
// simply decline by doing nothing.
func (s *GraphService) SuggestInverse(ctx context.Context, edgeID string) ([]string, error) {
	edge, err := s.findEdge(ctx, edgeID)
	if err != nil {
		return nil, err
	}
	target, err := s.findCharacter(ctx, edge.TargetID)
	if err != nil {
		return nil, err
	}
	return entities.InverseCandidates(edge.Type, target.Gender), nil
}

// ConfirmInverse creates the reverse edge with the chosen label and links
// the two edges' inverse references symmetrically.
func (s *GraphService) ConfirmInverse(ctx context.Context, edgeID, chosenLabel string) (*entities.RelationshipEdge, error) {
	edge, err := s.findEdge(ctx, edgeID)
	if err != nil {
		return nil, err
	}
	if edge.InverseID != "" {
		return nil, &entities.ValidationError{Reason: "edge already has a linked inverse"}
	}

	inverse, err := s.createEdge(ctx, edge.StoryID, edge.TargetID, edge.SourceID, chosenLabel)
	if err != nil {
		return nil, err
	}

	unlink := func() {
		edge.InverseID = ""
		_, _ = s.gateway.SaveEdge(ctx, edge)
		_ = s.gateway.DeleteEdge(ctx, inverse.ID)
	}

	edge.InverseID = inverse.ID
	inverse.InverseID = edge.ID
	if _, err := s.gateway.SaveEdge(ctx, edge); err != nil {
		_ = s.gateway.DeleteEdge(ctx, inverse.ID)
		return nil, &entities.PersistenceError{Op: "linking inverse edge", Err: err}
	}
	if _, err := s.gateway.SaveEdge(ctx, inverse); err != nil {
		unlink()
		return nil, &entities.PersistenceError{Op: "linking inverse edge", Err: err}
	}

	// Usage is recorded last so a failed confirmation leaves no trace.
	if err := s.registry.RecordUsage(ctx, edge.StoryID, inverse.Type); err != nil {
		unlink()
		return nil, err
	}
	return inverse, nil
}

// Delete removes an edge. A linked inverse has its back-reference cleared
// but is left in place: the paired relationship is the user's to delete
// independently.
func (s *GraphService) Delete(ctx context.Context, edgeID string) error {
	edge, err := s.findEdge(ctx, edgeID)
	if err != nil {
		return err
	}

	var partner *entities.RelationshipEdge
	if edge.InverseID != "" {
		partner, err = s.gateway.FindEdge(ctx, edge.InverseID)
		if err != nil {
			return &entities.PersistenceError{Op: "finding inverse edge", Err: err}
		}
	}
	if partner != nil {
		orig := *partner
		partner.InverseID = ""
		if _, err := s.gateway.SaveEdge(ctx, partner); err != nil {
			return &entities.PersistenceError{Op: "unlinking inverse edge", Err: err}
		}
		if err := s.gateway.DeleteEdge(ctx, edgeID); err != nil {
			_, _ = s.gateway.SaveEdge(ctx, &orig)
			return &entities.PersistenceError{Op: "deleting edge", Err: err}
		}
		return nil
	}

	if err := s.gateway.DeleteEdge(ctx, edgeID); err != nil {
		return &entities.PersistenceError{Op: "deleting edge", Err: err}
	}
	return nil
}

// Relationships returns the edges incident to a character, grouped by
// direction.
func (s *GraphService) Relationships(ctx context.Context, characterID string) (*entities.EdgeList, error) {
	ch, err := s.findCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	edges, err := s.gateway.LoadEdges(ctx, ch.StoryID)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "loading edges", Err: err}
	}

	result := &entities.EdgeList{}
	for _, e := range edges {
		switch characterID {
		case e.SourceID:
			result.Outgoing = append(result.Outgoing, e)
		case e.TargetID:
			result.Incoming = append(result.Incoming, e)
		}
	}
	return result, nil
}

func (s *GraphService) findCharacter(ctx context.Context, id string) (*entities.Character, error) {
	ch, err := s.gateway.FindCharacter(ctx, id)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "finding character", Err: err}
	}
	if ch == nil {
		return nil, &entities.NotFoundError{Kind: "character", ID: id}
	}
	return ch, nil
}

func (s *GraphService) findEdge(ctx context.Context, id string) (*entities.RelationshipEdge, error) {
	edge, err := s.gateway.FindEdge(ctx, id)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "finding edge", Err: err}
	}
	if edge == nil {
		return nil, &entities.NotFoundError{Kind: "edge", ID: id}
	}
	return edge, nil
}
