package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkvane/story-core/internal/domain/entities"
)

// Gateway is a map-backed mock implementation of ports.Gateway. Per-call
// error fields let tests inject failures at specific points, which the
// cascade tests rely on.
type Gateway struct {
	mu sync.Mutex

	Characters map[string]*entities.Character
	Edges      map[string]*entities.RelationshipEdge
	Views      map[string]*entities.View
	Usage      map[string]*entities.TypeUsage // keyed by storyID + "/" + normalized name

	characterOrder []string

	SaveCharacterErr   error
	DeleteCharacterErr error
	SaveEdgeErr        error
	FindEdgeErr        error
	DeleteEdgeErr      error
	SaveViewErr        error
	SaveLayoutErr      error
	RecordUsageErr     error
	LoadErr            error
}

// NewGateway creates an empty mock Gateway.
func NewGateway() *Gateway {
	return &Gateway{
		Characters: make(map[string]*entities.Character),
		Edges:      make(map[string]*entities.RelationshipEdge),
		Views:      make(map[string]*entities.View),
		Usage:      make(map[string]*entities.TypeUsage),
	}
}

// EnsureSchema is a no-op for the mock.
func (m *Gateway) EnsureSchema(_ context.Context) error { return nil }

// Close is a no-op for the mock.
func (m *Gateway) Close() error { return nil }

// LoadCharacters returns a story's characters in insertion order.
func (m *Gateway) LoadCharacters(_ context.Context, storyID string) ([]entities.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	var result []entities.Character
	for _, id := range m.characterOrder {
		if ch, ok := m.Characters[id]; ok && ch.StoryID == storyID {
			result = append(result, *ch)
		}
	}
	return result, nil
}

// SaveCharacter inserts or updates a character.
func (m *Gateway) SaveCharacter(_ context.Context, ch *entities.Character) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveCharacterErr != nil {
		return "", m.SaveCharacterErr
	}
	if _, exists := m.Characters[ch.ID]; !exists {
		m.characterOrder = append(m.characterOrder, ch.ID)
	}
	copied := *ch
	m.Characters[ch.ID] = &copied
	return ch.ID, nil
}

// FindCharacter returns a character by ID, or nil if absent.
func (m *Gateway) FindCharacter(_ context.Context, id string) (*entities.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if ch, ok := m.Characters[id]; ok {
		copied := *ch
		return &copied, nil
	}
	return nil, nil
}

// DeleteCharacter removes a character by ID.
func (m *Gateway) DeleteCharacter(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteCharacterErr != nil {
		return m.DeleteCharacterErr
	}
	delete(m.Characters, id)
	for i, cid := range m.characterOrder {
		if cid == id {
			m.characterOrder = append(m.characterOrder[:i], m.characterOrder[i+1:]...)
			break
		}
	}
	return nil
}

// LoadEdges returns all edges of a story.
func (m *Gateway) LoadEdges(_ context.Context, storyID string) ([]entities.RelationshipEdge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	var result []entities.RelationshipEdge
	for _, e := range m.Edges {
		if e.StoryID == storyID {
			result = append(result, *e)
		}
	}
	return result, nil
}

// SaveEdge inserts or updates an edge.
func (m *Gateway) SaveEdge(_ context.Context, edge *entities.RelationshipEdge) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveEdgeErr != nil {
		return "", m.SaveEdgeErr
	}
	copied := *edge
	m.Edges[edge.ID] = &copied
	return edge.ID, nil
}

// FindEdge returns an edge by ID, or nil if absent.
func (m *Gateway) FindEdge(_ context.Context, id string) (*entities.RelationshipEdge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindEdgeErr != nil {
		return nil, m.FindEdgeErr
	}
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if e, ok := m.Edges[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

// DeleteEdge removes an edge by ID.
func (m *Gateway) DeleteEdge(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteEdgeErr != nil {
		return m.DeleteEdgeErr
	}
	delete(m.Edges, id)
	return nil
}

// LoadViews returns all views of a story.
func (m *Gateway) LoadViews(_ context.Context, storyID string) ([]entities.View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	var result []entities.View
	for _, v := range m.Views {
		if v.StoryID == storyID {
			copied := *v
			copied.Layout = v.Layout.Clone()
			result = append(result, copied)
		}
	}
	return result, nil
}

// SaveView inserts or updates a view.
func (m *Gateway) SaveView(_ context.Context, view *entities.View) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveViewErr != nil {
		return "", m.SaveViewErr
	}
	copied := *view
	copied.Layout = view.Layout.Clone()
	m.Views[view.ID] = &copied
	return view.ID, nil
}

// FindView returns a view by ID, or nil if absent.
func (m *Gateway) FindView(_ context.Context, id string) (*entities.View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if v, ok := m.Views[id]; ok {
		copied := *v
		copied.Layout = v.Layout.Clone()
		return &copied, nil
	}
	return nil, nil
}

// SaveViewLayout replaces a view's layout map wholesale.
func (m *Gateway) SaveViewLayout(_ context.Context, viewID string, layout entities.Layout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveLayoutErr != nil {
		return m.SaveLayoutErr
	}
	v, ok := m.Views[viewID]
	if !ok {
		return fmt.Errorf("view not found: %s", viewID)
	}
	v.Layout = layout.Clone()
	return nil
}

// DeleteView removes a view by ID.
func (m *Gateway) DeleteView(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Views, id)
	return nil
}

// LoadTypeUsage returns a story's type usage history.
func (m *Gateway) LoadTypeUsage(_ context.Context, storyID string) ([]entities.TypeUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	var result []entities.TypeUsage
	for _, u := range m.Usage {
		if u.StoryID == storyID {
			result = append(result, *u)
		}
	}
	return result, nil
}

// RecordTypeUsage inserts or updates one usage record.
func (m *Gateway) RecordTypeUsage(_ context.Context, usage *entities.TypeUsage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordUsageErr != nil {
		return m.RecordUsageErr
	}
	copied := *usage
	m.Usage[usage.StoryID+"/"+entities.NormalizeType(usage.Name)] = &copied
	return nil
}

// ViewLayout returns a copy of a view's stored layout, synchronized for
// use while a background commit may be running.
func (m *Gateway) ViewLayout(viewID string) entities.Layout {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.Views[viewID]; ok {
		return v.Layout.Clone()
	}
	return nil
}
