// Package memory provides an in-memory Gateway implementation. It backs
// unit tests and scratch stories that never touch disk, and mirrors the
// sqlite gateway's contract: insertion order for characters and edges,
// name order for views, and ranked order for type usage.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inkvane/story-core/internal/domain/entities"
)

// Repository is a map-backed Gateway. Safe for concurrent use.
type Repository struct {
	mu sync.RWMutex

	characters map[string]*entities.Character
	edges      map[string]*entities.RelationshipEdge
	views      map[string]*entities.View
	usage      map[string]*entities.TypeUsage // keyed by storyID + "/" + normalized name

	characterOrder []string
	edgeOrder      []string
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		characters: make(map[string]*entities.Character),
		edges:      make(map[string]*entities.RelationshipEdge),
		views:      make(map[string]*entities.View),
		usage:      make(map[string]*entities.TypeUsage),
	}
}

// EnsureSchema is a no-op: there is no schema to create.
func (r *Repository) EnsureSchema(_ context.Context) error { return nil }

// Close is a no-op.
func (r *Repository) Close() error { return nil }

// Character operations

// LoadCharacters returns a story's characters in insertion order.
func (r *Repository) LoadCharacters(_ context.Context, storyID string) ([]entities.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entities.Character
	for _, id := range r.characterOrder {
		if ch, ok := r.characters[id]; ok && ch.StoryID == storyID {
			result = append(result, *copyCharacter(ch))
		}
	}
	return result, nil
}

// SaveCharacter inserts or updates a character.
func (r *Repository) SaveCharacter(_ context.Context, ch *entities.Character) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.characters[ch.ID]; !exists {
		r.characterOrder = append(r.characterOrder, ch.ID)
	}
	r.characters[ch.ID] = copyCharacter(ch)
	return ch.ID, nil
}

// FindCharacter returns a character by ID, or nil if absent.
func (r *Repository) FindCharacter(_ context.Context, id string) (*entities.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ch, ok := r.characters[id]; ok {
		return copyCharacter(ch), nil
	}
	return nil, nil
}

// DeleteCharacter removes a character by ID.
func (r *Repository) DeleteCharacter(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.characters[id]; !ok {
		return fmt.Errorf("character not found: %s", id)
	}
	delete(r.characters, id)
	r.characterOrder = removeID(r.characterOrder, id)
	return nil
}

// Edge operations

// LoadEdges returns all edges of a story in insertion order.
func (r *Repository) LoadEdges(_ context.Context, storyID string) ([]entities.RelationshipEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entities.RelationshipEdge
	for _, id := range r.edgeOrder {
		if e, ok := r.edges[id]; ok && e.StoryID == storyID {
			result = append(result, *e)
		}
	}
	return result, nil
}

// SaveEdge inserts or updates an edge.
func (r *Repository) SaveEdge(_ context.Context, edge *entities.RelationshipEdge) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.edges[edge.ID]; !exists {
		r.edgeOrder = append(r.edgeOrder, edge.ID)
	}
	copied := *edge
	r.edges[edge.ID] = &copied
	return edge.ID, nil
}

// FindEdge returns an edge by ID, or nil if absent.
func (r *Repository) FindEdge(_ context.Context, id string) (*entities.RelationshipEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.edges[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

// DeleteEdge removes an edge by ID.
func (r *Repository) DeleteEdge(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.edges[id]; !ok {
		return fmt.Errorf("edge not found: %s", id)
	}
	delete(r.edges, id)
	r.edgeOrder = removeID(r.edgeOrder, id)
	return nil
}

// View operations

// LoadViews returns all views of a story ordered by name.
func (r *Repository) LoadViews(_ context.Context, storyID string) ([]entities.View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entities.View
	for _, v := range r.views {
		if v.StoryID == storyID {
			result = append(result, *copyView(v))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SaveView inserts or updates a view.
func (r *Repository) SaveView(_ context.Context, view *entities.View) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view.ID] = copyView(view)
	return view.ID, nil
}

// FindView returns a view by ID, or nil if absent.
func (r *Repository) FindView(_ context.Context, id string) (*entities.View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.views[id]; ok {
		return copyView(v), nil
	}
	return nil, nil
}

// SaveViewLayout replaces a view's layout map wholesale.
func (r *Repository) SaveViewLayout(_ context.Context, viewID string, layout entities.Layout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[viewID]
	if !ok {
		return fmt.Errorf("view not found: %s", viewID)
	}
	v.Layout = layout.Clone()
	return nil
}

// DeleteView removes a view by ID.
func (r *Repository) DeleteView(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[id]; !ok {
		return fmt.Errorf("view not found: %s", id)
	}
	delete(r.views, id)
	return nil
}

// Type usage operations

// LoadTypeUsage returns a story's usage records ranked by count, recency
// and name.
func (r *Repository) LoadTypeUsage(_ context.Context, storyID string) ([]entities.TypeUsage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []entities.TypeUsage
	for _, u := range r.usage {
		if u.StoryID == storyID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		return entities.NormalizeType(a.Name) < entities.NormalizeType(b.Name)
	})
	return result, nil
}

// RecordTypeUsage inserts or updates one usage record. On update the
// stored display name is kept, matching the sqlite upsert.
func (r *Repository) RecordTypeUsage(_ context.Context, usage *entities.TypeUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := usage.StoryID + "/" + entities.NormalizeType(usage.Name)
	if existing, ok := r.usage[key]; ok {
		existing.Count = usage.Count
		existing.LastUsed = usage.LastUsed
		return nil
	}
	copied := *usage
	r.usage[key] = &copied
	return nil
}

func copyCharacter(ch *entities.Character) *entities.Character {
	copied := *ch
	if ch.Aliases != nil {
		copied.Aliases = append([]string(nil), ch.Aliases...)
	}
	return &copied
}

func copyView(v *entities.View) *entities.View {
	copied := *v
	copied.Layout = v.Layout.Clone()
	return &copied
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
