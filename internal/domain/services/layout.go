package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/ports"
)

// GridConfig controls the deterministic default layout. Characters are laid
// out row by row: the character at creation-order index i lands in column
// i mod Columns and row i div Columns, scaled by the spacing constants.
type GridConfig struct {
	Columns  int
	StartX   float64
	StartY   float64
	SpacingX float64
	SpacingY float64
}

// DefaultGridConfig matches the board's drawing constants.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Columns:  5,
		StartX:   100,
		StartY:   100,
		SpacingX: 200,
		SpacingY: 250,
	}
}

// LayoutService owns named spatial views of a story's characters.
type LayoutService struct {
	gateway ports.Gateway
	grid    GridConfig
}

// NewLayoutService creates a new LayoutService.
func NewLayoutService(gateway ports.Gateway, grid GridConfig) *LayoutService {
	if grid.Columns < 1 {
		grid.Columns = 1
	}
	return &LayoutService{
		gateway: gateway,
		grid:    grid,
	}
}

// position computes the grid slot for creation-order index i.
func (s *LayoutService) position(i int) entities.Position {
	col := i % s.grid.Columns
	row := i / s.grid.Columns
	return entities.Position{
		X: s.grid.StartX + float64(col)*s.grid.SpacingX,
		Y: s.grid.StartY + float64(row)*s.grid.SpacingY,
	}
}

// CreateView adds a named view to a story, seeded with the deterministic
// grid layout over the story's current characters.
func (s *LayoutService) CreateView(ctx context.Context, storyID, name string, kind entities.ViewKind) (*entities.View, error) {
	if name == "" {
		return nil, &entities.ValidationError{Reason: "view name is required"}
	}
	if kind == "" {
		kind = entities.ViewKindBoard
	}

	chars, err := s.gateway.LoadCharacters(ctx, storyID)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "loading characters", Err: err}
	}

	layout := make(entities.Layout, len(chars))
	for i, ch := range chars {
		layout[ch.ID] = s.position(i)
	}

	view := &entities.View{
		ID:        generateUUID(),
		StoryID:   storyID,
		Name:      name,
		Kind:      kind,
		Layout:    layout,
		CreatedAt: timeNow(),
	}
	if _, err := s.gateway.SaveView(ctx, view); err != nil {
		return nil, &entities.PersistenceError{Op: "saving view", Err: err}
	}
	return view, nil
}

// Views returns all views of a story.
func (s *LayoutService) Views(ctx context.Context, storyID string) ([]entities.View, error) {
	views, err := s.gateway.LoadViews(ctx, storyID)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "loading views", Err: err}
	}
	return views, nil
}

// SaveLayout replaces a view's layout wholesale. Every key must reference a
// character of the view's story; otherwise the save is rejected and the
// stored layout is left unchanged.
func (s *LayoutService) SaveLayout(ctx context.Context, viewID string, layout entities.Layout) error {
	view, err := s.findView(ctx, viewID)
	if err != nil {
		return err
	}

	known, _, err := s.storyCharacters(ctx, view.StoryID)
	if err != nil {
		return err
	}
	for id := range layout {
		if _, ok := known[id]; !ok {
			return &entities.ValidationError{Reason: fmt.Sprintf("layout references character %s outside story %s", id, view.StoryID)}
		}
	}

	if err := s.gateway.SaveViewLayout(ctx, viewID, layout.Clone()); err != nil {
		return &entities.PersistenceError{Op: "saving view layout", Err: err}
	}
	return nil
}

// LoadLayout returns a view's stored positions. Characters created after
// the view was last saved are assigned grid slots following the highest
// stored index, so they appear at stable positions instead of the origin.
func (s *LayoutService) LoadLayout(ctx context.Context, viewID string) (entities.Layout, error) {
	view, err := s.findView(ctx, viewID)
	if err != nil {
		return nil, err
	}

	known, ordered, err := s.storyCharacters(ctx, view.StoryID)
	if err != nil {
		return nil, err
	}

	result := make(entities.Layout, len(ordered))
	for id, pos := range view.Layout {
		if _, ok := known[id]; ok {
			result[id] = pos
		}
	}

	// Stale keys dropped above do not reserve slots.
	next := len(result)
	for _, ch := range ordered {
		if _, ok := result[ch.ID]; ok {
			continue
		}
		result[ch.ID] = s.position(next)
		next++
	}
	return result, nil
}

// ResetToGrid recomputes and stores grid positions for all current story
// characters, discarding prior coordinates. Re-running it over the same
// character list reproduces identical coordinates.
func (s *LayoutService) ResetToGrid(ctx context.Context, viewID string) (entities.Layout, error) {
	view, err := s.findView(ctx, viewID)
	if err != nil {
		return nil, err
	}

	_, ordered, err := s.storyCharacters(ctx, view.StoryID)
	if err != nil {
		return nil, err
	}

	layout := make(entities.Layout, len(ordered))
	for i, ch := range ordered {
		layout[ch.ID] = s.position(i)
	}
	if err := s.gateway.SaveViewLayout(ctx, viewID, layout); err != nil {
		return nil, &entities.PersistenceError{Op: "saving view layout", Err: err}
	}
	return layout.Clone(), nil
}

func (s *LayoutService) findView(ctx context.Context, id string) (*entities.View, error) {
	view, err := s.gateway.FindView(ctx, id)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "finding view", Err: err}
	}
	if view == nil {
		return nil, &entities.NotFoundError{Kind: "view", ID: id}
	}
	return view, nil
}

// storyCharacters returns a story's characters both as an ID set and in
// insertion order. The order is what makes grid placement deterministic.
func (s *LayoutService) storyCharacters(ctx context.Context, storyID string) (map[string]struct{}, []entities.Character, error) {
	chars, err := s.gateway.LoadCharacters(ctx, storyID)
	if err != nil {
		return nil, nil, &entities.PersistenceError{Op: "loading characters", Err: err}
	}
	// Insertion order is the gateway contract; keep a sanity sort on
	// creation time for gateways that cannot guarantee it.
	sort.SliceStable(chars, func(i, j int) bool {
		return chars[i].CreatedAt.Before(chars[j].CreatedAt)
	})
	known := make(map[string]struct{}, len(chars))
	for _, ch := range chars {
		known[ch.ID] = struct{}{}
	}
	return known, chars, nil
}
