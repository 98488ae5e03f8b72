// Package services implements the story-core domain logic on top of the
// persistence Gateway port.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/ports"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// StoreService owns character records and orchestrates the delete cascade
// across edges and view layouts.
type StoreService struct {
	gateway ports.Gateway
	labels  entities.LabelSets
}

// NewStoreService creates a new StoreService validating against the given
// label sets.
func NewStoreService(gateway ports.Gateway, labels entities.LabelSets) *StoreService {
	return &StoreService{
		gateway: gateway,
		labels:  labels,
	}
}

// Create adds a character to a story and returns it.
func (s *StoreService) Create(ctx context.Context, storyID, name string, attrs entities.CharacterAttrs) (*entities.Character, error) {
	if name == "" {
		return nil, &entities.ValidationError{Reason: "character name is required"}
	}
	if storyID == "" {
		return nil, &entities.ValidationError{Reason: "story id is required"}
	}

	ch := &entities.Character{
		ID:        generateUUID(),
		StoryID:   storyID,
		Name:      name,
		Gender:    entities.GenderNotSpecified,
		CreatedAt: timeNow(),
	}
	if err := s.apply(ch, attrs); err != nil {
		return nil, err
	}

	if _, err := s.gateway.SaveCharacter(ctx, ch); err != nil {
		return nil, &entities.PersistenceError{Op: "saving character", Err: err}
	}
	return ch, nil
}

// Get returns a character by ID.
func (s *StoreService) Get(ctx context.Context, id string) (*entities.Character, error) {
	ch, err := s.gateway.FindCharacter(ctx, id)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "finding character", Err: err}
	}
	if ch == nil {
		return nil, &entities.NotFoundError{Kind: "character", ID: id}
	}
	return ch, nil
}

// Update applies a partial attribute change to a character.
func (s *StoreService) Update(ctx context.Context, id string, attrs entities.CharacterAttrs) (*entities.Character, error) {
	ch, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ch, attrs); err != nil {
		return nil, err
	}
	if _, err := s.gateway.SaveCharacter(ctx, ch); err != nil {
		return nil, &entities.PersistenceError{Op: "saving character", Err: err}
	}
	return ch, nil
}

// List returns a story's characters in insertion order. The order is stable
// so grid layouts derived from it are deterministic.
func (s *StoreService) List(ctx context.Context, storyID string) ([]entities.Character, error) {
	chars, err := s.gateway.LoadCharacters(ctx, storyID)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "loading characters", Err: err}
	}
	return chars, nil
}

// Delete removes a character together with every edge it participates in
// and its entry in every view layout of the story. The cascade is
// all-or-none: if any gateway write fails, already-applied writes are
// compensated and the character remains.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	ch, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	edges, err := s.gateway.LoadEdges(ctx, ch.StoryID)
	if err != nil {
		return &entities.PersistenceError{Op: "loading edges", Err: err}
	}
	views, err := s.gateway.LoadViews(ctx, ch.StoryID)
	if err != nil {
		return &entities.PersistenceError{Op: "loading views", Err: err}
	}

	doomed := make(map[string]entities.RelationshipEdge)
	for _, e := range edges {
		if e.SourceID == id || e.TargetID == id {
			doomed[e.ID] = e
		}
	}

	// Undo stack for compensation on mid-cascade failure.
	var undo []func(context.Context)
	rollback := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i](ctx)
		}
	}

	// Clear back-references on linked inverses that survive the cascade.
	for _, e := range doomed {
		if e.InverseID == "" {
			continue
		}
		if _, dies := doomed[e.InverseID]; dies {
			continue
		}
		partner, err := s.gateway.FindEdge(ctx, e.InverseID)
		if err != nil {
			rollback()
			return &entities.PersistenceError{Op: "finding inverse edge", Err: err}
		}
		if partner == nil {
			continue
		}
		orig := *partner
		partner.InverseID = ""
		if _, err := s.gateway.SaveEdge(ctx, partner); err != nil {
			rollback()
			return &entities.PersistenceError{Op: "unlinking inverse edge", Err: err}
		}
		undo = append(undo, func(c context.Context) { _, _ = s.gateway.SaveEdge(c, &orig) })
	}

	for _, e := range doomed {
		edge := e
		if err := s.gateway.DeleteEdge(ctx, edge.ID); err != nil {
			rollback()
			return &entities.PersistenceError{Op: "deleting edge", Err: err}
		}
		undo = append(undo, func(c context.Context) { _, _ = s.gateway.SaveEdge(c, &edge) })
	}

	for _, v := range views {
		if _, present := v.Layout[id]; !present {
			continue
		}
		orig := v.Layout.Clone()
		trimmed := v.Layout.Clone()
		delete(trimmed, id)
		viewID := v.ID
		if err := s.gateway.SaveViewLayout(ctx, viewID, trimmed); err != nil {
			rollback()
			return &entities.PersistenceError{Op: "trimming view layout", Err: err}
		}
		undo = append(undo, func(c context.Context) { _ = s.gateway.SaveViewLayout(c, viewID, orig) })
	}

	if err := s.gateway.DeleteCharacter(ctx, id); err != nil {
		rollback()
		return &entities.PersistenceError{Op: "deleting character", Err: err}
	}
	return nil
}

// apply copies non-nil attrs onto ch, validating labels against the
// configured sets.
func (s *StoreService) apply(ch *entities.Character, attrs entities.CharacterAttrs) error {
	if attrs.Name != nil {
		if *attrs.Name == "" {
			return &entities.ValidationError{Reason: "character name cannot be empty"}
		}
		ch.Name = *attrs.Name
	}
	if attrs.Aliases != nil {
		ch.Aliases = append([]string(nil), attrs.Aliases...)
	}
	if attrs.IsMain != nil {
		ch.IsMain = *attrs.IsMain
	}
	if attrs.AgeValue != nil {
		if *attrs.AgeValue < 0 {
			return &entities.ValidationError{Reason: "age cannot be negative"}
		}
		ch.AgeValue = *attrs.AgeValue
	}
	if attrs.AgeLabel != nil {
		if *attrs.AgeLabel != "" && !s.labels.ValidAgeCategory(*attrs.AgeLabel) {
			return &entities.ValidationError{Reason: fmt.Sprintf("unknown age category %q", *attrs.AgeLabel)}
		}
		ch.AgeLabel = *attrs.AgeLabel
	}
	if attrs.Gender != nil {
		if !s.labels.ValidGender(*attrs.Gender) {
			return &entities.ValidationError{Reason: fmt.Sprintf("unknown gender %q", *attrs.Gender)}
		}
		ch.Gender = *attrs.Gender
	}
	if attrs.Archived != nil {
		ch.Archived = *attrs.Archived
	}
	if attrs.Deceased != nil {
		ch.Deceased = *attrs.Deceased
	}
	return nil
}
