package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/ports"
)

// RegistryService maintains the relationship-type vocabulary and its
// usage-ranked ordering for suggestions. State is explicit and per process:
// a story's history is hydrated from the gateway on first use (or Open) and
// dropped again on Close. Every recorded usage is written through, so the
// in-memory state never diverges from storage.
type RegistryService struct {
	gateway ports.Gateway

	mu      sync.Mutex
	stories map[string]map[string]*entities.TypeUsage // storyID -> normalized label -> usage
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(gateway ports.Gateway) *RegistryService {
	return &RegistryService{
		gateway: gateway,
		stories: make(map[string]map[string]*entities.TypeUsage),
	}
}

// Open hydrates a story's usage history from the gateway.
func (s *RegistryService) Open(ctx context.Context, storyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.hydrate(ctx, storyID)
	return err
}

// Close drops a story's in-memory usage state. Safe to call for stories
// that were never opened.
func (s *RegistryService) Close(storyID string) {
	s.mu.Lock()
	delete(s.stories, storyID)
	s.mu.Unlock()
}

// RecordUsage increments the usage count for a type label, creating the
// record on first use. The label's first-seen casing is preserved as the
// display form; comparison is trimmed and case-folded. Counts are never
// decremented when edges are deleted.
func (s *RegistryService) RecordUsage(ctx context.Context, storyID, label string) error {
	normalized := entities.NormalizeType(label)
	if normalized == "" {
		return &entities.ValidationError{Reason: "relationship type cannot be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	usage, err := s.hydrate(ctx, storyID)
	if err != nil {
		return err
	}

	record, ok := usage[normalized]
	if !ok {
		record = &entities.TypeUsage{
			StoryID: storyID,
			Name:    strings.TrimSpace(label),
		}
	}
	updated := *record
	updated.Count++
	updated.LastUsed = timeNow()

	if err := s.gateway.RecordTypeUsage(ctx, &updated); err != nil {
		return &entities.PersistenceError{Op: "recording type usage", Err: err}
	}
	usage[normalized] = &updated
	return nil
}

// Suggest returns the type vocabulary for a story ordered for suggestion:
// usage count descending, then last-used descending, then alphabetical.
// The standard vocabulary is always present, at count zero until used.
func (s *RegistryService) Suggest(ctx context.Context, storyID string) ([]entities.TypeUsage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usage, err := s.hydrate(ctx, storyID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]entities.TypeUsage, len(usage)+len(entities.StandardTypes))
	for _, st := range entities.StandardTypes {
		merged[entities.NormalizeType(st.Name)] = entities.TypeUsage{
			StoryID: storyID,
			Name:    st.Name,
		}
	}
	for key, record := range usage {
		display := record.Name
		if existing, ok := merged[key]; ok {
			// Standard types keep their canonical casing.
			display = existing.Name
		}
		merged[key] = entities.TypeUsage{
			StoryID:  storyID,
			Name:     display,
			Count:    record.Count,
			LastUsed: record.LastUsed,
		}
	}

	result := make([]entities.TypeUsage, 0, len(merged))
	for _, record := range merged {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		if !result[i].LastUsed.Equal(result[j].LastUsed) {
			return result[i].LastUsed.After(result[j].LastUsed)
		}
		return entities.NormalizeType(result[i].Name) < entities.NormalizeType(result[j].Name)
	})
	return result, nil
}

// hydrate returns the usage map for a story, loading it from the gateway on
// first access. Caller must hold mu.
func (s *RegistryService) hydrate(ctx context.Context, storyID string) (map[string]*entities.TypeUsage, error) {
	if usage, ok := s.stories[storyID]; ok {
		return usage, nil
	}
	records, err := s.gateway.LoadTypeUsage(ctx, storyID)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "loading type usage", Err: err}
	}
	usage := make(map[string]*entities.TypeUsage, len(records))
	for i := range records {
		usage[entities.NormalizeType(records[i].Name)] = &records[i]
	}
	s.stories[storyID] = usage
	return usage, nil
}
