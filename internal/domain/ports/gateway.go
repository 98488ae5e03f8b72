// Package ports defines the interfaces the domain consumes. Storage lives
// behind the Gateway; the core holds no storage logic of its own.
package ports

import (
	"context"

	"github.com/inkvane/story-core/internal/domain/entities"
)

// Gateway is the persistence contract for characters, edges, views, and
// relationship-type usage. All calls are synchronous; implementations may
// fail with any error, which services surface as a PersistenceError without
// retrying. Retry policy, if any, belongs to the implementation.
type Gateway interface {
	// EnsureSchema prepares the underlying storage.
	EnsureSchema(ctx context.Context) error

	// Close releases the storage handle.
	Close() error

	// Character operations

	// LoadCharacters returns a story's characters in insertion order.
	LoadCharacters(ctx context.Context, storyID string) ([]entities.Character, error)

	// SaveCharacter inserts or updates a character and returns its ID.
	SaveCharacter(ctx context.Context, ch *entities.Character) (string, error)

	// FindCharacter returns a character by ID, or nil if absent.
	FindCharacter(ctx context.Context, id string) (*entities.Character, error)

	// DeleteCharacter removes a character by ID.
	DeleteCharacter(ctx context.Context, id string) error

	// Edge operations

	// LoadEdges returns all relationship edges of a story.
	LoadEdges(ctx context.Context, storyID string) ([]entities.RelationshipEdge, error)

	// SaveEdge inserts or updates an edge and returns its ID.
	SaveEdge(ctx context.Context, edge *entities.RelationshipEdge) (string, error)

	// FindEdge returns an edge by ID, or nil if absent.
	FindEdge(ctx context.Context, id string) (*entities.RelationshipEdge, error)

	// DeleteEdge removes an edge by ID.
	DeleteEdge(ctx context.Context, id string) error

	// View operations

	// LoadViews returns all views of a story.
	LoadViews(ctx context.Context, storyID string) ([]entities.View, error)

	// SaveView inserts or updates a view and returns its ID.
	SaveView(ctx context.Context, view *entities.View) (string, error)

	// FindView returns a view by ID, or nil if absent.
	FindView(ctx context.Context, id string) (*entities.View, error)

	// SaveViewLayout replaces a view's layout map wholesale.
	SaveViewLayout(ctx context.Context, viewID string, layout entities.Layout) error

	// DeleteView removes a view by ID.
	DeleteView(ctx context.Context, id string) error

	// Type usage operations

	// LoadTypeUsage returns a story's relationship-type usage history.
	LoadTypeUsage(ctx context.Context, storyID string) ([]entities.TypeUsage, error)

	// RecordTypeUsage inserts or updates one usage record.
	RecordTypeUsage(ctx context.Context, usage *entities.TypeUsage) error
}
