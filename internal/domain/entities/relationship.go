package entities

import (
	"strings"
	"time"
)

// Default display metadata for newly created edges, matching the board's
// drawing defaults.
const (
	DefaultEdgeColor = "#FF0000"
	DefaultEdgeWidth = 1.0
)

// RelationshipEdge is a directed, typed connection between two characters of
// the same story. Endpoints are held by ID only. InverseID links a logically
// paired edge in the opposite direction; the pairing is symmetric but each
// edge remains independently deletable.
type RelationshipEdge struct {
	ID        string    `json:"id"`
	StoryID   string    `json:"story_id"`
	SourceID  string    `json:"source_id"`
	TargetID  string    `json:"target_id"`
	Type      string    `json:"type"` // display form, case preserved
	InverseID string    `json:"inverse_id,omitempty"`
	Color     string    `json:"color"`
	Width     float64   `json:"width"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeType folds a relationship type label for comparison. Display
// forms keep their original casing; uniqueness checks and inverse table
// lookups use the folded form.
func NormalizeType(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// EdgeList groups the edges incident to a character by direction.
type EdgeList struct {
	Outgoing []RelationshipEdge `json:"outgoing"`
	Incoming []RelationshipEdge `json:"incoming"`
}
