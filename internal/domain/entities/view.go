package entities

import "time"

// ViewKind distinguishes how a view arranges characters. Modeled as an open
// string so new kinds can be introduced without touching validation.
type ViewKind string

const (
	// ViewKindBoard is a free spatial arrangement on a 2D board.
	ViewKindBoard ViewKind = "BOARD"
	// ViewKindList is a hierarchical list arrangement.
	ViewKindList ViewKind = "LIST"
)

// Position is a 2D board coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout maps character IDs to board positions. Serialized inside the
// persisted view as {"characters": {"<id>": {"x": ..., "y": ...}}}.
type Layout map[string]Position

// Clone returns a copy of the layout so callers can mutate freely.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for id, pos := range l {
		out[id] = pos
	}
	return out
}

// View is a named, persisted spatial snapshot of a story's characters.
// Views are independent of each other; editing one never affects another.
type View struct {
	ID        string    `json:"id"`
	StoryID   string    `json:"story_id"`
	Name      string    `json:"name"`
	Kind      ViewKind  `json:"kind"`
	Layout    Layout    `json:"layout"`
	CreatedAt time.Time `json:"created_at"`
}
