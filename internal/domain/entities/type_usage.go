package entities

import "time"

// TypeUsage tracks how often a relationship type has been used within a
// story. Counts are never decremented when edges are deleted, so suggestion
// ranking stays stable over time.
type TypeUsage struct {
	StoryID  string    `json:"story_id"`
	Name     string    `json:"name"` // first-seen display form
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}
