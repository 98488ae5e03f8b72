package entities

import (
	"strings"
	"time"
)

// Gender classifies a character for gender-aware inverse suggestions.
// The set of accepted labels is supplied by configuration; these constants
// are only the built-in defaults.
type Gender string

const (
	GenderMale         Gender = "MALE"
	GenderFemale       Gender = "FEMALE"
	GenderNotSpecified Gender = "NOT_SPECIFIED"
)

// DefaultGenders are the gender labels accepted when configuration does not
// override them.
var DefaultGenders = []Gender{GenderMale, GenderFemale, GenderNotSpecified}

// AgeCategory is a coarse age label used when a character's exact age is
// unknown. Like Gender, the accepted set is configurable.
type AgeCategory string

// DefaultAgeCategories are the built-in age labels, ordered youngest first.
var DefaultAgeCategories = []AgeCategory{
	"MINOR", "TEEN", "YOUNG", "ADULT", "MIDDLE_AGED", "MATURE", "OLD",
}

// Character represents a narrative entity within a single story. Characters
// are referenced everywhere by ID, never by pointer, so edges and view
// layouts can hold on to them without ownership cycles.
type Character struct {
	ID        string      `json:"id"`
	StoryID   string      `json:"story_id"`
	Name      string      `json:"name"`
	Aliases   []string    `json:"aliases,omitempty"`
	IsMain    bool        `json:"is_main_character"`
	AgeValue  int         `json:"age_value,omitempty"` // exact age, 0 when unknown
	AgeLabel  AgeCategory `json:"age_category,omitempty"`
	Gender    Gender      `json:"gender"`
	Archived  bool        `json:"is_archived"`
	Deceased  bool        `json:"is_deceased"`
	CreatedAt time.Time   `json:"created_at"`
}

// CharacterAttrs carries optional attributes for character creation and
// partial updates. Nil fields are left untouched on update.
type CharacterAttrs struct {
	Name     *string
	Aliases  []string
	IsMain   *bool
	AgeValue *int
	AgeLabel *AgeCategory
	Gender   *Gender
	Archived *bool
	Deceased *bool
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
