// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/services"
)

const (
	// DefaultConfigDir is the directory name for story-core configuration.
	DefaultConfigDir = ".story"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultStoriesFile is the default stories file name.
	DefaultStoriesFile = "stories.yaml"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Layout   LayoutConfig   `yaml:"layout,omitempty"`
	Autosave AutosaveConfig `yaml:"autosave,omitempty"`
	Labels   LabelsConfig   `yaml:"labels,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite persistence gateway.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// For per-story databases, this is computed dynamically using SQLitePathForStory.
	Path string `yaml:"path,omitempty"`
}

// LayoutConfig holds the grid layout constants for board views.
type LayoutConfig struct {
	Columns  int     `yaml:"columns,omitempty"`
	StartX   float64 `yaml:"start_x,omitempty"`
	StartY   float64 `yaml:"start_y,omitempty"`
	SpacingX float64 `yaml:"spacing_x,omitempty"`
	SpacingY float64 `yaml:"spacing_y,omitempty"`
}

// AutosaveConfig holds the debounce interval for layout persistence.
type AutosaveConfig struct {
	IntervalMS int `yaml:"interval_ms,omitempty"`
}

// LabelsConfig holds the extensible gender and age-category vocabularies.
// Empty lists fall back to the built-in defaults.
type LabelsConfig struct {
	Genders       []string `yaml:"genders,omitempty"`
	AgeCategories []string `yaml:"age_categories,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	grid := services.DefaultGridConfig()
	return &Config{
		Layout: LayoutConfig{
			Columns:  grid.Columns,
			StartX:   grid.StartX,
			StartY:   grid.StartY,
			SpacingX: grid.SpacingX,
			SpacingY: grid.SpacingY,
		},
		Autosave: AutosaveConfig{
			IntervalMS: int(services.DefaultAutosaveInterval / time.Millisecond),
		},
	}
}

// Load loads configuration from the .story directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'story stories create' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// GridConfig converts the layout section into the service-level grid
// settings, falling back to defaults for unset fields.
func (c *Config) GridConfig() services.GridConfig {
	grid := services.DefaultGridConfig()
	if c.Layout.Columns > 0 {
		grid.Columns = c.Layout.Columns
	}
	if c.Layout.StartX != 0 {
		grid.StartX = c.Layout.StartX
	}
	if c.Layout.StartY != 0 {
		grid.StartY = c.Layout.StartY
	}
	if c.Layout.SpacingX > 0 {
		grid.SpacingX = c.Layout.SpacingX
	}
	if c.Layout.SpacingY > 0 {
		grid.SpacingY = c.Layout.SpacingY
	}
	return grid
}

// AutosaveInterval returns the configured debounce interval.
func (c *Config) AutosaveInterval() time.Duration {
	if c.Autosave.IntervalMS > 0 {
		return time.Duration(c.Autosave.IntervalMS) * time.Millisecond
	}
	return services.DefaultAutosaveInterval
}

// LabelSets converts the labels section into the domain vocabularies,
// falling back to the built-in sets when a list is empty.
func (c *Config) LabelSets() entities.LabelSets {
	sets := entities.DefaultLabelSets()
	if len(c.Labels.Genders) > 0 {
		sets.Genders = make([]entities.Gender, len(c.Labels.Genders))
		for i, g := range c.Labels.Genders {
			sets.Genders[i] = entities.Gender(g)
		}
	}
	if len(c.Labels.AgeCategories) > 0 {
		sets.AgeCategories = make([]entities.AgeCategory, len(c.Labels.AgeCategories))
		for i, a := range c.Labels.AgeCategories {
			sets.AgeCategories[i] = entities.AgeCategory(a)
		}
	}
	return sets
}

// ConfigDir returns the path to the .story config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// StoriesFilePath returns the path to the stories file.
func StoriesFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultStoriesFile)
}

// SanitizeStoryName converts a story name to a valid directory suffix.
func SanitizeStoryName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// SQLitePathForStory returns the SQLite database path for a given story.
func SQLitePathForStory(basePath, storyName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "stories", SanitizeStoryName(storyName), "story.db")
}

// StoryDir returns the directory path for a given story.
func StoryDir(basePath, storyName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "stories", SanitizeStoryName(storyName))
}
