package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/services"
)

func TestSanitizeStoryName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "mystory",
			expected: "mystory",
		},
		{
			name:     "uppercase converted",
			input:    "MyStory",
			expected: "mystory",
		},
		{
			name:     "spaces to underscores",
			input:    "my story",
			expected: "my_story",
		},
		{
			name:     "hyphens to underscores",
			input:    "my-story",
			expected: "my_story",
		},
		{
			name:     "special characters removed",
			input:    "my@story!",
			expected: "mystory",
		},
		{
			name:     "consecutive underscores collapsed",
			input:    "my--story",
			expected: "my_story",
		},
		{
			name:     "leading trailing underscores trimmed",
			input:    "-my-story-",
			expected: "my_story",
		},
		{
			name:     "empty string returns default",
			input:    "",
			expected: "default",
		},
		{
			name:     "only special chars returns default",
			input:    "!!!",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeStoryName(tt.input))
		})
	}
}

func TestSQLitePathForStory(t *testing.T) {
	path := SQLitePathForStory("/base", "My Story")
	assert.Equal(t, filepath.Join("/base", ".story", "stories", "my_story", "story.db"), path)
}

func TestLoad(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("defaults fill unset fields", func(t *testing.T) {
		base := t.TempDir()
		writeConfig(t, base, "layout:\n  columns: 3\n")

		cfg, err := Load(base)
		require.NoError(t, err)

		grid := cfg.GridConfig()
		assert.Equal(t, 3, grid.Columns)
		assert.Equal(t, float64(100), grid.StartX)
		assert.Equal(t, float64(200), grid.SpacingX)
		assert.Equal(t, services.DefaultAutosaveInterval, cfg.AutosaveInterval())
	})

	t.Run("autosave interval override", func(t *testing.T) {
		base := t.TempDir()
		writeConfig(t, base, "autosave:\n  interval_ms: 250\n")

		cfg, err := Load(base)
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, cfg.AutosaveInterval())
	})

	t.Run("label overrides replace the defaults", func(t *testing.T) {
		base := t.TempDir()
		writeConfig(t, base, "labels:\n  genders:\n    - MALE\n    - FEMALE\n    - OTHER\n    - NOT_SPECIFIED\n")

		cfg, err := Load(base)
		require.NoError(t, err)

		sets := cfg.LabelSets()
		assert.True(t, sets.ValidGender("OTHER"))
		assert.True(t, sets.ValidGender(entities.GenderMale))
		// Age categories stay default.
		assert.True(t, sets.ValidAgeCategory("ADULT"))
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		base := t.TempDir()
		writeConfig(t, base, "layout: [not a map\n")

		_, err := Load(base)
		require.Error(t, err)
	})
}

func TestStoriesConfig(t *testing.T) {
	t.Run("load of missing file yields empty config", func(t *testing.T) {
		cfg, err := LoadStories(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, cfg.Stories)
	})

	t.Run("save and reload round trip", func(t *testing.T) {
		base := t.TempDir()

		cfg := &StoriesConfig{}
		cfg.Add("novel", StoryEntry{ID: "story-1", Description: "The big one"})
		require.NoError(t, cfg.Save(base))

		loaded, err := LoadStories(base)
		require.NoError(t, err)
		require.True(t, loaded.Exists("novel"))

		id, err := loaded.GetID("novel")
		require.NoError(t, err)
		assert.Equal(t, "story-1", id)
	})

	t.Run("unknown story lists available names", func(t *testing.T) {
		cfg := &StoriesConfig{}
		cfg.Add("novel", StoryEntry{ID: "story-1"})

		_, err := cfg.Get("missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "novel")
	})

	t.Run("no stories configured", func(t *testing.T) {
		cfg := &StoriesConfig{}
		_, err := cfg.Get("anything")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no stories configured")
	})

	t.Run("remove", func(t *testing.T) {
		cfg := &StoriesConfig{}
		cfg.Add("novel", StoryEntry{ID: "story-1"})
		cfg.Remove("novel")
		assert.False(t, cfg.Exists("novel"))
	})
}

func writeConfig(t *testing.T, base, content string) {
	t.Helper()
	dir := filepath.Join(base, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))
}
