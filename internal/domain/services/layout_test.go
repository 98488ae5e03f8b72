package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/mocks"
)

func setupLayoutTest() (*LayoutService, *mocks.Gateway) {
	gateway := mocks.NewGateway()
	return NewLayoutService(gateway, DefaultGridConfig()), gateway
}

// seedCharacters saves n characters with increasing creation times and
// returns their IDs in insertion order.
func seedCharacters(t *testing.T, gateway *mocks.Gateway, storyID string, n int) []string {
	t.Helper()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("char-%d", i)
		_, err := gateway.SaveCharacter(context.Background(), &entities.Character{
			ID:        id,
			StoryID:   storyID,
			Name:      fmt.Sprintf("Character %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

func TestLayoutService_CreateView(t *testing.T) {
	t.Run("seeds the deterministic grid", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		ids := seedCharacters(t, gateway, "story-1", 7)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)
		require.NotNil(t, view)
		require.Len(t, view.Layout, 7)

		// Row 0: columns 0..4, row 1: columns 0..1.
		assert.Equal(t, entities.Position{X: 100, Y: 100}, view.Layout[ids[0]])
		assert.Equal(t, entities.Position{X: 300, Y: 100}, view.Layout[ids[1]])
		assert.Equal(t, entities.Position{X: 900, Y: 100}, view.Layout[ids[4]])
		assert.Equal(t, entities.Position{X: 100, Y: 350}, view.Layout[ids[5]])
		assert.Equal(t, entities.Position{X: 300, Y: 350}, view.Layout[ids[6]])
	})

	t.Run("empty story yields empty layout", func(t *testing.T) {
		svc, _ := setupLayoutTest()

		view, err := svc.CreateView(context.Background(), "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)
		assert.Empty(t, view.Layout)
	})

	t.Run("kind defaults to board", func(t *testing.T) {
		svc, _ := setupLayoutTest()

		view, err := svc.CreateView(context.Background(), "story-1", "Main", "")
		require.NoError(t, err)
		assert.Equal(t, entities.ViewKindBoard, view.Kind)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, _ := setupLayoutTest()

		_, err := svc.CreateView(context.Background(), "story-1", "", entities.ViewKindBoard)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("views are independent", func(t *testing.T) {
		svc, _ := setupLayoutTest()
		ctx := context.Background()

		v1, err := svc.CreateView(ctx, "story-1", "First", entities.ViewKindBoard)
		require.NoError(t, err)
		v2, err := svc.CreateView(ctx, "story-1", "Second", entities.ViewKindBoard)
		require.NoError(t, err)
		assert.NotEqual(t, v1.ID, v2.ID)

		views, err := svc.Views(ctx, "story-1")
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})
}

func TestLayoutService_SaveLayout(t *testing.T) {
	t.Run("replaces the stored layout wholesale", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		ids := seedCharacters(t, gateway, "story-1", 2)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)

		err = svc.SaveLayout(ctx, view.ID, entities.Layout{
			ids[0]: {X: 42, Y: 17},
		})
		require.NoError(t, err)

		stored := gateway.Views[view.ID].Layout
		require.Len(t, stored, 1)
		assert.Equal(t, entities.Position{X: 42, Y: 17}, stored[ids[0]])
	})

	t.Run("foreign character key rejected", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		ids := seedCharacters(t, gateway, "story-1", 1)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)
		before := gateway.Views[view.ID].Layout.Clone()

		err = svc.SaveLayout(ctx, view.ID, entities.Layout{
			ids[0]:     {X: 1, Y: 1},
			"intruder": {X: 2, Y: 2},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)

		// Stored layout untouched.
		assert.Equal(t, before, gateway.Views[view.ID].Layout)
	})

	t.Run("unknown view", func(t *testing.T) {
		svc, _ := setupLayoutTest()

		err := svc.SaveLayout(context.Background(), "missing", entities.Layout{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestLayoutService_LoadLayout(t *testing.T) {
	t.Run("returns stored positions", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		ids := seedCharacters(t, gateway, "story-1", 2)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)
		require.NoError(t, svc.SaveLayout(ctx, view.ID, entities.Layout{
			ids[0]: {X: 10, Y: 20},
			ids[1]: {X: 30, Y: 40},
		}))

		layout, err := svc.LoadLayout(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.Position{X: 10, Y: 20}, layout[ids[0]])
		assert.Equal(t, entities.Position{X: 30, Y: 40}, layout[ids[1]])
	})

	t.Run("characters created after the save get grid slots", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		seedCharacters(t, gateway, "story-1", 2)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)

		_, err = gateway.SaveCharacter(ctx, &entities.Character{
			ID: "late", StoryID: "story-1", Name: "Latecomer",
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		layout, err := svc.LoadLayout(ctx, view.ID)
		require.NoError(t, err)
		require.Len(t, layout, 3)
		// Slot 2 follows the two stored entries.
		assert.Equal(t, entities.Position{X: 500, Y: 100}, layout["late"])
	})

	t.Run("stale keys are dropped", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		ids := seedCharacters(t, gateway, "story-1", 1)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)

		// A key left behind by a character that no longer exists.
		gateway.Views[view.ID].Layout["ghost"] = entities.Position{X: 1, Y: 1}

		layout, err := svc.LoadLayout(ctx, view.ID)
		require.NoError(t, err)
		require.Len(t, layout, 1)
		assert.Contains(t, layout, ids[0])
	})

	t.Run("stale keys do not reserve grid slots", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		ids := seedCharacters(t, gateway, "story-1", 1)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)
		gateway.Views[view.ID].Layout["ghost"] = entities.Position{X: 1, Y: 1}

		_, err = gateway.SaveCharacter(ctx, &entities.Character{
			ID: "late", StoryID: "story-1", Name: "Latecomer",
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		layout, err := svc.LoadLayout(ctx, view.ID)
		require.NoError(t, err)
		require.Len(t, layout, 2)
		assert.NotContains(t, layout, "ghost")
		// Slot 1, not slot 2: the ghost entry does not count.
		assert.Equal(t, entities.Position{X: 300, Y: 100}, layout["late"])
		assert.Contains(t, layout, ids[0])
	})
}

func TestLayoutService_ResetToGrid(t *testing.T) {
	t.Run("discards manual positions", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		ids := seedCharacters(t, gateway, "story-1", 3)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)
		require.NoError(t, svc.SaveLayout(ctx, view.ID, entities.Layout{
			ids[0]: {X: 999, Y: 999},
		}))

		layout, err := svc.ResetToGrid(ctx, view.ID)
		require.NoError(t, err)
		require.Len(t, layout, 3)
		assert.Equal(t, entities.Position{X: 100, Y: 100}, layout[ids[0]])
		assert.Equal(t, entities.Position{X: 300, Y: 100}, layout[ids[1]])
		assert.Equal(t, entities.Position{X: 500, Y: 100}, layout[ids[2]])
	})

	t.Run("reset is idempotent", func(t *testing.T) {
		svc, gateway := setupLayoutTest()
		ctx := context.Background()
		seedCharacters(t, gateway, "story-1", 6)

		view, err := svc.CreateView(ctx, "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)

		first, err := svc.ResetToGrid(ctx, view.ID)
		require.NoError(t, err)
		second, err := svc.ResetToGrid(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestGridConfig(t *testing.T) {
	t.Run("custom columns change wrapping", func(t *testing.T) {
		gateway := mocks.NewGateway()
		svc := NewLayoutService(gateway, GridConfig{
			Columns: 2, StartX: 0, StartY: 0, SpacingX: 10, SpacingY: 10,
		})
		ids := seedCharacters(t, gateway, "story-1", 3)

		view, err := svc.CreateView(context.Background(), "story-1", "Main", entities.ViewKindBoard)
		require.NoError(t, err)
		assert.Equal(t, entities.Position{X: 0, Y: 0}, view.Layout[ids[0]])
		assert.Equal(t, entities.Position{X: 10, Y: 0}, view.Layout[ids[1]])
		assert.Equal(t, entities.Position{X: 0, Y: 10}, view.Layout[ids[2]])
	})

	t.Run("zero columns clamp to one", func(t *testing.T) {
		svc := NewLayoutService(mocks.NewGateway(), GridConfig{})
		assert.Equal(t, 1, svc.grid.Columns)
	})
}
