package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/domain/mocks"
)

func setupStoreTest() (*StoreService, *mocks.Gateway) {
	gateway := mocks.NewGateway()
	svc := NewStoreService(gateway, entities.DefaultLabelSets())
	return svc, gateway
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func genderPtr(g entities.Gender) *entities.Gender        { return &g }
func agePtr(a entities.AgeCategory) *entities.AgeCategory { return &a }

func TestStoreService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		ctx := context.Background()

		ch, err := svc.Create(ctx, "story-1", "John", entities.CharacterAttrs{
			Gender:  genderPtr(entities.GenderMale),
			IsMain:  boolPtr(true),
			Aliases: []string{"Johnny"},
		})
		require.NoError(t, err)
		require.NotNil(t, ch)

		assert.NotEmpty(t, ch.ID)
		assert.Equal(t, "story-1", ch.StoryID)
		assert.Equal(t, "John", ch.Name)
		assert.Equal(t, entities.GenderMale, ch.Gender)
		assert.True(t, ch.IsMain)
		assert.False(t, ch.CreatedAt.IsZero())
		assert.Len(t, gateway.Characters, 1)
	})

	t.Run("gender defaults to not specified", func(t *testing.T) {
		svc, _ := setupStoreTest()

		ch, err := svc.Create(context.Background(), "story-1", "Mary", entities.CharacterAttrs{})
		require.NoError(t, err)
		assert.Equal(t, entities.GenderNotSpecified, ch.Gender)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, gateway := setupStoreTest()

		_, err := svc.Create(context.Background(), "story-1", "", entities.CharacterAttrs{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
		assert.Len(t, gateway.Characters, 0)
	})

	t.Run("unknown gender rejected", func(t *testing.T) {
		svc, _ := setupStoreTest()

		_, err := svc.Create(context.Background(), "story-1", "John", entities.CharacterAttrs{
			Gender: genderPtr("PLASMA"),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("negative age rejected", func(t *testing.T) {
		svc, _ := setupStoreTest()

		_, err := svc.Create(context.Background(), "story-1", "John", entities.CharacterAttrs{
			AgeValue: intPtr(-3),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("save failure surfaces as persistence error", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		gateway.SaveCharacterErr = errors.New("disk full")

		_, err := svc.Create(context.Background(), "story-1", "John", entities.CharacterAttrs{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrPersistence)
	})
}

func TestStoreService_Update(t *testing.T) {
	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		svc, _ := setupStoreTest()
		ctx := context.Background()

		ch, err := svc.Create(ctx, "story-1", "John", entities.CharacterAttrs{
			Gender: genderPtr(entities.GenderMale),
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, ch.ID, entities.CharacterAttrs{
			AgeLabel: agePtr("ADULT"),
			Deceased: boolPtr(true),
		})
		require.NoError(t, err)

		assert.Equal(t, "John", updated.Name)
		assert.Equal(t, entities.GenderMale, updated.Gender)
		assert.Equal(t, entities.AgeCategory("ADULT"), updated.AgeLabel)
		assert.True(t, updated.Deceased)
	})

	t.Run("rename", func(t *testing.T) {
		svc, _ := setupStoreTest()
		ctx := context.Background()

		ch, err := svc.Create(ctx, "story-1", "John", entities.CharacterAttrs{})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, ch.ID, entities.CharacterAttrs{Name: strPtr("Jonathan")})
		require.NoError(t, err)
		assert.Equal(t, "Jonathan", updated.Name)

		got, err := svc.Get(ctx, ch.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jonathan", got.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, _ := setupStoreTest()
		ctx := context.Background()

		ch, err := svc.Create(ctx, "story-1", "John", entities.CharacterAttrs{})
		require.NoError(t, err)

		_, err = svc.Update(ctx, ch.ID, entities.CharacterAttrs{Name: strPtr("")})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("unknown character", func(t *testing.T) {
		svc, _ := setupStoreTest()

		_, err := svc.Update(context.Background(), "missing", entities.CharacterAttrs{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("unknown age category rejected", func(t *testing.T) {
		svc, _ := setupStoreTest()
		ctx := context.Background()

		ch, err := svc.Create(ctx, "story-1", "John", entities.CharacterAttrs{})
		require.NoError(t, err)

		_, err = svc.Update(ctx, ch.ID, entities.CharacterAttrs{AgeLabel: agePtr("ANCIENT")})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrValidation)
	})
}

func TestStoreService_List(t *testing.T) {
	t.Run("insertion order preserved", func(t *testing.T) {
		svc, _ := setupStoreTest()
		ctx := context.Background()

		for _, name := range []string{"Alpha", "Beta", "Gamma"} {
			_, err := svc.Create(ctx, "story-1", name, entities.CharacterAttrs{})
			require.NoError(t, err)
		}

		chars, err := svc.List(ctx, "story-1")
		require.NoError(t, err)
		require.Len(t, chars, 3)
		assert.Equal(t, "Alpha", chars[0].Name)
		assert.Equal(t, "Beta", chars[1].Name)
		assert.Equal(t, "Gamma", chars[2].Name)
	})

	t.Run("other stories excluded", func(t *testing.T) {
		svc, _ := setupStoreTest()
		ctx := context.Background()

		_, err := svc.Create(ctx, "story-1", "John", entities.CharacterAttrs{})
		require.NoError(t, err)
		_, err = svc.Create(ctx, "story-2", "Mary", entities.CharacterAttrs{})
		require.NoError(t, err)

		chars, err := svc.List(ctx, "story-1")
		require.NoError(t, err)
		require.Len(t, chars, 1)
		assert.Equal(t, "John", chars[0].Name)
	})
}

func TestStoreService_Delete(t *testing.T) {
	seed := func(t *testing.T, svc *StoreService, gateway *mocks.Gateway) (john, mary *entities.Character) {
		t.Helper()
		ctx := context.Background()

		john, err := svc.Create(ctx, "story-1", "John", entities.CharacterAttrs{})
		require.NoError(t, err)
		mary, err = svc.Create(ctx, "story-1", "Mary", entities.CharacterAttrs{})
		require.NoError(t, err)
		return john, mary
	}

	t.Run("cascade removes edges and layout entries", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		ctx := context.Background()
		john, mary := seed(t, svc, gateway)

		gateway.Edges["edge-1"] = &entities.RelationshipEdge{
			ID: "edge-1", StoryID: "story-1", SourceID: john.ID, TargetID: mary.ID, Type: "Friend",
		}
		gateway.Views["view-1"] = &entities.View{
			ID: "view-1", StoryID: "story-1", Name: "Main",
			Layout: entities.Layout{
				john.ID: {X: 100, Y: 100},
				mary.ID: {X: 300, Y: 100},
			},
		}

		err := svc.Delete(ctx, john.ID)
		require.NoError(t, err)

		assert.NotContains(t, gateway.Characters, john.ID)
		assert.Contains(t, gateway.Characters, mary.ID)
		assert.Len(t, gateway.Edges, 0)
		assert.NotContains(t, gateway.Views["view-1"].Layout, john.ID)
		assert.Contains(t, gateway.Views["view-1"].Layout, mary.ID)
	})

	t.Run("incoming edges also removed", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		ctx := context.Background()
		john, mary := seed(t, svc, gateway)

		gateway.Edges["edge-1"] = &entities.RelationshipEdge{
			ID: "edge-1", StoryID: "story-1", SourceID: mary.ID, TargetID: john.ID, Type: "Friend",
		}

		err := svc.Delete(ctx, john.ID)
		require.NoError(t, err)
		assert.Len(t, gateway.Edges, 0)
	})

	t.Run("surviving inverse partner is unlinked", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		ctx := context.Background()
		john, mary := seed(t, svc, gateway)

		third, err := svc.Create(ctx, "story-1", "Paul", entities.CharacterAttrs{})
		require.NoError(t, err)

		// John -> Mary is linked to Mary -> John; both die with John.
		gateway.Edges["edge-1"] = &entities.RelationshipEdge{
			ID: "edge-1", StoryID: "story-1", SourceID: john.ID, TargetID: mary.ID, Type: "Father", InverseID: "edge-2",
		}
		gateway.Edges["edge-2"] = &entities.RelationshipEdge{
			ID: "edge-2", StoryID: "story-1", SourceID: mary.ID, TargetID: john.ID, Type: "Daughter", InverseID: "edge-1",
		}
		// John -> Paul is linked to a surviving Paul -> Mary edge pairing.
		gateway.Edges["edge-3"] = &entities.RelationshipEdge{
			ID: "edge-3", StoryID: "story-1", SourceID: john.ID, TargetID: third.ID, Type: "Mentor", InverseID: "edge-4",
		}
		gateway.Edges["edge-4"] = &entities.RelationshipEdge{
			ID: "edge-4", StoryID: "story-1", SourceID: third.ID, TargetID: mary.ID, Type: "Mentee", InverseID: "edge-3",
		}

		err = svc.Delete(ctx, john.ID)
		require.NoError(t, err)

		assert.NotContains(t, gateway.Edges, "edge-1")
		assert.NotContains(t, gateway.Edges, "edge-2")
		assert.NotContains(t, gateway.Edges, "edge-3")
		require.Contains(t, gateway.Edges, "edge-4")
		assert.Empty(t, gateway.Edges["edge-4"].InverseID)
	})

	t.Run("partner lookup failure aborts the cascade", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		ctx := context.Background()
		john, mary := seed(t, svc, gateway)

		third, err := svc.Create(ctx, "story-1", "Paul", entities.CharacterAttrs{})
		require.NoError(t, err)

		// The partner survives the cascade, so it must be unlinked; if it
		// cannot even be read, the deletion must not proceed.
		gateway.Edges["edge-1"] = &entities.RelationshipEdge{
			ID: "edge-1", StoryID: "story-1", SourceID: john.ID, TargetID: mary.ID, Type: "Mentor", InverseID: "edge-2",
		}
		gateway.Edges["edge-2"] = &entities.RelationshipEdge{
			ID: "edge-2", StoryID: "story-1", SourceID: mary.ID, TargetID: third.ID, Type: "Mentee", InverseID: "edge-1",
		}
		gateway.FindEdgeErr = errors.New("locked")

		err = svc.Delete(ctx, john.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrPersistence)

		assert.Contains(t, gateway.Characters, john.ID)
		require.Contains(t, gateway.Edges, "edge-1")
		require.Contains(t, gateway.Edges, "edge-2")
		assert.Equal(t, "edge-1", gateway.Edges["edge-2"].InverseID)
	})

	t.Run("character delete failure restores edges and layouts", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		ctx := context.Background()
		john, mary := seed(t, svc, gateway)

		gateway.Edges["edge-1"] = &entities.RelationshipEdge{
			ID: "edge-1", StoryID: "story-1", SourceID: john.ID, TargetID: mary.ID, Type: "Friend",
		}
		gateway.Views["view-1"] = &entities.View{
			ID: "view-1", StoryID: "story-1", Name: "Main",
			Layout: entities.Layout{john.ID: {X: 100, Y: 100}},
		}
		gateway.DeleteCharacterErr = errors.New("locked")

		err := svc.Delete(ctx, john.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrPersistence)

		// Everything compensated.
		assert.Contains(t, gateway.Characters, john.ID)
		assert.Contains(t, gateway.Edges, "edge-1")
		assert.Contains(t, gateway.Views["view-1"].Layout, john.ID)
	})

	t.Run("layout trim failure restores deleted edges", func(t *testing.T) {
		svc, gateway := setupStoreTest()
		ctx := context.Background()
		john, mary := seed(t, svc, gateway)

		gateway.Edges["edge-1"] = &entities.RelationshipEdge{
			ID: "edge-1", StoryID: "story-1", SourceID: john.ID, TargetID: mary.ID, Type: "Friend",
		}
		gateway.Views["view-1"] = &entities.View{
			ID: "view-1", StoryID: "story-1", Name: "Main",
			Layout: entities.Layout{john.ID: {X: 100, Y: 100}},
		}
		gateway.SaveLayoutErr = errors.New("locked")

		err := svc.Delete(ctx, john.ID)
		require.Error(t, err)

		assert.Contains(t, gateway.Characters, john.ID)
		assert.Contains(t, gateway.Edges, "edge-1")
	})

	t.Run("unknown character", func(t *testing.T) {
		svc, _ := setupStoreTest()

		err := svc.Delete(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}
