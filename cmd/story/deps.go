package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inkvane/story-core/internal/application/handlers"
	"github.com/inkvane/story-core/internal/domain/services"
	"github.com/inkvane/story-core/internal/infrastructure/config"
	"github.com/inkvane/story-core/internal/infrastructure/gateway/sqlite"
)

// Deps holds the dependencies commands work with. Only handlers are
// exposed - services and the gateway stay behind them.
type Deps struct {
	Config        *config.Config
	Stories       *config.StoriesConfig
	StoryID       string
	Characters    *handlers.CharacterHandler
	Relationships *handlers.RelationshipHandler
	Views         *handlers.ViewHandler
}

// withDeps loads config and builds dependencies, then calls the provided
// function. Cleanup (including a flush of any buffered layout writes)
// happens automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	stories, err := config.LoadStories(cwd)
	if err != nil {
		return fmt.Errorf("loading stories: %w", err)
	}

	if globalStory == "" {
		return errors.New("story is required (use --story flag)")
	}

	storyID, err := stories.GetID(globalStory)
	if err != nil {
		return err
	}

	sqlitePath := config.SQLitePathForStory(cwd, globalStory)
	gateway, err := sqlite.NewRepository(config.SQLiteConfig{Path: sqlitePath})
	if err != nil {
		return fmt.Errorf("creating sqlite gateway: %w", err)
	}
	defer gateway.Close()

	ctx := context.Background()
	if err := gateway.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	registry := services.NewRegistryService(gateway)
	if err := registry.Open(ctx, storyID); err != nil {
		return fmt.Errorf("opening type registry: %w", err)
	}
	defer registry.Close(storyID)

	store := services.NewStoreService(gateway, cfg.LabelSets())
	graph := services.NewGraphService(gateway, registry)
	layouts := services.NewLayoutService(gateway, cfg.GridConfig())
	autosaver := services.NewLayoutAutoSaver(layouts, cfg.AutosaveInterval())
	defer autosaver.Close()

	return fn(&Deps{
		Config:        cfg,
		Stories:       stories,
		StoryID:       storyID,
		Characters:    handlers.NewCharacterHandler(store),
		Relationships: handlers.NewRelationshipHandler(graph, registry),
		Views:         handlers.NewViewHandler(layouts, autosaver),
	})
}
