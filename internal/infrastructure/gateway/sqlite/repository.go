// Package sqlite provides a SQLite implementation of the Gateway interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/inkvane/story-core/internal/domain/entities"
	"github.com/inkvane/story-core/internal/infrastructure/config"
)

// Repository implements ports.Gateway using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Characters (narrative entities scoped to a story)
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		story_id TEXT NOT NULL,
		name TEXT NOT NULL,
		aliases TEXT,
		is_main_character INTEGER NOT NULL DEFAULT 0,
		age_value INTEGER NOT NULL DEFAULT 0,
		age_category TEXT,
		gender TEXT NOT NULL DEFAULT 'NOT_SPECIFIED',
		is_archived INTEGER NOT NULL DEFAULT 0,
		is_deceased INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_characters_story ON characters(story_id);

	-- Relationship edges (directed, typed connections between characters)
	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		story_id TEXT NOT NULL,
		source_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		type TEXT NOT NULL,
		inverse_id TEXT,
		color TEXT NOT NULL DEFAULT '#FF0000',
		width REAL NOT NULL DEFAULT 1.0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_story ON relationships(story_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_source ON relationships(source_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target_id);

	-- Story board views (named spatial snapshots)
	CREATE TABLE IF NOT EXISTS story_board_views (
		id TEXT PRIMARY KEY,
		story_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'BOARD',
		layout_data TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_views_story ON story_board_views(story_id);

	-- Relationship type usage (ranking history for suggestions)
	CREATE TABLE IF NOT EXISTS relationship_type_usage (
		story_id TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		name TEXT NOT NULL,
		usage_count INTEGER NOT NULL DEFAULT 0,
		last_used TIMESTAMP,
		PRIMARY KEY (story_id, normalized_name)
	);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Character operations

// LoadCharacters returns a story's characters in insertion order.
func (r *Repository) LoadCharacters(ctx context.Context, storyID string) ([]entities.Character, error) {
	query := `
		SELECT id, story_id, name, aliases, is_main_character, age_value,
		       age_category, gender, is_archived, is_deceased, created_at
		FROM characters
		WHERE story_id = ?
		ORDER BY rowid
	`
	rows, err := r.db.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	var result []entities.Character
	for rows.Next() {
		ch, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ch)
	}
	return result, rows.Err()
}

// SaveCharacter inserts or updates a character.
func (r *Repository) SaveCharacter(ctx context.Context, ch *entities.Character) (string, error) {
	query := `
		INSERT INTO characters (id, story_id, name, aliases, is_main_character,
			age_value, age_category, gender, is_archived, is_deceased, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			aliases = excluded.aliases,
			is_main_character = excluded.is_main_character,
			age_value = excluded.age_value,
			age_category = excluded.age_category,
			gender = excluded.gender,
			is_archived = excluded.is_archived,
			is_deceased = excluded.is_deceased
	`
	_, err := r.db.ExecContext(ctx, query,
		ch.ID,
		ch.StoryID,
		ch.Name,
		strings.Join(ch.Aliases, ","),
		ch.IsMain,
		ch.AgeValue,
		string(ch.AgeLabel),
		string(ch.Gender),
		ch.Archived,
		ch.Deceased,
		ch.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("saving character: %w", err)
	}
	return ch.ID, nil
}

// FindCharacter returns a character by ID, or nil if absent.
func (r *Repository) FindCharacter(ctx context.Context, id string) (*entities.Character, error) {
	query := `
		SELECT id, story_id, name, aliases, is_main_character, age_value,
		       age_category, gender, is_archived, is_deceased, created_at
		FROM characters
		WHERE id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying character: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCharacter(rows)
}

// DeleteCharacter removes a character by ID.
func (r *Repository) DeleteCharacter(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("character not found: %s", id)
	}
	return nil
}

// Edge operations

// LoadEdges returns all relationship edges of a story.
func (r *Repository) LoadEdges(ctx context.Context, storyID string) ([]entities.RelationshipEdge, error) {
	query := `
		SELECT id, story_id, source_id, target_id, type, inverse_id, color, width, created_at
		FROM relationships
		WHERE story_id = ?
		ORDER BY rowid
	`
	rows, err := r.db.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var result []entities.RelationshipEdge
	for rows.Next() {
		edge, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *edge)
	}
	return result, rows.Err()
}

// SaveEdge inserts or updates an edge.
func (r *Repository) SaveEdge(ctx context.Context, edge *entities.RelationshipEdge) (string, error) {
	query := `
		INSERT INTO relationships (id, story_id, source_id, target_id, type, inverse_id, color, width, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_id = excluded.source_id,
			target_id = excluded.target_id,
			type = excluded.type,
			inverse_id = excluded.inverse_id,
			color = excluded.color,
			width = excluded.width
	`
	_, err := r.db.ExecContext(ctx, query,
		edge.ID,
		edge.StoryID,
		edge.SourceID,
		edge.TargetID,
		edge.Type,
		nullableString(edge.InverseID),
		edge.Color,
		edge.Width,
		edge.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("saving edge: %w", err)
	}
	return edge.ID, nil
}

// FindEdge returns an edge by ID, or nil if absent.
func (r *Repository) FindEdge(ctx context.Context, id string) (*entities.RelationshipEdge, error) {
	query := `
		SELECT id, story_id, source_id, target_id, type, inverse_id, color, width, created_at
		FROM relationships
		WHERE id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying edge: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanEdge(rows)
}

// DeleteEdge removes an edge by ID.
func (r *Repository) DeleteEdge(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting edge: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("edge not found: %s", id)
	}
	return nil
}

// View operations

// LoadViews returns all views of a story.
func (r *Repository) LoadViews(ctx context.Context, storyID string) ([]entities.View, error) {
	query := `
		SELECT id, story_id, name, kind, layout_data, created_at
		FROM story_board_views
		WHERE story_id = ?
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("querying views: %w", err)
	}
	defer rows.Close()

	var result []entities.View
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *view)
	}
	return result, rows.Err()
}

// SaveView inserts or updates a view, including its layout.
func (r *Repository) SaveView(ctx context.Context, view *entities.View) (string, error) {
	data, err := encodeLayout(view.Layout)
	if err != nil {
		return "", err
	}
	query := `
		INSERT INTO story_board_views (id, story_id, name, kind, layout_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			layout_data = excluded.layout_data
	`
	_, err = r.db.ExecContext(ctx, query,
		view.ID,
		view.StoryID,
		view.Name,
		string(view.Kind),
		data,
		view.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("saving view: %w", err)
	}
	return view.ID, nil
}

// FindView returns a view by ID, or nil if absent.
func (r *Repository) FindView(ctx context.Context, id string) (*entities.View, error) {
	query := `
		SELECT id, story_id, name, kind, layout_data, created_at
		FROM story_board_views
		WHERE id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying view: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanView(rows)
}

// SaveViewLayout replaces a view's layout map wholesale.
func (r *Repository) SaveViewLayout(ctx context.Context, viewID string, layout entities.Layout) error {
	data, err := encodeLayout(layout)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE story_board_views SET layout_data = ? WHERE id = ?`, data, viewID)
	if err != nil {
		return fmt.Errorf("saving view layout: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("view not found: %s", viewID)
	}
	return nil
}

// DeleteView removes a view by ID.
func (r *Repository) DeleteView(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM story_board_views WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting view: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("view not found: %s", id)
	}
	return nil
}

// Type usage operations

// LoadTypeUsage returns a story's relationship-type usage history.
func (r *Repository) LoadTypeUsage(ctx context.Context, storyID string) ([]entities.TypeUsage, error) {
	query := `
		SELECT story_id, name, usage_count, last_used
		FROM relationship_type_usage
		WHERE story_id = ?
		ORDER BY usage_count DESC, last_used DESC, normalized_name
	`
	rows, err := r.db.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("querying type usage: %w", err)
	}
	defer rows.Close()

	var result []entities.TypeUsage
	for rows.Next() {
		var usage entities.TypeUsage
		var lastUsed sql.NullTime
		if err := rows.Scan(&usage.StoryID, &usage.Name, &usage.Count, &lastUsed); err != nil {
			return nil, fmt.Errorf("scanning type usage: %w", err)
		}
		if lastUsed.Valid {
			usage.LastUsed = lastUsed.Time
		}
		result = append(result, usage)
	}
	return result, rows.Err()
}

// RecordTypeUsage inserts or updates one usage record.
func (r *Repository) RecordTypeUsage(ctx context.Context, usage *entities.TypeUsage) error {
	query := `
		INSERT INTO relationship_type_usage (story_id, normalized_name, name, usage_count, last_used)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(story_id, normalized_name) DO UPDATE SET
			usage_count = excluded.usage_count,
			last_used = excluded.last_used
	`
	_, err := r.db.ExecContext(ctx, query,
		usage.StoryID,
		entities.NormalizeType(usage.Name),
		usage.Name,
		usage.Count,
		usage.LastUsed,
	)
	if err != nil {
		return fmt.Errorf("recording type usage: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCharacter(s scanner) (*entities.Character, error) {
	var ch entities.Character
	var aliases, ageCategory, gender string
	err := s.Scan(
		&ch.ID,
		&ch.StoryID,
		&ch.Name,
		&aliases,
		&ch.IsMain,
		&ch.AgeValue,
		&ageCategory,
		&gender,
		&ch.Archived,
		&ch.Deceased,
		&ch.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning character: %w", err)
	}
	if aliases != "" {
		ch.Aliases = strings.Split(aliases, ",")
	}
	ch.AgeLabel = entities.AgeCategory(ageCategory)
	ch.Gender = entities.Gender(gender)
	return &ch, nil
}

func scanEdge(s scanner) (*entities.RelationshipEdge, error) {
	var edge entities.RelationshipEdge
	var inverseID sql.NullString
	err := s.Scan(
		&edge.ID,
		&edge.StoryID,
		&edge.SourceID,
		&edge.TargetID,
		&edge.Type,
		&inverseID,
		&edge.Color,
		&edge.Width,
		&edge.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning edge: %w", err)
	}
	if inverseID.Valid {
		edge.InverseID = inverseID.String
	}
	return &edge, nil
}

func scanView(s scanner) (*entities.View, error) {
	var view entities.View
	var kind, layoutData string
	err := s.Scan(
		&view.ID,
		&view.StoryID,
		&view.Name,
		&kind,
		&layoutData,
		&view.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning view: %w", err)
	}
	view.Kind = entities.ViewKind(kind)
	layout, err := decodeLayout(layoutData)
	if err != nil {
		return nil, err
	}
	view.Layout = layout
	return &view, nil
}

// layoutDocument is the persisted layout shape:
// {"characters": {"<id>": {"x": ..., "y": ...}}}.
// Unknown keys are ignored when reading for forward compatibility.
type layoutDocument struct {
	Characters map[string]entities.Position `json:"characters"`
}

func encodeLayout(layout entities.Layout) (string, error) {
	doc := layoutDocument{Characters: layout}
	if doc.Characters == nil {
		doc.Characters = entities.Layout{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding layout: %w", err)
	}
	return string(data), nil
}

func decodeLayout(data string) (entities.Layout, error) {
	var doc layoutDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	if doc.Characters == nil {
		return entities.Layout{}, nil
	}
	return doc.Characters, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
