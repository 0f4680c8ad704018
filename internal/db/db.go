// Package db provides PostgreSQL storage for scrape runs and the recipes they collected.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/recipe-scraper/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables used by the scraper if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// CreateRun records the start of a scrape and returns its ID
func (db *DB) CreateRun(ctx context.Context, ingredient, source string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO scrape_runs (id, ingredient, source, status)
		 VALUES ($1, $2, $3, $4)`,
		id, ingredient, source, RunStatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a scrape run as finished with the given status
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, recipeCount int) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE scrape_runs SET status = $1, recipe_count = $2, completed_at = NOW() WHERE id = $3`,
		status, recipeCount, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to complete run: run %s not found", runID)
	}
	return nil
}

// SaveRecipes replaces the recipes stored for a run, keeping their order
func (db *DB) SaveRecipes(ctx context.Context, runID uuid.UUID, recipes []types.Recipe) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM scraped_recipes WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}

	rows := make([][]any, 0, len(recipes))
	for i, r := range recipes {
		rows = append(rows, []any{runID, i, r.Name, r.Difficulty, r.PrepTime})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"scraped_recipes"},
		[]string{"run_id", "position", "name", "difficulty", "prep_time"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipes: %w", err)
	}
	return nil
}

// LatestRunForIngredient returns the most recent completed run for an ingredient, or nil
func (db *DB) LatestRunForIngredient(ctx context.Context, ingredient string) (*ScrapeRun, error) {
	var run ScrapeRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, ingredient, source, status, recipe_count, started_at, completed_at
		 FROM scrape_runs
		 WHERE ingredient = $1 AND status = $2
		 ORDER BY started_at DESC LIMIT 1`,
		ingredient, RunStatusCompleted,
	).Scan(&run.ID, &run.Ingredient, &run.Source, &run.Status, &run.RecipeCount, &run.StartedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return &run, nil
}
