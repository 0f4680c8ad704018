package db

import (
	"time"

	"github.com/google/uuid"
)

// ScrapeRun represents one invocation of the scraper for an ingredient
type ScrapeRun struct {
	ID          uuid.UUID  `json:"id"`
	Ingredient  string     `json:"ingredient"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	RecipeCount int        `json:"recipe_count"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Schema is the DDL applied by EnsureSchema.
const Schema = `
CREATE TABLE IF NOT EXISTS scrape_runs (
	id           UUID PRIMARY KEY,
	ingredient   TEXT NOT NULL,
	source       TEXT NOT NULL,
	status       TEXT NOT NULL,
	recipe_count INTEGER NOT NULL DEFAULT 0,
	started_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_scrape_runs_ingredient ON scrape_runs (ingredient, started_at DESC);

CREATE TABLE IF NOT EXISTS scraped_recipes (
	run_id     UUID NOT NULL REFERENCES scrape_runs (id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	prep_time  TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
`
