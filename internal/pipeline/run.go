package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/recipe-scraper/internal/db"
	"github.com/jonathan/recipe-scraper/internal/fetch"
	"github.com/jonathan/recipe-scraper/internal/output"
	"github.com/jonathan/recipe-scraper/internal/parsing"
	"github.com/jonathan/recipe-scraper/internal/types"
)

// ProgressEvent represents a progress update during a scrape
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Page    int    `json:"page,omitempty"`
	Count   int    `json:"count"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store persists scrape runs.
type Store interface {
	LatestRunForIngredient(ctx context.Context, ingredient string) (*db.ScrapeRun, error)
	CreateRun(ctx context.Context, ingredient, source string) (uuid.UUID, error)
	SaveRecipes(ctx context.Context, runID uuid.UUID, recipes []types.Recipe) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status string, recipeCount int) error
}

var _ Store = (*db.DB)(nil)

// RunOptions holds configuration for one scrape
type RunOptions struct {
	Ingredient string
	Fetcher    fetch.Fetcher
	Source     fetch.Source
	Selectors  parsing.Selectors
	OutDir     string
	Store      Store
	OnProgress ProgressCallback
}

// Result describes a finished scrape.
type Result struct {
	Path    string
	Recipes []types.Recipe
	RunID   uuid.UUID
	// Previous is the last completed run for the ingredient before this one, if any.
	Previous *db.ScrapeRun
}

func emitProgress(opts *RunOptions, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}

// Run collects every recipe for opts.Ingredient and writes them to CSV.
// Nothing is written when collection fails. Store failures are logged and do not fail the run.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured")
	}

	previous := previousRun(ctx, &opts)
	runID := startRun(ctx, &opts)

	recipes, err := Collect(ctx, opts.Fetcher, opts.Ingredient, CollectOptions{
		Selectors: opts.Selectors,
		OnPage: func(page, count int) {
			emitProgress(&opts, ProgressEvent{
				Step:    "collect",
				Message: fmt.Sprintf("page %d: %d recipes", page, count),
				Page:    page,
				Count:   count,
			})
		},
	})
	if err != nil {
		finishRun(ctx, &opts, runID, db.RunStatusFailed, 0)
		return nil, err
	}

	path, err := output.WriteCSV(opts.OutDir, opts.Ingredient, recipes)
	if err != nil {
		finishRun(ctx, &opts, runID, db.RunStatusFailed, len(recipes))
		return nil, err
	}
	emitProgress(&opts, ProgressEvent{
		Step:    "write",
		Message: fmt.Sprintf("wrote %s", path),
		Count:   len(recipes),
	})

	if opts.Store != nil && runID != uuid.Nil {
		if err := opts.Store.SaveRecipes(ctx, runID, recipes); err != nil {
			slog.WarnContext(ctx, "failed to save recipes", "run_id", runID, "err", err)
		}
	}
	finishRun(ctx, &opts, runID, db.RunStatusCompleted, len(recipes))

	return &Result{
		Path:     path,
		Recipes:  recipes,
		RunID:    runID,
		Previous: previous,
	}, nil
}

func previousRun(ctx context.Context, opts *RunOptions) *db.ScrapeRun {
	if opts.Store == nil {
		return nil
	}
	run, err := opts.Store.LatestRunForIngredient(ctx, opts.Ingredient)
	if err != nil {
		slog.WarnContext(ctx, "failed to look up previous run", "err", err)
		return nil
	}
	if run != nil {
		slog.DebugContext(ctx, "found previous run", "run_id", run.ID, "recipe_count", run.RecipeCount)
	}
	return run
}

func startRun(ctx context.Context, opts *RunOptions) uuid.UUID {
	if opts.Store == nil {
		return uuid.Nil
	}
	source := opts.Source
	if source == "" {
		source = fetch.SourceHTTP
	}
	runID, err := opts.Store.CreateRun(ctx, opts.Ingredient, string(source))
	if err != nil {
		slog.WarnContext(ctx, "failed to create scrape run", "err", err)
		return uuid.Nil
	}
	slog.DebugContext(ctx, "created scrape run", "run_id", runID)
	return runID
}

func finishRun(ctx context.Context, opts *RunOptions, runID uuid.UUID, status string, count int) {
	if opts.Store == nil || runID == uuid.Nil {
		return
	}
	if err := opts.Store.CompleteRun(ctx, runID, status, count); err != nil {
		slog.WarnContext(ctx, "failed to complete scrape run", "run_id", runID, "err", err)
	}
}
