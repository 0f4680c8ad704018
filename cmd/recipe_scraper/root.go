package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/recipe-scraper/internal/config"
	"github.com/jonathan/recipe-scraper/internal/db"
	"github.com/jonathan/recipe-scraper/internal/fetch"
	"github.com/jonathan/recipe-scraper/internal/observability"
	"github.com/jonathan/recipe-scraper/internal/pipeline"
)

// usageLine is printed when no ingredient is given.
const usageLine = "Usage: recipe_scraper INGREDIENT"

// dbConnectTimeout bounds the optional database connection attempt.
const dbConnectTimeout = 5 * time.Second

type rootFlags struct {
	configPath  string
	source      string
	baseURL     string
	pagesDir    string
	outDir      string
	timeout     int
	userAgent   string
	databaseURL string
	verbose     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "recipe_scraper [INGREDIENT]",
		Short: "Scrape recipe search results for an ingredient into a CSV file",
		Long: "Fetches up to three search-result pages for an ingredient, extracts each recipe's " +
			"name, difficulty and preparation time, and writes them to <out>/<ingredient>.csv.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, _ = fmt.Fprintln(stdout, usageLine)
				return nil
			}
			return runScrape(cmd, args[0], &flags, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Path to JSON config file")
	f.StringVar(&flags.source, "source", "", "Page source: http, file or browser (default: http)")
	f.StringVar(&flags.baseURL, "base-url", "", "Search endpoint URL")
	f.StringVar(&flags.pagesDir, "pages-dir", "", "Directory of HTML snapshots for --source file (default: pages)")
	f.StringVarP(&flags.outDir, "out", "o", "", "Output directory (default: recipes)")
	f.IntVar(&flags.timeout, "timeout", 0, "Request timeout in seconds (default: 10; browser renders get at least 30)")
	f.StringVar(&flags.userAgent, "user-agent", "", "User-Agent header for HTTP requests")
	f.StringVar(&flags.databaseURL, "database-url", "", "PostgreSQL URL to also record the run (overrides DATABASE_URL)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Print debug logs and a table of scraped recipes")

	return cmd
}

// resolveConfig layers flags over the config file over env over built-in defaults.
func resolveConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	var cfg config.Config
	if flags.configPath != "" {
		fileCfg, err := config.LoadConfig(flags.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *fileCfg
	}
	cfg = cfg.MergeWithDefaults(envCfg)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.Source = flags.source
	}
	if changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if changed("pages-dir") {
		cfg.PagesDir = flags.pagesDir
	}
	if changed("out") {
		cfg.OutDir = flags.outDir
	}
	if changed("timeout") {
		cfg.TimeoutSeconds = flags.timeout
	}
	if changed("user-agent") {
		cfg.UserAgent = flags.userAgent
	}
	if changed("database-url") {
		cfg.DatabaseURL = flags.databaseURL
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runScrape(cmd *cobra.Command, ingredient string, flags *rootFlags, stdout, stderr io.Writer) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	observability.SetupLogger(stderr, cfg.Verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sourceCfg, err := cfg.SourceConfig()
	if err != nil {
		return err
	}
	fetcher, err := fetch.New(sourceCfg)
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		Ingredient: ingredient,
		Fetcher:    fetcher,
		Source:     sourceCfg.Source,
		Selectors:  cfg.Selectors,
		OutDir:     cfg.OutDir,
		OnProgress: func(e pipeline.ProgressEvent) {
			slog.DebugContext(ctx, e.Message, "step", e.Step, "count", e.Count)
		},
	}

	if cfg.DatabaseURL != "" {
		database := connectStore(ctx, cfg.DatabaseURL)
		if database != nil {
			defer database.Close()
			opts.Store = database
		}
	}

	slog.DebugContext(ctx, "scraping recipes", "ingredient", ingredient, "source", sourceCfg.Source)
	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(stdout)
		printer.PrintRecipes(ingredient, result.Recipes)
		runID := ""
		if result.RunID != uuid.Nil {
			runID = result.RunID.String()
		}
		printer.PrintRunSummary(ingredient, result.Path, len(result.Recipes), runID, result.Previous)
	}

	_, _ = fmt.Fprintf(stdout, "Wrote %d recipes to %s\n", len(result.Recipes), result.Path)
	return nil
}

// connectStore opens the database sink. Failures are logged and the scrape continues without it.
func connectStore(ctx context.Context, databaseURL string) *db.DB {
	connectCtx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()

	database, err := db.Connect(connectCtx, databaseURL)
	if err != nil {
		slog.WarnContext(ctx, "continuing without database persistence", "err", err)
		return nil
	}
	if err := database.EnsureSchema(connectCtx); err != nil {
		slog.WarnContext(ctx, "continuing without database persistence", "err", err)
		database.Close()
		return nil
	}
	slog.DebugContext(ctx, "connected to database")
	return database
}
