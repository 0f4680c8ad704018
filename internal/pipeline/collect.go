// Package pipeline drives the fetch, parse and write steps for one ingredient.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/recipe-scraper/internal/fetch"
	"github.com/jonathan/recipe-scraper/internal/parsing"
	"github.com/jonathan/recipe-scraper/internal/types"
)

// MaxPages is the number of result pages requested per ingredient.
const MaxPages = 3

// PageCallback is called after each page is parsed with the number of recipes it held.
type PageCallback func(page, count int)

// CollectOptions tunes Collect.
type CollectOptions struct {
	Selectors parsing.Selectors
	OnPage    PageCallback
}

// Collect fetches pages 1..MaxPages in order and concatenates their recipes.
// It stops at the first page that holds no recipes; later pages are never fetched.
// Any fetch or parse error aborts the collection and no records are returned.
func Collect(ctx context.Context, f fetch.Fetcher, ingredient string, opts CollectOptions) ([]types.Recipe, error) {
	sel := opts.Selectors.MergeWithDefaults()

	all := make([]types.Recipe, 0)
	for page := 1; page <= MaxPages; page++ {
		html, err := f.Fetch(ctx, ingredient, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		recipes, err := parsing.ParseRecipesWith(html, sel)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		if opts.OnPage != nil {
			opts.OnPage(page, len(recipes))
		}

		if len(recipes) == 0 {
			break
		}
		all = append(all, recipes...)
	}

	return all, nil
}
