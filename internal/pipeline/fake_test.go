package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/recipe-scraper/internal/db"
	"github.com/jonathan/recipe-scraper/internal/types"
)

// pageFetcher serves canned pages and records which pages were requested.
type pageFetcher struct {
	pages     map[int]string
	errOnPage map[int]error
	requested []int
}

func (f *pageFetcher) Fetch(_ context.Context, _ string, page int) (string, error) {
	f.requested = append(f.requested, page)
	if err := f.errOnPage[page]; err != nil {
		return "", err
	}
	return f.pages[page], nil
}

// cardsPage renders a results page with one card per recipe.
func cardsPage(recipes ...types.Recipe) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for _, r := range recipes {
		sb.WriteString(`<div class="recipe">`)
		if r.Name != types.Unknown {
			fmt.Fprintf(&sb, `<p class="recipe-name">%s</p>`, r.Name)
		}
		if r.Difficulty != types.Unknown {
			fmt.Fprintf(&sb, `<span class="recipe-difficulty">%s</span>`, r.Difficulty)
		}
		if r.PrepTime != types.Unknown {
			fmt.Fprintf(&sb, `<span class="recipe-cooktime">%s</span>`, r.PrepTime)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

type fakeStore struct {
	previous   *db.ScrapeRun
	latestErr  error
	runID      uuid.UUID
	createErr  error
	saveErr    error
	ingredient string
	source     string
	saved      []types.Recipe
	status     string
	count      int
}

func (s *fakeStore) LatestRunForIngredient(_ context.Context, _ string) (*db.ScrapeRun, error) {
	return s.previous, s.latestErr
}

func (s *fakeStore) CreateRun(_ context.Context, ingredient, source string) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.ingredient = ingredient
	s.source = source
	s.runID = uuid.New()
	return s.runID, nil
}

func (s *fakeStore) SaveRecipes(_ context.Context, _ uuid.UUID, recipes []types.Recipe) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = recipes
	return nil
}

func (s *fakeStore) CompleteRun(_ context.Context, _ uuid.UUID, status string, count int) error {
	s.status = status
	s.count = count
	return nil
}

var errBoom = errors.New("boom")
