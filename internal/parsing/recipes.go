package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/jonathan/recipe-scraper/internal/types"
)

// Selectors locates recipe cards and their fields in a results page.
// Field selectors are evaluated inside each card.
type Selectors struct {
	Card       string `json:"card"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	PrepTime   string `json:"prep_time"`
}

// DefaultSelectors returns the markers used by the recipe site's search results.
func DefaultSelectors() Selectors {
	return Selectors{
		Card:       "div.recipe",
		Name:       "p.recipe-name",
		Difficulty: "span.recipe-difficulty",
		PrepTime:   "span.recipe-cooktime",
	}
}

// MergeWithDefaults fills empty selectors from DefaultSelectors.
func (s Selectors) MergeWithDefaults() Selectors {
	defaults := DefaultSelectors()
	if s.Card == "" {
		s.Card = defaults.Card
	}
	if s.Name == "" {
		s.Name = defaults.Name
	}
	if s.Difficulty == "" {
		s.Difficulty = defaults.Difficulty
	}
	if s.PrepTime == "" {
		s.PrepTime = defaults.PrepTime
	}
	return s
}

// Validate checks that every selector compiles.
func (s Selectors) Validate() error {
	fields := []struct {
		name     string
		selector string
	}{
		{"card", s.Card},
		{"name", s.Name},
		{"difficulty", s.Difficulty},
		{"prep_time", s.PrepTime},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.selector) == "" {
			return &SelectorError{Field: f.name, Message: "selector is empty"}
		}
		if _, err := cascadia.Compile(f.selector); err != nil {
			return &SelectorError{Field: f.name, Message: err.Error()}
		}
	}
	return nil
}

// ParseRecipes extracts one record per recipe card using DefaultSelectors.
func ParseRecipes(html string) ([]types.Recipe, error) {
	return ParseRecipesWith(html, DefaultSelectors())
}

// ParseRecipesWith extracts one record per card matched by sel.Card.
// A page with no cards yields an empty slice and no error.
// A field whose marker is missing from a card is set to types.Unknown.
func ParseRecipesWith(html string, sel Selectors) ([]types.Recipe, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	recipes := make([]types.Recipe, 0)
	doc.Find(sel.Card).Each(func(_ int, card *goquery.Selection) {
		recipes = append(recipes, types.Recipe{
			Name:       fieldText(card, sel.Name),
			Difficulty: fieldText(card, sel.Difficulty),
			PrepTime:   fieldText(card, sel.PrepTime),
		})
	})

	return recipes, nil
}

// fieldText returns the trimmed text of the first match inside card, or types.Unknown.
func fieldText(card *goquery.Selection, selector string) string {
	match := card.Find(selector).First()
	if match.Length() == 0 {
		return types.Unknown
	}
	return strings.TrimSpace(match.Text())
}
