// Package types provides type definitions for structured data used throughout the recipe scraper.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Unknown is stored in a recipe field whose marker was absent from the page.
const Unknown = "Unknown"

// Recipe is one search-result card extracted from a results page.
type Recipe struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	PrepTime   string `json:"prep_time"`
}

// CSVHeader is the fixed column order used for CSV output.
var CSVHeader = []string{"name", "difficulty", "prep_time"}

// Row returns the recipe fields in CSVHeader order.
func (r Recipe) Row() []string {
	return []string{r.Name, r.Difficulty, r.PrepTime}
}

// RecipeFromRow builds a Recipe from a row in CSVHeader order.
// Short rows leave the trailing fields as Unknown.
func RecipeFromRow(row []string) Recipe {
	fields := [3]string{Unknown, Unknown, Unknown}
	copy(fields[:], row)
	return Recipe{Name: fields[0], Difficulty: fields[1], PrepTime: fields[2]}
}
