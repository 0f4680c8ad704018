// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonathan/recipe-scraper/internal/db"
	"github.com/jonathan/recipe-scraper/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxRecipesToShow caps the rows rendered in the recipe table
	maxRecipesToShow = 30
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncateRunes(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncateRunes shortens s to at most width runes, marking the cut with "...".
func truncateRunes(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintRecipes renders the collected recipes as a table.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecipes(ingredient string, recipes []types.Recipe) {
	if len(recipes) == 0 {
		p.printBox("RECIPES: "+ingredient, "No recipes found")
		return
	}

	t := table.NewWriter()
	t.SetTitle("RECIPES: %s", ingredient)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Name", "Difficulty", "Prep time"})

	count := min(len(recipes), maxRecipesToShow)
	for i := 0; i < count; i++ {
		r := recipes[i]
		t.AppendRow(table.Row{i + 1, r.Name, r.Difficulty, r.PrepTime})
	}
	if len(recipes) > maxRecipesToShow {
		t.AppendFooter(table.Row{"", fmt.Sprintf("... and %d more", len(recipes)-maxRecipesToShow), "", ""})
	} else {
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d recipes", len(recipes)), "", ""})
	}

	fmt.Fprintln(p.out, t.Render())
}

// PrintRunSummary outputs where the results went.
// previous is the last completed run for the ingredient, or nil.
func (p *Printer) PrintRunSummary(ingredient, path string, count int, runID string, previous *db.ScrapeRun) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ingredient: %s\n", ingredient))
	sb.WriteString(fmt.Sprintf("Recipes:    %d\n", count))
	sb.WriteString(fmt.Sprintf("CSV:        %s", path))
	if runID != "" {
		sb.WriteString(fmt.Sprintf("\nRun ID:     %s", runID))
	}
	if previous != nil {
		sb.WriteString(fmt.Sprintf("\nPrevious:   %d recipes on %s",
			previous.RecipeCount, previous.StartedAt.Format("2006-01-02 15:04")))
	}
	p.printBox("SCRAPE SUMMARY", sb.String())
}
