package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jonathan/recipe-scraper/internal/types"
)

// DefaultDir is the directory CSV files are written to.
const DefaultDir = "recipes"

// CSVPath returns the output file path for an ingredient inside dir.
func CSVPath(dir, ingredient string) (string, error) {
	name, err := SafeFileName(ingredient)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".csv"), nil
}

// WriteCSV writes recipes to <dir>/<ingredient>.csv, creating dir if needed
// and overwriting any existing file. The header row is always written.
// It returns the path of the written file.
func WriteCSV(dir, ingredient string, recipes []types.Recipe) (path string, err error) {
	if dir == "" {
		dir = DefaultDir
	}

	path, err = CSVPath(dir, ingredient)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &WriteError{Path: dir, Op: "create directory", Cause: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", &WriteError{Path: path, Op: "create file", Cause: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &WriteError{Path: path, Op: "close file", Cause: closeErr}
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(types.CSVHeader); err != nil {
		return "", &WriteError{Path: path, Op: "write header", Cause: err}
	}
	for _, r := range recipes {
		if err := w.Write(r.Row()); err != nil {
			return "", &WriteError{Path: path, Op: "write row", Cause: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", &WriteError{Path: path, Op: "flush", Cause: err}
	}

	return path, nil
}

// ReadCSV reads a file produced by WriteCSV back into recipes.
func ReadCSV(path string) ([]types.Recipe, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(types.CSVHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("CSV file is empty: missing header")
	}
	if !slices.Equal(rows[0], types.CSVHeader) {
		return nil, fmt.Errorf("unexpected CSV header %v", rows[0])
	}

	recipes := make([]types.Recipe, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recipes = append(recipes, types.RecipeFromRow(row))
	}
	return recipes, nil
}
