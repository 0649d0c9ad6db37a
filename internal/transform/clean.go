package transform

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"MoviesETL/internal/domain"
	"MoviesETL/internal/infrastructure/csvdump"
	"MoviesETL/internal/pyliteral"
)

// CleanResult holds the surviving rows plus what was rejected along the way.
type CleanResult struct {
	Movies   []domain.CleanedMovie
	Rejected []*ParseError
	Dropped  int
}

// Clean projects the dump onto domain.CleanedColumns, parses genres and keeps
// rows with positive popularity, revenue and budget. Rows with a malformed
// genres cell are rejected individually.
func Clean(table *csvdump.Table) (CleanResult, error) {
	cols, err := project(table)
	if err != nil {
		return CleanResult{}, err
	}

	result := CleanResult{Movies: make([]domain.CleanedMovie, 0, len(table.Rows))}
	width := len(table.Header)
	for i, row := range table.Rows {
		if len(row) < width {
			row = append(slices.Clone(row), make([]string, width-len(row))...)
		}
		genres, err := ParseGenres(row[cols["genres"]])
		if err != nil {
			result.Rejected = append(result.Rejected, &ParseError{Row: i, Column: "genres", Err: err})
			continue
		}

		movie := domain.CleanedMovie{
			ID:            toInt(parseNumber(row[cols["id"]])),
			OriginalTitle: row[cols["original_title"]],
			Genres:        genres,
			Popularity:    parseNumber(row[cols["popularity"]]),
			ReleaseDate:   row[cols["release_date"]],
			Revenue:       parseNumber(row[cols["revenue"]]),
			Budget:        parseNumber(row[cols["budget"]]),
			Title:         row[cols["title"]],
			VoteAverage:   parseNumber(row[cols["vote_average"]]),
			VoteCount:     toInt(parseNumber(row[cols["vote_count"]])),
		}

		// NaN fails every comparison, so empty placeholder rows drop here.
		if !(movie.Popularity > 0 && movie.Revenue > 0 && movie.Budget > 0) {
			result.Dropped++
			continue
		}
		result.Movies = append(result.Movies, movie)
	}

	return result, nil
}

func project(table *csvdump.Table) (map[string]int, error) {
	if table == nil {
		return nil, &SchemaError{Missing: append([]string(nil), domain.CleanedColumns...)}
	}

	cols := make(map[string]int, len(domain.CleanedColumns))
	var missing []string
	for _, name := range domain.CleanedColumns {
		idx := table.Column(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return cols, nil
}

// ParseGenres decodes a serialized list of {'id', 'name'} objects and
// returns the names. An empty cell is an empty list.
func ParseGenres(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	value, err := pyliteral.Parse(raw)
	if err != nil {
		return nil, err
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("genres is %T, want list", value)
	}

	names := make([]string, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("genre %d is %T, want dict", i, item)
		}
		name, ok := obj["name"].(string)
		if !ok {
			return nil, fmt.Errorf("genre %d has no string name", i)
		}
		names = append(names, name)
	}
	return names, nil
}

func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

func toInt(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}
