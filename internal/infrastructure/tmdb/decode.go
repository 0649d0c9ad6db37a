package tmdb

import (
	"encoding/json"
	"fmt"
	"io"

	"MoviesETL/internal/domain"
)

// decodeRawMovie reads a JSON object, keeping its keys in document order.
// Numbers stay as json.Number so identifiers and budgets are not rounded.
func decodeRawMovie(r io.Reader) (domain.RawMovie, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return domain.RawMovie{}, fmt.Errorf("read object start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return domain.RawMovie{}, fmt.Errorf("expected JSON object, got %v", tok)
	}

	movie := domain.RawMovie{Fields: map[string]any{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return domain.RawMovie{}, fmt.Errorf("read key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return domain.RawMovie{}, fmt.Errorf("unexpected key token %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return domain.RawMovie{}, fmt.Errorf("decode field %s: %w", key, err)
		}
		if _, seen := movie.Fields[key]; !seen {
			movie.Keys = append(movie.Keys, key)
		}
		movie.Fields[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return domain.RawMovie{}, fmt.Errorf("read object end: %w", err)
	}
	return movie, nil
}
