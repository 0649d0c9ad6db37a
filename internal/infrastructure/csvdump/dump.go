package csvdump

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"MoviesETL/internal/domain"
	"MoviesETL/internal/ports"
	"MoviesETL/internal/pyliteral"
)

// Writer materialises raw detail payloads as a dated CSV file.
type Writer struct {
	dir string
}

var _ ports.RawDumper = (*Writer)(nil)

// NewWriter targets dir, which is created on first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// FileName returns the dump name for the given day.
func FileName(day time.Time) string {
	return fmt.Sprintf("movies_%s.csv", day.Format("2006-01-02"))
}

// Dump writes movies_<date>.csv and returns its path.
func (w *Writer) Dump(day time.Time, movies []domain.RawMovie) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, FileName(day))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create dump %s: %w", path, err)
	}

	if err := Encode(f, movies); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write dump %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close dump %s: %w", path, err)
	}

	return path, nil
}

// Encode writes the header (union of keys, first-seen order) and one row per
// record. Keys a record lacks are written as empty cells.
func Encode(w io.Writer, movies []domain.RawMovie) error {
	header := unionKeys(movies)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, movie := range movies {
		for i, key := range header {
			v, ok := movie.Fields[key]
			if !ok {
				row[i] = ""
				continue
			}
			row[i] = formatCell(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func unionKeys(movies []domain.RawMovie) []string {
	seen := map[string]struct{}{}
	var header []string
	for _, movie := range movies {
		for _, key := range movie.Keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}
	return header
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any, map[string]any:
		return pyliteral.Format(t)
	default:
		return fmt.Sprint(t)
	}
}
