package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"MoviesETL/internal/domain"
	"MoviesETL/internal/ports"
)

// File names written into the plot directory.
const (
	// TopMoviesFile is the bar chart of the yearly winners.
	TopMoviesFile = "most_profitable_movies.png"
	// AveragesFile is the line chart of yearly KPI averages.
	AveragesFile = "avg_metrics_by_year.png"
	// IndexFile is the HTML page embedding both charts.
	IndexFile = "index.html"

	chartWidth  = 700
	chartHeight = 800
)

// Renderer draws the report charts with a single loaded font.
type Renderer struct {
	font *truetype.Font
}

var _ ports.ChartRenderer = (*Renderer)(nil)

// NewRenderer loads the TTF at fontPath, or the bundled Go Regular face when
// fontPath is empty.
func NewRenderer(fontPath string) (*Renderer, error) {
	raw := goregular.TTF
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", fontPath, err)
		}
		raw = b
	}

	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Renderer{font: parsed}, nil
}

func (r *Renderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render writes both charts and the HTML index into dir.
func (r *Renderer) Render(dir string, top []domain.YearTopMovie, averages []domain.YearAverages) (domain.Artifacts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Artifacts{}, fmt.Errorf("create plot dir %s: %w", dir, err)
	}

	artifacts := domain.Artifacts{
		TopMoviesChart: filepath.Join(dir, TopMoviesFile),
		AveragesChart:  filepath.Join(dir, AveragesFile),
		Index:          filepath.Join(dir, IndexFile),
	}

	if err := r.barChart(top).SavePNG(artifacts.TopMoviesChart); err != nil {
		return domain.Artifacts{}, fmt.Errorf("save %s: %w", artifacts.TopMoviesChart, err)
	}
	if err := r.lineChart(averages).SavePNG(artifacts.AveragesChart); err != nil {
		return domain.Artifacts{}, fmt.Errorf("save %s: %w", artifacts.AveragesChart, err)
	}
	if err := writeIndex(artifacts.Index, top, averages); err != nil {
		return domain.Artifacts{}, err
	}

	return artifacts, nil
}
