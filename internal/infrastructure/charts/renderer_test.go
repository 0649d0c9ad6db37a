package charts

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"MoviesETL/internal/domain"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	return r
}

func assertPNG(t *testing.T, path string) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if b := img.Bounds(); b.Dx() != chartWidth || b.Dy() != chartHeight {
		t.Fatalf("unexpected size %v for %s", b, path)
	}
}

func TestRenderWritesAllArtifacts(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "plots")
	top := []domain.YearTopMovie{
		{Year: 2010, Title: "Inception", ProfitabilitySuccess: 0.41},
		{Year: 2011, Title: "The Intouchables & Friends", ProfitabilitySuccess: 1},
		{Year: 2012, Title: "The Avengers", ProfitabilitySuccess: 0.2},
	}
	averages := []domain.YearAverages{
		{Year: 1994, AvgProfitabilitySuccess: 0.3, AvgGeneralPopularity: 0.4},
		{Year: 2010, AvgProfitabilitySuccess: 0.2, AvgGeneralPopularity: 0.6},
		{Year: 2011, AvgProfitabilitySuccess: 0.5, AvgGeneralPopularity: 0.1},
	}

	artifacts, err := newTestRenderer(t).Render(dir, top, averages)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if artifacts.TopMoviesChart != filepath.Join(dir, "most_profitable_movies.png") {
		t.Fatalf("unexpected bar chart path %s", artifacts.TopMoviesChart)
	}
	if artifacts.AveragesChart != filepath.Join(dir, "avg_metrics_by_year.png") {
		t.Fatalf("unexpected line chart path %s", artifacts.AveragesChart)
	}
	assertPNG(t, artifacts.TopMoviesChart)
	assertPNG(t, artifacts.AveragesChart)

	f, err := os.Open(artifacts.Index)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		t.Fatalf("parse index: %v", err)
	}

	rows := doc.Find("#top-movies-table tbody tr")
	if rows.Length() != len(top) {
		t.Fatalf("expected %d top rows, got %d", len(top), rows.Length())
	}
	if got := rows.Eq(1).Find("td.title").Text(); got != "The Intouchables & Friends" {
		t.Fatalf("unexpected escaped title: %q", got)
	}
	if got := rows.Eq(1).Find("td.score").Text(); got != "1.000" {
		t.Fatalf("unexpected score: %q", got)
	}
	if got := doc.Find("#averages-table tbody tr").Length(); got != len(averages) {
		t.Fatalf("expected %d average rows, got %d", len(averages), got)
	}
	if src, _ := doc.Find("#top-movies img").Attr("src"); src != TopMoviesFile {
		t.Fatalf("unexpected image src %q", src)
	}
}

func TestRenderEmptyData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	artifacts, err := newTestRenderer(t).Render(dir, nil, nil)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	assertPNG(t, artifacts.TopMoviesChart)
	assertPNG(t, artifacts.AveragesChart)
}

func TestNewRendererMissingFont(t *testing.T) {
	t.Parallel()

	if _, err := NewRenderer(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatal("expected error for missing font")
	}
}

func TestPlotAreaScaling(t *testing.T) {
	t.Parallel()

	area := plotArea{left: 10, top: 20, right: 110, bottom: 220}
	if got := area.x(0.5, 0, 1); got != 60 {
		t.Fatalf("x(0.5) = %v", got)
	}
	if got := area.y(1, 0, 1); got != 20 {
		t.Fatalf("y(1) = %v", got)
	}
	if got := area.y(0, 0, 1); got != 220 {
		t.Fatalf("y(0) = %v", got)
	}
	if got := area.x(2010, 2010, 2010); got != 60 {
		t.Fatalf("degenerate x = %v", got)
	}
	if got := yearStep(30, 10); got != 4 {
		t.Fatalf("yearStep(30, 10) = %d", got)
	}
	if got := yearStep(0, 10); got != 1 {
		t.Fatalf("yearStep(0, 10) = %d", got)
	}
}

func TestBarLabelPlacement(t *testing.T) {
	t.Parallel()

	area := plotArea{left: 70, top: 60, right: 670, bottom: 750}

	if x, anchor, inside := area.barLabel(200, 100); x != 204 || anchor != 0 || inside {
		t.Fatalf("short title after bar: x=%v anchor=%v inside=%v", x, anchor, inside)
	}
	if x, anchor, inside := area.barLabel(600, 200); x != 596 || anchor != 1 || !inside {
		t.Fatalf("long bar keeps title inside: x=%v anchor=%v inside=%v", x, anchor, inside)
	}
	// A near-zero bar with a title wider than the frame must stay dark text.
	if x, anchor, inside := area.barLabel(72, 650); x != 76 || anchor != 0 || inside {
		t.Fatalf("narrow bar fallback: x=%v anchor=%v inside=%v", x, anchor, inside)
	}
}
