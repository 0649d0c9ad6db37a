package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"MoviesETL/internal/config"
)

const detailBody = `{"id":7,"original_title":"Seven","genres":[{"id":18,"name":"Drama"}],` +
	`"popularity":3.5,"release_date":"2011-05-01","revenue":900,"budget":300,` +
	`"title":"Seven","vote_average":7.9,"vote_count":120}`

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()

	dir := t.TempDir()
	return config.Config{
		API: config.APIConfig{
			BaseURL: baseURL,
			APIKey:  "secret",
			Pages:   1,
			Timeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{Name: "moviesdb", Host: "localhost", Port: 5432, Table: "movies"},
		Output: config.OutputConfig{
			DataDir:  filepath.Join(dir, "data"),
			PlotDir:  filepath.Join(dir, "plots"),
			FromYear: 2010,
		},
	}
}

func newTestApp(cfg config.Config) *Application {
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), WithProgressWriter(io.Discard))
}

func TestExtractThenTransform(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/movie/top_rated":
			_, _ = io.WriteString(w, `{"page":1,"results":[{"id":7},{"id":8}]}`)
		case r.URL.Path == "/movie/7":
			_, _ = io.WriteString(w, detailBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	application := newTestApp(testConfig(t, server.URL))
	defer application.Close()

	ctx := context.Background()
	extracted, err := application.Extract(ctx, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if !strings.HasSuffix(extracted.CSVPath, "movies_2024-01-02.csv") {
		t.Fatalf("unexpected dump path %s", extracted.CSVPath)
	}
	if extracted.IDs != 2 || extracted.Failed != 1 {
		t.Fatalf("unexpected extract result %+v", extracted)
	}

	transformed, err := application.Transform(ctx, extracted.CSVPath)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if len(transformed.Movies) != 1 || transformed.Dropped != 1 {
		t.Fatalf("unexpected transform result %+v", transformed)
	}
	movie := transformed.Movies[0]
	if movie.ID != 7 || movie.Title != "Seven" || len(movie.Genres) != 1 || movie.Genres[0] != "Drama" {
		t.Fatalf("unexpected movie %+v", movie)
	}
}

func TestRunExtractsBeforeConnectingToDatabase(t *testing.T) {
	t.Parallel()

	var apiHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiHits.Add(1)
		switch r.URL.Path {
		case "/movie/top_rated":
			_, _ = io.WriteString(w, `{"page":1,"results":[{"id":7}]}`)
		case "/movie/7":
			_, _ = io.WriteString(w, detailBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1

	application := newTestApp(cfg)
	defer application.Close()

	_, err := application.Run(context.Background(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if err == nil || !strings.Contains(err.Error(), "database unavailable") {
		t.Fatalf("expected database error, got %v", err)
	}
	if apiHits.Load() != 2 {
		t.Fatalf("expected listing and detail calls before the load, got %d", apiHits.Load())
	}
	if _, statErr := os.Stat(filepath.Join(cfg.Output.DataDir, "movies_2024-01-02.csv")); statErr != nil {
		t.Fatalf("raw dump missing after failed load: %v", statErr)
	}
}

func TestRunRequiresAPIKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "https://api.example.org/3")
	cfg.API.APIKey = ""

	_, err := newTestApp(cfg).Run(context.Background(), time.Now())
	if err == nil || !strings.Contains(err.Error(), "api.apiKey") {
		t.Fatalf("expected api key validation error, got %v", err)
	}
}

func TestCloseWithoutDatabase(t *testing.T) {
	t.Parallel()

	if err := newTestApp(testConfig(t, "https://api.example.org/3")).Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}
