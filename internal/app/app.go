package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"MoviesETL/internal/config"
	"MoviesETL/internal/infrastructure/charts"
	"MoviesETL/internal/infrastructure/csvdump"
	"MoviesETL/internal/infrastructure/storage"
	"MoviesETL/internal/infrastructure/tmdb"
	"MoviesETL/internal/logging"
	"MoviesETL/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	progress io.Writer
	db       *sql.DB
}

// Option customises an Application.
type Option func(*Application)

// WithProgressWriter redirects the fetch progress bar.
func WithProgressWriter(w io.Writer) Option {
	return func(a *Application) {
		a.progress = w
	}
}

// New builds an application instance. Adapters are created per stage, so a
// command only needs the settings its stages use.
func New(cfg config.Config, baseLogger *slog.Logger, opts ...Option) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	a := &Application{cfg: cfg, logger: baseLogger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the full pipeline for day.
func (a *Application) Run(ctx context.Context, day time.Time) (usecase.RunSummary, error) {
	if err := a.cfg.Validate(); err != nil {
		return usecase.RunSummary{}, err
	}
	p, err := a.pipeline(true, true)
	if err != nil {
		return usecase.RunSummary{}, err
	}
	return p.Run(ctx, day)
}

// Extract fetches and dumps without touching the database.
func (a *Application) Extract(ctx context.Context, day time.Time) (usecase.ExtractResult, error) {
	if err := a.cfg.ValidateAPI(); err != nil {
		return usecase.ExtractResult{}, err
	}
	p, err := a.pipeline(true, false)
	if err != nil {
		return usecase.ExtractResult{}, err
	}
	return p.Extract(ctx, day)
}

// Transform cleans and scores an existing dump.
func (a *Application) Transform(ctx context.Context, path string) (usecase.TransformResult, error) {
	p, err := a.pipeline(false, false)
	if err != nil {
		return usecase.TransformResult{}, err
	}
	return p.Transform(path)
}

// Report renders charts from the already loaded table.
func (a *Application) Report(ctx context.Context) (usecase.ReportResult, error) {
	if err := a.cfg.ValidateDatabase(); err != nil {
		return usecase.ReportResult{}, err
	}
	p, err := a.pipeline(false, true)
	if err != nil {
		return usecase.ReportResult{}, err
	}
	return p.Report(ctx)
}

// Close releases the database handle, if one was opened.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *Application) pipeline(withCatalog, withDatabase bool) (*usecase.Pipeline, error) {
	deps := usecase.PipelineDeps{
		Dumper:   csvdump.NewWriter(a.cfg.Output.DataDir),
		Logger:   a.logger.With("component", "pipeline"),
		Pages:    a.cfg.API.Pages,
		PlotDir:  a.cfg.Output.PlotDir,
		FromYear: a.cfg.Output.FromYear,
	}

	if withCatalog {
		catalog, err := tmdb.New(a.cfg.API.APIKey, a.cfg.API.BaseURL,
			tmdb.WithHTTPClient(&http.Client{Timeout: a.cfg.API.Timeout}),
			tmdb.WithLanguage(a.cfg.API.Language),
			tmdb.WithLogger(a.logger.With("component", "tmdb")),
			tmdb.WithProgressWriter(a.progress),
		)
		if err != nil {
			return nil, err
		}
		deps.Catalog = catalog
	}

	if withDatabase {
		repo := lazyRepository{app: a}
		deps.Repository = repo
		deps.Metrics = repo

		renderer, err := charts.NewRenderer(a.cfg.Report.FontPath)
		if err != nil {
			return nil, err
		}
		deps.Renderer = renderer
	}

	return usecase.NewPipeline(deps), nil
}

func (a *Application) database(ctx context.Context) (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := storage.Open(ctx, a.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	a.db = db
	return db, nil
}
