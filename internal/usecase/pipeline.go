package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"MoviesETL/internal/domain"
	"MoviesETL/internal/infrastructure/csvdump"
	"MoviesETL/internal/ports"
	"MoviesETL/internal/transform"
)

// PipelineDeps wires all driven adapters into the ETL pipeline.
type PipelineDeps struct {
	Catalog    ports.MovieCatalog
	Dumper     ports.RawDumper
	Repository ports.MovieRepository
	Metrics    ports.MetricsReader
	Renderer   ports.ChartRenderer
	Logger     *slog.Logger

	Pages    int
	PlotDir  string
	FromYear int
}

// Pipeline implements extract, transform, load and report.
type Pipeline struct {
	catalog    ports.MovieCatalog
	dumper     ports.RawDumper
	repository ports.MovieRepository
	metrics    ports.MetricsReader
	renderer   ports.ChartRenderer
	logger     *slog.Logger

	pages    int
	plotDir  string
	fromYear int
}

// ExtractResult describes one raw dump.
type ExtractResult struct {
	CSVPath string
	IDs     int
	Failed  int
}

// TransformResult is the scored batch plus what the cleaner discarded.
type TransformResult struct {
	Movies   []domain.ScoredMovie
	Rejected []*transform.ParseError
	Dropped  int
}

// ReportResult holds the rendered files and the data behind them.
type ReportResult struct {
	Artifacts domain.Artifacts
	Top       []domain.YearTopMovie
	Averages  []domain.YearAverages
}

// RunSummary aggregates a full pipeline execution.
type RunSummary struct {
	Extract   ExtractResult
	Transform TransformResult
	Report    ReportResult
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		catalog:    deps.Catalog,
		dumper:     deps.Dumper,
		repository: deps.Repository,
		metrics:    deps.Metrics,
		renderer:   deps.Renderer,
		logger:     logger,
		pages:      deps.Pages,
		plotDir:    deps.PlotDir,
		fromYear:   deps.FromYear,
	}
}

// Run executes every stage in order. Each stage consumes the complete output
// of the previous one.
func (p *Pipeline) Run(ctx context.Context, day time.Time) (RunSummary, error) {
	var summary RunSummary

	p.logger.Info("extracting data")
	extracted, err := p.Extract(ctx, day)
	if err != nil {
		return summary, fmt.Errorf("extract: %w", err)
	}
	summary.Extract = extracted

	p.logger.Info("cleaning extracted data and computing KPIs", "csv", extracted.CSVPath)
	transformed, err := p.Transform(extracted.CSVPath)
	if err != nil {
		return summary, fmt.Errorf("transform: %w", err)
	}
	summary.Transform = transformed

	p.logger.Info("loading transformed data", "rows", len(transformed.Movies))
	if err := p.Load(ctx, transformed.Movies); err != nil {
		return summary, fmt.Errorf("load: %w", err)
	}

	p.logger.Info("rendering KPI plots", "dir", p.plotDir)
	reported, err := p.Report(ctx)
	if err != nil {
		return summary, fmt.Errorf("report: %w", err)
	}
	summary.Report = reported

	return summary, nil
}

// Extract lists top-rated IDs, fetches their details and dumps them.
func (p *Pipeline) Extract(ctx context.Context, day time.Time) (ExtractResult, error) {
	if p.catalog == nil || p.dumper == nil {
		return ExtractResult{}, errors.New("pipeline has no catalog or dumper")
	}

	ids, err := p.catalog.ListTopRatedIDs(ctx, p.pages)
	if err != nil {
		return ExtractResult{}, fmt.Errorf("list top rated: %w", err)
	}
	p.logger.Info("top rated ids collected", "ids", len(ids), "pages", p.pages)

	movies, err := p.catalog.FetchAll(ctx, ids)
	if err != nil {
		return ExtractResult{}, fmt.Errorf("fetch details: %w", err)
	}

	failed := 0
	for _, m := range movies {
		if m.IsEmpty() {
			failed++
		}
	}

	path, err := p.dumper.Dump(day, movies)
	if err != nil {
		return ExtractResult{}, fmt.Errorf("dump raw data: %w", err)
	}
	p.logger.Info("raw data saved", "path", path, "rows", len(movies), "failed", failed)

	return ExtractResult{CSVPath: path, IDs: len(ids), Failed: failed}, nil
}

// Transform cleans the dump at path and scores the surviving rows.
func (p *Pipeline) Transform(path string) (TransformResult, error) {
	table, err := csvdump.ReadFile(path)
	if err != nil {
		return TransformResult{}, err
	}

	cleaned, err := transform.Clean(table)
	if err != nil {
		return TransformResult{}, err
	}
	for _, rej := range cleaned.Rejected {
		p.logger.Debug("row rejected", "row", rej.Row, "column", rej.Column, "error", rej.Err)
	}
	p.logger.Info("data cleaned",
		"input", len(table.Rows),
		"kept", len(cleaned.Movies),
		"rejected", len(cleaned.Rejected),
		"dropped", cleaned.Dropped)

	return TransformResult{
		Movies:   transform.AddKPIs(cleaned.Movies),
		Rejected: cleaned.Rejected,
		Dropped:  cleaned.Dropped,
	}, nil
}

// Load replaces the stored table with the scored batch.
func (p *Pipeline) Load(ctx context.Context, movies []domain.ScoredMovie) error {
	if p.repository == nil {
		return errors.New("pipeline has no repository")
	}
	if err := p.repository.ReplaceMovies(ctx, movies); err != nil {
		return err
	}
	p.logger.Info("data loaded into the database", "rows", len(movies))
	return nil
}

// Report queries the stored table and renders charts.
func (p *Pipeline) Report(ctx context.Context) (ReportResult, error) {
	if p.metrics == nil || p.renderer == nil {
		return ReportResult{}, errors.New("pipeline has no metrics reader or renderer")
	}

	top, err := p.metrics.MostProfitablePerYear(ctx, p.fromYear)
	if err != nil {
		return ReportResult{}, err
	}
	averages, err := p.metrics.AverageMetricsByYear(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	artifacts, err := p.renderer.Render(p.plotDir, top, averages)
	if err != nil {
		return ReportResult{}, fmt.Errorf("render charts: %w", err)
	}
	p.logger.Info("plots saved", "dir", p.plotDir)

	return ReportResult{Artifacts: artifacts, Top: top, Averages: averages}, nil
}
