package ports

import (
	"context"
	"time"

	"MoviesETL/internal/domain"
)

// MovieCatalog pulls top-rated listings and movie details from upstream.
type MovieCatalog interface {
	ListTopRatedIDs(ctx context.Context, pages int) ([]int64, error)
	FetchAll(ctx context.Context, ids []int64) ([]domain.RawMovie, error)
}

// RawDumper persists the raw extraction so transformation can run separately.
type RawDumper interface {
	Dump(day time.Time, movies []domain.RawMovie) (string, error)
}

// MovieRepository replaces the stored movie table with a scored batch.
type MovieRepository interface {
	ReplaceMovies(ctx context.Context, movies []domain.ScoredMovie) error
}

// MetricsReader runs the reporting queries against the stored table.
type MetricsReader interface {
	MostProfitablePerYear(ctx context.Context, fromYear int) ([]domain.YearTopMovie, error)
	AverageMetricsByYear(ctx context.Context) ([]domain.YearAverages, error)
}

// ChartRenderer draws report artifacts into a directory.
type ChartRenderer interface {
	Render(dir string, top []domain.YearTopMovie, averages []domain.YearAverages) (domain.Artifacts, error)
}
