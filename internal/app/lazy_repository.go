package app

import (
	"context"

	"MoviesETL/internal/domain"
	"MoviesETL/internal/infrastructure/storage"
	"MoviesETL/internal/ports"
)

// lazyRepository connects on the first call, so stages that run before the
// load can proceed while the database is unreachable.
type lazyRepository struct {
	app *Application
}

var (
	_ ports.MovieRepository = lazyRepository{}
	_ ports.MetricsReader   = lazyRepository{}
)

func (l lazyRepository) repository(ctx context.Context) (*storage.PostgresRepository, error) {
	db, err := l.app.database(ctx)
	if err != nil {
		return nil, err
	}
	return storage.NewPostgresRepository(db, l.app.cfg.Database.Table), nil
}

func (l lazyRepository) ReplaceMovies(ctx context.Context, movies []domain.ScoredMovie) error {
	repo, err := l.repository(ctx)
	if err != nil {
		return err
	}
	return repo.ReplaceMovies(ctx, movies)
}

func (l lazyRepository) MostProfitablePerYear(ctx context.Context, fromYear int) ([]domain.YearTopMovie, error) {
	repo, err := l.repository(ctx)
	if err != nil {
		return nil, err
	}
	return repo.MostProfitablePerYear(ctx, fromYear)
}

func (l lazyRepository) AverageMetricsByYear(ctx context.Context) ([]domain.YearAverages, error) {
	repo, err := l.repository(ctx)
	if err != nil {
		return nil, err
	}
	return repo.AverageMetricsByYear(ctx)
}
