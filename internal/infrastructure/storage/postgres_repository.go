package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"MoviesETL/internal/domain"
	"MoviesETL/internal/ports"
)

const (
	defaultTable = "movies"
	insertBatch  = 500
	yearExpr     = `substring(release_date from '\d{4}')`
)

var movieColumns = []string{
	"id",
	"original_title",
	"genres",
	"popularity",
	"release_date",
	"revenue",
	"budget",
	"title",
	"vote_average",
	"vote_count",
	"profitability_success",
	"general_popularity",
}

var columnTypes = map[string]string{
	"id":                    "bigint",
	"original_title":        "text",
	"genres":                "text[]",
	"popularity":            "double precision",
	"release_date":          "text",
	"revenue":               "double precision",
	"budget":                "double precision",
	"title":                 "text",
	"vote_average":          "double precision",
	"vote_count":            "bigint",
	"profitability_success": "double precision",
	"general_popularity":    "double precision",
}

var errNoDatabase = errors.New("postgres repository has no database")

// PostgresRepository stores the scored movie table and answers report queries.
type PostgresRepository struct {
	db    *sql.DB
	table string
	psql  sq.StatementBuilderType
}

var (
	_ ports.MovieRepository = (*PostgresRepository)(nil)
	_ ports.MetricsReader   = (*PostgresRepository)(nil)
)

// NewPostgresRepository wires a sql.DB implementation. An empty table name
// falls back to "movies".
func NewPostgresRepository(db *sql.DB, table string) *PostgresRepository {
	if strings.TrimSpace(table) == "" {
		table = defaultTable
	}
	return &PostgresRepository{
		db:    db,
		table: pq.QuoteIdentifier(table),
		psql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ReplaceMovies drops and recreates the table, then inserts the batch, all in
// one transaction.
func (r *PostgresRepository) ReplaceMovies(ctx context.Context, movies []domain.ScoredMovie) (err error) {
	if r.db == nil {
		return errNoDatabase
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+r.table); err != nil {
		return fmt.Errorf("drop table %s: %w", r.table, err)
	}
	if _, err = tx.ExecContext(ctx, r.createTableSQL()); err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}

	for start := 0; start < len(movies); start += insertBatch {
		end := min(start+insertBatch, len(movies))
		query, args, buildErr := r.insertQuery(movies[start:end])
		if buildErr != nil {
			return fmt.Errorf("build insert: %w", buildErr)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", start, end-1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (r *PostgresRepository) createTableSQL() string {
	defs := make([]string, 0, len(movieColumns))
	for _, col := range movieColumns {
		defs = append(defs, col+" "+columnTypes[col])
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", r.table, strings.Join(defs, ", "))
}

func (r *PostgresRepository) insertQuery(batch []domain.ScoredMovie) (string, []any, error) {
	insert := r.psql.Insert(r.table).Columns(movieColumns...)
	for _, m := range batch {
		insert = insert.Values(
			m.ID,
			m.OriginalTitle,
			pq.StringArray(m.Genres),
			m.Popularity,
			m.ReleaseDate,
			m.Revenue,
			m.Budget,
			m.Title,
			m.VoteAverage,
			m.VoteCount,
			m.ProfitabilitySuccess,
			m.GeneralPopularity,
		)
	}
	return insert.ToSql()
}

// MostProfitablePerYear returns one movie per release year from fromYear on,
// the one with the highest profitability_success; ties go to the title that
// sorts first.
func (r *PostgresRepository) MostProfitablePerYear(ctx context.Context, fromYear int) ([]domain.YearTopMovie, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}

	inner := sq.Select("title", "profitability_success", yearExpr+"::integer AS year").
		From(r.table).
		Where(yearExpr + " IS NOT NULL")

	query, args, err := r.psql.Select("year", "title", "profitability_success").
		Options("DISTINCT ON (year)").
		FromSelect(inner, "movies_year").
		Where(sq.GtOrEq{"year": fromYear}).
		OrderBy("year", "profitability_success DESC", "title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build most profitable query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query most profitable per year: %w", err)
	}

	var result []domain.YearTopMovie
	for rows.Next() {
		var row domain.YearTopMovie
		if err := rows.Scan(&row.Year, &row.Title, &row.ProfitabilitySuccess); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan most profitable row: %w", err)
		}
		result = append(result, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// AverageMetricsByYear averages both KPIs per release year. Rows without a
// year in release_date are skipped.
func (r *PostgresRepository) AverageMetricsByYear(ctx context.Context) ([]domain.YearAverages, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}

	query, args, err := r.psql.Select(
		yearExpr+"::integer AS year",
		"AVG(profitability_success) AS avg_profitability_success",
		"AVG(general_popularity) AS avg_general_popularity",
	).
		From(r.table).
		Where(yearExpr + " IS NOT NULL").
		GroupBy("year").
		OrderBy("year").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build averages query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query averages by year: %w", err)
	}
	defer rows.Close()

	var result []domain.YearAverages
	for rows.Next() {
		var row domain.YearAverages
		if err := rows.Scan(&row.Year, &row.AvgProfitabilitySuccess, &row.AvgGeneralPopularity); err != nil {
			return nil, fmt.Errorf("scan averages row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}
