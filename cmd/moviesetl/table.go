package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"MoviesETL/internal/domain"
)

const titleWidth = 48

// column describes one table column; width 0 leaves it unbounded.
type column struct {
	header string
	align  text.Align
	width  int
}

var (
	yearColumn  = column{header: "Year", align: text.AlignRight}
	titleColumn = column{header: "Title", align: text.AlignLeft, width: titleWidth}
)

func scoreColumns(headers ...string) []column {
	cols := make([]column, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, column{header: h, align: text.AlignRight})
	}
	return cols
}

// renderTable draws rows under a caption. Missing cells render empty.
func renderTable(caption string, columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	if caption != "" {
		tw.SetTitle(caption)
	}

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
			WidthMax:    c.width,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func yearlyWinnersTable(top []domain.YearTopMovie) string {
	rows := make([][]string, 0, len(top))
	for _, m := range top {
		rows = append(rows, []string{strconv.Itoa(m.Year), m.Title, score(m.ProfitabilitySuccess)})
	}
	columns := append([]column{yearColumn, titleColumn}, scoreColumns("Profitability Success")...)
	return renderTable("Most profitable movie per year", columns, rows)
}

func scoredMoviesTable(movies []domain.ScoredMovie, limit int) string {
	if limit > len(movies) || limit <= 0 {
		limit = len(movies)
	}
	rows := make([][]string, 0, limit)
	for _, m := range movies[:limit] {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.Title,
			m.ReleaseDate,
			score(m.ProfitabilitySuccess),
			score(m.GeneralPopularity),
		})
	}
	columns := append([]column{
		{header: "ID", align: text.AlignRight},
		titleColumn,
		{header: "Released", align: text.AlignLeft},
	}, scoreColumns("Profitability", "Popularity")...)
	return renderTable("Top scored movies", columns, rows)
}
