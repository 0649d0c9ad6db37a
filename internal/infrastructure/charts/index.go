package charts

import (
	"fmt"
	"html/template"
	"os"

	"MoviesETL/internal/domain"
)

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"score": func(v float64) string { return fmt.Sprintf("%.3f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Movie KPIs</title>
</head>
<body>
<h1>Movie KPIs</h1>
<figure id="top-movies">
  <img src="{{.TopMoviesFile}}" alt="Most profitable movie per year">
</figure>
<table id="top-movies-table">
  <thead><tr><th>Year</th><th>Title</th><th>Profitability Success</th></tr></thead>
  <tbody>
  {{- range .Top}}
    <tr><td class="year">{{.Year}}</td><td class="title">{{.Title}}</td><td class="score">{{score .ProfitabilitySuccess}}</td></tr>
  {{- end}}
  </tbody>
</table>
<figure id="averages">
  <img src="{{.AveragesFile}}" alt="Average metrics by year">
</figure>
<table id="averages-table">
  <thead><tr><th>Year</th><th>Avg Profitability Success</th><th>Avg General Popularity</th></tr></thead>
  <tbody>
  {{- range .Averages}}
    <tr><td class="year">{{.Year}}</td><td class="profitability">{{score .AvgProfitabilitySuccess}}</td><td class="popularity">{{score .AvgGeneralPopularity}}</td></tr>
  {{- end}}
  </tbody>
</table>
</body>
</html>
`))

func writeIndex(path string, top []domain.YearTopMovie, averages []domain.YearAverages) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	err = indexTemplate.Execute(f, struct {
		TopMoviesFile string
		AveragesFile  string
		Top           []domain.YearTopMovie
		Averages      []domain.YearAverages
	}{TopMoviesFile, AveragesFile, top, averages})
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
