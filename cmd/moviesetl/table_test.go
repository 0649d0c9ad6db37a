package main

import (
	"strings"
	"testing"

	"MoviesETL/internal/domain"
)

func TestYearlyWinnersTable(t *testing.T) {
	got := yearlyWinnersTable([]domain.YearTopMovie{
		{Year: 2010, Title: "Inception", ProfitabilitySuccess: 0.41234},
		{Year: 2011, Title: "Intouchables", ProfitabilitySuccess: 1},
	})
	// Headers are upper-cased by the table style.
	for _, want := range []string{"YEAR", "PROFITABILITY SUCCESS", "Inception", "0.412", "1.000", "2011"} {
		if !strings.Contains(got, want) {
			t.Fatalf("table missing %q:\n%s", want, got)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	got := renderTable("Caption", []column{{header: "A"}, {header: "B"}}, [][]string{{"only"}})
	if !strings.Contains(got, "only") || !strings.Contains(strings.ToUpper(got), "CAPTION") {
		t.Fatalf("unexpected table:\n%s", got)
	}
	if renderTable("", nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestYearlyWinnersTableWrapsLongTitles(t *testing.T) {
	long := strings.Repeat("word ", 20)
	got := yearlyWinnersTable([]domain.YearTopMovie{{Year: 2012, Title: long, ProfitabilitySuccess: 0.5}})
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, strings.TrimSpace(long)) {
			t.Fatalf("title was not wrapped:\n%s", got)
		}
	}
}

func TestScoredMoviesTableLimitAndOrder(t *testing.T) {
	movies := byProfitability([]domain.ScoredMovie{
		{CleanedMovie: domain.CleanedMovie{ID: 1, Title: "Low"}, ProfitabilitySuccess: 0.1},
		{CleanedMovie: domain.CleanedMovie{ID: 2, Title: "High"}, ProfitabilitySuccess: 0.9},
		{CleanedMovie: domain.CleanedMovie{ID: 3, Title: "Mid"}, ProfitabilitySuccess: 0.5},
	})
	if movies[0].Title != "High" || movies[2].Title != "Low" {
		t.Fatalf("unexpected order %+v", movies)
	}

	got := scoredMoviesTable(movies, 2)
	if !strings.Contains(got, "High") || !strings.Contains(got, "Mid") || strings.Contains(got, "Low") {
		t.Fatalf("unexpected limited table:\n%s", got)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"run", "extract", "transform", "report"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %s not registered: %v", name, err)
		}
	}
	for _, flag := range []string{"config", "pages", "log-level"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing persistent flag %s", flag)
		}
	}
}
