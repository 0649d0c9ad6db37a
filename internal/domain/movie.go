package domain

// RawMovie is a single detail payload as returned by the catalog API.
// Keys preserves the order in which fields appeared in the response body.
// The zero value is the placeholder recorded for a failed detail fetch.
type RawMovie struct {
	Keys   []string
	Fields map[string]any
}

// IsEmpty reports whether the record is a failed-fetch placeholder.
func (m RawMovie) IsEmpty() bool {
	return len(m.Keys) == 0
}

// Genre is one entry of the nested genres list.
type Genre struct {
	ID   int64
	Name string
}

// CleanedColumns is the fixed projection applied to the raw dump.
var CleanedColumns = []string{
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
}

// CleanedMovie has passed projection, genre parsing and the positivity filter.
type CleanedMovie struct {
	ID            int64
	OriginalTitle string
	Genres        []string
	Popularity    float64
	ReleaseDate   string
	Revenue       float64
	Budget        float64
	Title         string
	VoteAverage   float64
	VoteCount     int64
}

// ScoredMovie carries the two batch-relative KPIs.
type ScoredMovie struct {
	CleanedMovie
	ProfitabilitySuccess float64
	GeneralPopularity    float64
}

// YearTopMovie is the most profitable movie of a release year.
type YearTopMovie struct {
	Year                 int
	Title                string
	ProfitabilitySuccess float64
}

// YearAverages aggregates both KPIs per release year.
type YearAverages struct {
	Year                    int
	AvgProfitabilitySuccess float64
	AvgGeneralPopularity    float64
}

// Artifacts lists the files written by the reporter.
type Artifacts struct {
	TopMoviesChart string
	AveragesChart  string
	Index          string
}
