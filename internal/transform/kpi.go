package transform

import "MoviesETL/internal/domain"

const (
	popularityWeight = 0.3
	returnWeight     = 0.7
	halfWeight       = 0.5
)

// AddKPIs derives profitability_success and general_popularity for the whole
// batch. Both are scaled against the batch's own extrema, so scores from
// different runs are not comparable. When every raw profitability is equal
// the scaled value is 0 for all rows; a term whose maximum is 0 contributes 0.
func AddKPIs(movies []domain.CleanedMovie) []domain.ScoredMovie {
	scored := make([]domain.ScoredMovie, len(movies))
	if len(movies) == 0 {
		return scored
	}

	raw := make([]float64, len(movies))
	minRaw, maxRaw := rawProfitability(movies[0]), rawProfitability(movies[0])
	maxPopularity, maxVotes := movies[0].Popularity, movies[0].VoteCount
	for i, m := range movies {
		raw[i] = rawProfitability(m)
		minRaw = min(minRaw, raw[i])
		maxRaw = max(maxRaw, raw[i])
		maxPopularity = max(maxPopularity, m.Popularity)
		maxVotes = max(maxVotes, m.VoteCount)
	}

	spread := maxRaw - minRaw
	for i, m := range movies {
		s := domain.ScoredMovie{CleanedMovie: m}
		if spread > 0 {
			s.ProfitabilitySuccess = (raw[i] - minRaw) / spread
		}
		if maxPopularity > 0 {
			s.GeneralPopularity += m.Popularity / maxPopularity * halfWeight
		}
		if maxVotes > 0 {
			s.GeneralPopularity += float64(m.VoteCount) / float64(maxVotes) * halfWeight
		}
		scored[i] = s
	}
	return scored
}

func rawProfitability(m domain.CleanedMovie) float64 {
	return m.Popularity*popularityWeight + (m.Revenue/m.Budget)*returnWeight
}
