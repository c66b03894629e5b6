package scorer

// Score level thresholds, used for color coding in the report.
const (
	levelLowThreshold  = 3.0
	levelHighThreshold = 6.0
)

// Range boundaries of the score distribution summary.
var distributionBounds = [4]float64{2, 4, 6, 8}

// FilterByMinScore keeps articles scoring at least minScore (inclusive).
// A minScore of zero or below disables the filter and returns the input
// unchanged.
func FilterByMinScore(scored []ScoredArticle, minScore float64) []ScoredArticle {
	if minScore <= 0 {
		return scored
	}

	kept := make([]ScoredArticle, 0, len(scored))
	for _, s := range scored {
		if s.Score >= minScore {
			kept = append(kept, s)
		}
	}
	return kept
}

// Top returns the first n articles of an already sorted slice. n <= 0
// means no cap.
func Top(scored []ScoredArticle, n int) []ScoredArticle {
	if n <= 0 || len(scored) <= n {
		return scored
	}
	return scored[:n]
}

// Bucket is one range of the score distribution.
type Bucket struct {
	Label string
	Count int
}

// Distribution buckets the scores into fixed ranges for diagnostic
// display. It plays no part in filtering or ranking.
func Distribution(scored []ScoredArticle) []Bucket {
	buckets := []Bucket{
		{Label: "0-2"},
		{Label: "2-4"},
		{Label: "4-6"},
		{Label: "6-8"},
		{Label: "8+"},
	}

	for _, s := range scored {
		switch {
		case s.Score < distributionBounds[0]:
			buckets[0].Count++
		case s.Score < distributionBounds[1]:
			buckets[1].Count++
		case s.Score < distributionBounds[2]:
			buckets[2].Count++
		case s.Score < distributionBounds[3]:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}

	return buckets
}

// Level classifies a score as "low", "medium" or "high" for report CSS
// classes.
func Level(score float64) string {
	switch {
	case score < levelLowThreshold:
		return "low"
	case score < levelHighThreshold:
		return "medium"
	default:
		return "high"
	}
}
