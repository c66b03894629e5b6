package scorer

import (
	"sort"

	"github.com/mmukex/techpulse/internal/config"
	"github.com/mmukex/techpulse/internal/feed"
	"github.com/mmukex/techpulse/internal/filter"
)

// Fixed constants of the scoring formula. Keywords in the title are a
// stronger relevance signal than keywords in the description.
const (
	titleMultiplier   = 1.5
	baseScorePerMatch = 1.0
)

// ScoredArticle carries the cumulative relevance score and the primary
// interest attributed by the filter stage.
type ScoredArticle struct {
	Article  feed.Article
	Score    float64
	Interest string
}

// Breakdown exposes the per-interest sub-scores behind a relevance score,
// for diagnostics and for verifying the formula independently.
type Breakdown struct {
	TotalScore         float64
	TitleMatches       []string
	DescriptionMatches []string
	TitleScore         float64
	DescriptionScore   float64
	Weight             float64
	SourcePriority     float64
}

// Score computes one interest's contribution to an article's relevance:
//
//	(titleMatches*1.5*weight + descMatches*weight) * sourcePriority
//
// An interest without keywords contributes nothing. Weights <= 0 are
// ignored rather than allowed to produce negative scores.
func Score(article feed.Article, keywords []string, weight float64) float64 {
	return Detailed(article, keywords, weight).TotalScore
}

// Detailed is Score with the full breakdown.
func Detailed(article feed.Article, keywords []string, weight float64) Breakdown {
	b := Breakdown{
		Weight:         weight,
		SourcePriority: article.SourcePriority,
	}
	if len(keywords) == 0 || weight <= 0 {
		return b
	}

	b.TitleMatches = filter.Match(article.Title, keywords)
	b.DescriptionMatches = filter.Match(article.Description, keywords)

	b.TitleScore = float64(len(b.TitleMatches)) * titleMultiplier * weight * baseScorePerMatch
	b.DescriptionScore = float64(len(b.DescriptionMatches)) * weight * baseScorePerMatch
	b.TotalScore = (b.TitleScore + b.DescriptionScore) * article.SourcePriority

	return b
}

// All scores the filtered articles and sorts them by descending score.
// The score is cumulative over every configured interest, not just the
// attributed one, so multi-topic articles rank higher. The sort is stable:
// equal scores stay in pipeline order.
func All(results []filter.Result, interests []config.Interest) []ScoredArticle {
	scored := make([]ScoredArticle, 0, len(results))

	for _, r := range results {
		total := 0.0
		for _, interest := range interests {
			total += Score(r.Article, interest.Keywords, interest.Weight)
		}

		scored = append(scored, ScoredArticle{
			Article:  r.Article,
			Score:    total,
			Interest: r.Interest,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
