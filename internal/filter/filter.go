package filter

import (
	"sort"
	"strings"

	"github.com/mmukex/techpulse/internal/config"
	"github.com/mmukex/techpulse/internal/feed"
)

// A title hit counts double when picking the primary interest: a keyword
// in the title is a much stronger signal than one in the description.
// This coarse gate is intentionally distinct from the scorer's weighting.
const titleMatchWeight = 2

// Result pairs an article with the union of keywords matched across all
// interests and the name of the interest it was attributed to.
type Result struct {
	Article  feed.Article
	Keywords []string
	Interest string
}

// Articles evaluates every article against every interest and keeps those
// matching at least one keyword, preserving input order. Attribution goes
// to the interest with the highest match strength; ties keep the interest
// listed first in the configuration.
func Articles(articles []feed.Article, interests []config.Interest) []Result {
	var results []Result

	for _, article := range articles {
		keywords, interest, ok := bestMatch(article, interests)
		if !ok {
			continue
		}
		results = append(results, Result{
			Article:  article,
			Keywords: keywords,
			Interest: interest,
		})
	}

	return results
}

// bestMatch folds over the interests accumulating the keyword union and
// the strongest interest so far. Only strictly greater strength replaces
// the winner, so configuration order breaks ties deterministically.
func bestMatch(article feed.Article, interests []config.Interest) ([]string, string, bool) {
	var union []string
	inUnion := make(map[string]bool)

	bestName := ""
	bestStrength := 0

	for _, interest := range interests {
		titleMatches := Match(article.Title, interest.Keywords)
		descMatches := Match(article.Description, interest.Keywords)
		if len(titleMatches) == 0 && len(descMatches) == 0 {
			continue
		}

		// A keyword counts toward the union even if it only occurs in
		// one of the two fields, and regardless of which interest wins.
		for _, kw := range titleMatches {
			if !inUnion[kw] {
				inUnion[kw] = true
				union = append(union, kw)
			}
		}
		for _, kw := range descMatches {
			if !inUnion[kw] {
				inUnion[kw] = true
				union = append(union, kw)
			}
		}

		strength := len(titleMatches)*titleMatchWeight + len(descMatches)
		if strength > bestStrength {
			bestStrength = strength
			bestName = interest.Name
		}
	}

	if len(union) == 0 {
		return nil, "", false
	}
	return union, bestName, true
}

// ByCategory keeps articles whose feed category is in the allowed list,
// case-insensitive. An empty list passes everything through.
func ByCategory(articles []feed.Article, categories []string) []feed.Article {
	if len(categories) == 0 {
		return articles
	}

	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[strings.ToLower(c)] = true
	}

	var kept []feed.Article
	for _, article := range articles {
		if allowed[strings.ToLower(article.Category)] {
			kept = append(kept, article)
		}
	}
	return kept
}

// KeywordCount is one entry of the keyword frequency summary.
type KeywordCount struct {
	Keyword string
	Count   int
}

// KeywordStats counts how often each keyword occurs across the filtered
// results, most frequent first. Equal counts stay in first-seen order so
// the summary is stable across runs.
func KeywordStats(results []Result) []KeywordCount {
	counts := make(map[string]int)
	var order []string

	for _, r := range results {
		for _, kw := range r.Keywords {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}

	stats := make([]KeywordCount, 0, len(order))
	for _, kw := range order {
		stats = append(stats, KeywordCount{Keyword: kw, Count: counts[kw]})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	return stats
}
