package filter

import (
	"regexp"
	"strings"
)

// wordPattern builds a case-insensitive whole-word pattern for a keyword,
// so "AI" does not match inside "MAIL".
func wordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(keyword)) + `\b`)
}

// Match returns the keywords that occur in text as whole words,
// case-insensitive. Each keyword appears at most once, in the order of the
// keywords argument. Empty text or an empty keyword list yields nil.
func Match(text string, keywords []string) []string {
	if text == "" || len(keywords) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	matched := make(map[string]bool, len(keywords))
	var found []string

	for _, kw := range keywords {
		if kw == "" || matched[kw] {
			continue
		}
		if wordPattern(kw).MatchString(lower) {
			matched[kw] = true
			found = append(found, kw)
		}
	}

	return found
}

// MatchPositions returns, per matched keyword, every start offset of its
// whole-word occurrences in text. Offsets are byte positions in the
// lowercased text.
func MatchPositions(text string, keywords []string) map[string][]int {
	if text == "" || len(keywords) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	results := make(map[string][]int)

	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		locs := wordPattern(kw).FindAllStringIndex(lower, -1)
		if len(locs) == 0 {
			continue
		}

		positions := make([]int, len(locs))
		for i, loc := range locs {
			positions[i] = loc[0]
		}
		results[kw] = positions
	}

	return results
}
