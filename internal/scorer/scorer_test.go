package scorer

import (
	"math"
	"reflect"
	"testing"

	"github.com/mmukex/techpulse/internal/config"
	"github.com/mmukex/techpulse/internal/feed"
	"github.com/mmukex/techpulse/internal/filter"
)

func article(title, description string, priority float64) feed.Article {
	return feed.Article{
		Title:          title,
		Link:           "https://example.com/" + title,
		Description:    description,
		SourcePriority: priority,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreFormula(t *testing.T) {
	// 2 title matches: (2 * 1.5 * 1.0) * 1.0 = 3.0
	a := article("New AI Chip Released", "", 1.0)
	got := Score(a, []string{"AI", "chip"}, 1.0)
	if !almostEqual(got, 3.0) {
		t.Errorf("expected score 3.0, got %f", got)
	}
}

func TestScoreSourcePriority(t *testing.T) {
	a := article("New AI Chip Released", "", 2.0)
	got := Score(a, []string{"AI", "chip"}, 1.0)
	if !almostEqual(got, 6.0) {
		t.Errorf("expected priority to multiply score, got %f", got)
	}
}

func TestScoreAdditivityAcrossInterests(t *testing.T) {
	// Interest A (weight 1.0, "x" in title) and B (weight 2.0, "y" in
	// description): (1*1.5*1.0 + 1*1.0*2.0) * prio = 3.5 * prio.
	interests := []config.Interest{
		{Name: "A", Keywords: []string{"x"}, Weight: 1.0},
		{Name: "B", Keywords: []string{"y"}, Weight: 2.0},
	}

	for _, prio := range []float64{1.0, 1.5, 2.0} {
		a := article("about x", "mentions y", prio)
		results := filter.Articles([]feed.Article{a}, interests)
		scored := All(results, interests)

		if len(scored) != 1 {
			t.Fatalf("expected 1 scored article, got %d", len(scored))
		}
		if want := 3.5 * prio; !almostEqual(scored[0].Score, want) {
			t.Errorf("priority %v: expected %f, got %f", prio, want, scored[0].Score)
		}
	}
}

func TestScoreMonotonicInWeight(t *testing.T) {
	a := article("ai report", "", 1.0)

	low := Score(a, []string{"ai"}, 1.0)
	high := Score(a, []string{"ai"}, 1.5)
	if high <= low {
		t.Errorf("expected higher weight to strictly increase score: %f <= %f", high, low)
	}
}

func TestScoreEmptyKeywords(t *testing.T) {
	if got := Score(article("ai", "", 1.0), nil, 1.0); got != 0 {
		t.Errorf("expected 0 for empty keywords, got %f", got)
	}
}

func TestScoreNonPositiveWeight(t *testing.T) {
	a := article("ai chip", "", 1.0)
	if got := Score(a, []string{"ai"}, 0); got != 0 {
		t.Errorf("expected zero contribution for weight 0, got %f", got)
	}
	if got := Score(a, []string{"ai"}, -2.0); got != 0 {
		t.Errorf("expected negative weight to be ignored, got %f", got)
	}
}

func TestDetailedBreakdown(t *testing.T) {
	a := article("New AI Chip Released", "the chip is fast", 1.0)
	b := Detailed(a, []string{"AI", "chip"}, 2.0)

	if !reflect.DeepEqual(b.TitleMatches, []string{"AI", "chip"}) {
		t.Errorf("unexpected title matches: %v", b.TitleMatches)
	}
	if !reflect.DeepEqual(b.DescriptionMatches, []string{"chip"}) {
		t.Errorf("unexpected description matches: %v", b.DescriptionMatches)
	}
	if !almostEqual(b.TitleScore, 2*1.5*2.0) {
		t.Errorf("unexpected title score: %f", b.TitleScore)
	}
	if !almostEqual(b.DescriptionScore, 1*2.0) {
		t.Errorf("unexpected description score: %f", b.DescriptionScore)
	}
	if !almostEqual(b.TotalScore, b.TitleScore+b.DescriptionScore) {
		t.Errorf("total %f does not match sub-scores %f + %f", b.TotalScore, b.TitleScore, b.DescriptionScore)
	}
}

func TestAllSortsDescendingStable(t *testing.T) {
	interests := []config.Interest{
		{Name: "AI", Keywords: []string{"ai"}, Weight: 1.0},
	}

	articles := []feed.Article{
		article("ai once", "", 1.0),
		article("ai ai twice", "", 1.0), // "ai" deduplicated, same score as above
		article("ai high priority", "", 3.0),
	}

	results := filter.Articles(articles, interests)
	scored := All(results, interests)

	if scored[0].Article.Title != "ai high priority" {
		t.Errorf("expected highest score first, got %q", scored[0].Article.Title)
	}
	// Equal scores keep pipeline order.
	if scored[1].Article.Title != "ai once" || scored[2].Article.Title != "ai ai twice" {
		t.Errorf("expected stable order for ties, got %q then %q",
			scored[1].Article.Title, scored[2].Article.Title)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	interests := []config.Interest{
		{Name: "AI", Keywords: []string{"ai", "chip"}, Weight: 1.2},
		{Name: "Cloud", Keywords: []string{"cloud"}, Weight: 0.8},
	}
	articles := []feed.Article{
		article("ai chip in the cloud", "cloud details", 1.5),
		article("plain cloud news", "", 1.0),
		article("unrelated", "", 1.0),
	}

	first := All(filter.Articles(articles, interests), interests)
	second := All(filter.Articles(articles, interests), interests)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output across runs:\n%+v\n%+v", first, second)
	}
}

func TestFilterByMinScoreBoundary(t *testing.T) {
	scored := []ScoredArticle{
		{Score: 2.0},
		{Score: 1.5},
		{Score: 1.0},
	}

	kept := FilterByMinScore(scored, 1.5)
	if len(kept) != 2 {
		t.Fatalf("expected inclusive boundary to keep 2, got %d", len(kept))
	}
	if kept[1].Score != 1.5 {
		t.Errorf("expected article scoring exactly minScore to be retained")
	}
}

func TestFilterByMinScoreDisabled(t *testing.T) {
	scored := []ScoredArticle{{Score: 0.1}}

	if got := FilterByMinScore(scored, 0); len(got) != 1 {
		t.Errorf("expected minScore 0 to be a no-op")
	}
	if got := FilterByMinScore(scored, -1); len(got) != 1 {
		t.Errorf("expected negative minScore to be a no-op")
	}
}

func TestTop(t *testing.T) {
	scored := []ScoredArticle{{Score: 3}, {Score: 2}, {Score: 1}}

	if got := Top(scored, 2); len(got) != 2 || got[0].Score != 3 {
		t.Errorf("expected top 2 without re-sorting, got %+v", got)
	}
	if got := Top(scored, 0); len(got) != 3 {
		t.Errorf("expected n=0 to mean no cap, got %d", len(got))
	}
	if got := Top(scored, 10); len(got) != 3 {
		t.Errorf("expected larger n to return everything, got %d", len(got))
	}
}

func TestDistribution(t *testing.T) {
	scored := []ScoredArticle{
		{Score: 0.5}, {Score: 1.9},
		{Score: 2.0},
		{Score: 5.5},
		{Score: 7.9},
		{Score: 8.0}, {Score: 42},
	}

	buckets := Distribution(scored)
	want := []int{2, 1, 1, 1, 2}
	for i, b := range buckets {
		if b.Count != want[i] {
			t.Errorf("bucket %s: expected %d, got %d", b.Label, want[i], b.Count)
		}
	}
}

func TestLevel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, "low"},
		{2.9, "low"},
		{3.0, "medium"},
		{5.9, "medium"},
		{6.0, "high"},
		{12, "high"},
	}

	for _, c := range cases {
		if got := Level(c.score); got != c.want {
			t.Errorf("Level(%v): expected %q, got %q", c.score, c.want, got)
		}
	}
}
