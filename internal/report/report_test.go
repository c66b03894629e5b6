package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mmukex/techpulse/internal/config"
	"github.com/mmukex/techpulse/internal/feed"
	"github.com/mmukex/techpulse/internal/scorer"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Feeds = []config.Feed{{Name: "Test", URL: "https://example.com/rss", Category: "Tech", Priority: 1.0}}
	cfg.Interests = []config.Interest{{Name: "AI", Keywords: []string{"ai"}, Weight: 1.0}}
	return cfg
}

func sampleScored() []scorer.ScoredArticle {
	published := time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)
	return []scorer.ScoredArticle{
		{
			Article: feed.Article{
				Title:          "AI Breakthrough",
				Link:           "https://example.com/ai",
				Description:    "A big step",
				Published:      &published,
				FeedName:       "Test",
				Category:       "Tech",
				Author:         "Alice",
				SourcePriority: 1.0,
			},
			Score:    7.5,
			Interest: "AI",
		},
		{
			Article: feed.Article{
				Title:          "Minor Update",
				Link:           "https://example.com/minor",
				FeedName:       "Test",
				Category:       "Science",
				SourcePriority: 1.0,
			},
			Score:    1.0,
			Interest: "AI",
		},
	}
}

func TestPrepareGroupsAndStats(t *testing.T) {
	data := Prepare(sampleScored(), testConfig())

	if len(data.Articles) != 2 {
		t.Fatalf("expected 2 article views, got %d", len(data.Articles))
	}
	if data.Articles[0].ScoreLevel != "high" || data.Articles[1].ScoreLevel != "low" {
		t.Errorf("unexpected score levels: %s, %s", data.Articles[0].ScoreLevel, data.Articles[1].ScoreLevel)
	}

	if len(data.Categories) != 2 {
		t.Errorf("expected 2 category groups, got %d", len(data.Categories))
	}
	if data.Categories[0].Name != "Tech" {
		t.Errorf("expected first-seen group order, got %q first", data.Categories[0].Name)
	}

	if data.Stats.TotalArticles != 2 {
		t.Errorf("expected total 2, got %d", data.Stats.TotalArticles)
	}
	if data.Stats.MaxScore != 7.5 || data.Stats.MinScore != 1.0 {
		t.Errorf("unexpected min/max: %v/%v", data.Stats.MinScore, data.Stats.MaxScore)
	}
	if data.Stats.AvgScore != 4.25 {
		t.Errorf("expected avg 4.25, got %v", data.Stats.AvgScore)
	}
}

func TestPrepareEmpty(t *testing.T) {
	data := Prepare(nil, testConfig())
	if data.Stats.TotalArticles != 0 {
		t.Errorf("expected zeroed stats for empty input, got %+v", data.Stats)
	}
}

func TestRenderContainsArticles(t *testing.T) {
	html, err := Render(sampleScored(), testConfig())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(html, "AI Breakthrough") {
		t.Error("expected rendered report to contain the article title")
	}
	if !strings.Contains(html, "https://example.com/ai") {
		t.Error("expected rendered report to contain the article link")
	}
	if !strings.Contains(html, `class="score high"`) {
		t.Error("expected score level CSS class in report")
	}
}

func TestRenderEscapesFeedContent(t *testing.T) {
	scored := sampleScored()
	scored[0].Article.Title = `<script>alert("x")</script>`

	html, err := Render(scored, testConfig())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if strings.Contains(html, "<script>alert") {
		t.Error("expected article title to be escaped")
	}
}

func TestSaveAndLatest(t *testing.T) {
	dir := t.TempDir()

	path, err := Save("<html></html>", dir, "techpulse_report")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if !strings.Contains(path, "techpulse_report_") {
		t.Errorf("expected timestamped filename, got %s", path)
	}

	latest, err := Latest(dir)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest != path {
		t.Errorf("expected latest %s, got %s", path, latest)
	}
}

func TestLatestEmptyDir(t *testing.T) {
	latest, err := Latest(t.TempDir())
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest != "" {
		t.Errorf("expected empty result, got %s", latest)
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(nil); got != "Unknown" {
		t.Errorf("expected Unknown for nil date, got %q", got)
	}

	ts := time.Date(2023, 1, 2, 10, 30, 0, 0, time.UTC)
	if got := formatDate(&ts); got != "02.01.2023 10:30" {
		t.Errorf("unexpected date format: %q", got)
	}
}
