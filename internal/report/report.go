package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/mmukex/techpulse/internal/config"
	"github.com/mmukex/techpulse/internal/scorer"
)

//go:embed template.html
var reportTemplate string

// ArticleView is the flat per-article record handed to the template.
type ArticleView struct {
	Title          string
	Link           string
	Description    string
	Published      *time.Time
	FeedName       string
	Category       string
	Author         string
	Score          float64
	Interest       string
	ScoreLevel     string
	SourcePriority float64
}

// Group collects the articles of one category or one interest.
type Group struct {
	Name     string
	Articles []ArticleView
}

// Stats summarizes the report for its header.
type Stats struct {
	TotalArticles int
	AvgScore      float64
	MaxScore      float64
	MinScore      float64
	CategoryCount int
	InterestCount int
}

// Data is the complete template context.
type Data struct {
	Articles       []ArticleView
	Categories     []Group
	Interests      []Group
	Stats          Stats
	GeneratedAt    time.Time
	FeedCount      int
	InterestCount  int
	MinScoreFilter float64
}

// Prepare converts the scored pipeline output into template data:
// flat article views plus groupings by category and interest and the
// header statistics. Group order follows first appearance, keeping the
// report deterministic for identical input.
func Prepare(scored []scorer.ScoredArticle, cfg *config.Config) Data {
	articles := make([]ArticleView, 0, len(scored))
	for _, s := range scored {
		articles = append(articles, ArticleView{
			Title:          s.Article.Title,
			Link:           s.Article.Link,
			Description:    s.Article.Description,
			Published:      s.Article.Published,
			FeedName:       s.Article.FeedName,
			Category:       s.Article.Category,
			Author:         s.Article.Author,
			Score:          s.Score,
			Interest:       s.Interest,
			ScoreLevel:     scorer.Level(s.Score),
			SourcePriority: s.Article.SourcePriority,
		})
	}

	return Data{
		Articles:       articles,
		Categories:     groupBy(articles, func(a ArticleView) string { return a.Category }, "Other"),
		Interests:      groupBy(articles, func(a ArticleView) string { return a.Interest }, "General"),
		Stats:          calculateStats(articles),
		GeneratedAt:    time.Now(),
		FeedCount:      len(cfg.Feeds),
		InterestCount:  len(cfg.Interests),
		MinScoreFilter: cfg.Output.MinScore,
	}
}

func groupBy(articles []ArticleView, key func(ArticleView) string, fallback string) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, a := range articles {
		name := key(a)
		if name == "" {
			name = fallback
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Articles = append(groups[i].Articles, a)
	}

	return groups
}

func calculateStats(articles []ArticleView) Stats {
	if len(articles) == 0 {
		return Stats{}
	}

	stats := Stats{
		TotalArticles: len(articles),
		MaxScore:      articles[0].Score,
		MinScore:      articles[0].Score,
	}

	categories := make(map[string]bool)
	interests := make(map[string]bool)
	sum := 0.0

	for _, a := range articles {
		sum += a.Score
		if a.Score > stats.MaxScore {
			stats.MaxScore = a.Score
		}
		if a.Score < stats.MinScore {
			stats.MinScore = a.Score
		}
		categories[a.Category] = true
		interests[a.Interest] = true
	}

	stats.AvgScore = sum / float64(len(articles))
	stats.CategoryCount = len(categories)
	stats.InterestCount = len(interests)

	return stats
}

var funcs = template.FuncMap{
	"formatDate":  formatDate,
	"formatScore": formatScore,
}

// Render produces the full HTML report. Article fields are escaped by
// html/template, so feed content cannot inject markup.
func Render(scored []scorer.ScoredArticle, cfg *config.Config) (string, error) {
	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, Prepare(scored, cfg)); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	return buf.String(), nil
}

// Save writes the report under dir with a timestamped filename so earlier
// reports are never overwritten. It returns the absolute path.
func Save(html, dir, prefix string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.html", prefix, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return filepath.Abs(path)
}

// Latest returns the most recently modified .html report under dir, or ""
// when there is none.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var latest string
	var latestMod time.Time

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = filepath.Join(dir, entry.Name())
			latestMod = info.ModTime()
		}
	}

	if latest == "" {
		return "", nil
	}
	return filepath.Abs(latest)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "Unknown"
	}
	return t.Format("02.01.2006 15:04")
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
