package feed

import (
	"strings"
	"time"
)

// Article is a single entry from an RSS/Atom feed, normalized across feed
// formats. Articles are not mutated after construction; every pipeline
// stage derives new records from them.
type Article struct {
	Title          string
	Link           string
	Description    string
	Published      *time.Time
	FeedName       string
	Category       string
	Author         string
	SourcePriority float64
}

// newArticle trims whitespace and rejects entries that cannot be rendered.
// Feeds frequently ship titles and summaries with stray padding.
func newArticle(title, link, description string, published *time.Time, feedName, category, author string, priority float64) (Article, bool) {
	title = strings.TrimSpace(title)
	link = strings.TrimSpace(link)
	if title == "" || link == "" {
		return Article{}, false
	}

	return Article{
		Title:          title,
		Link:           link,
		Description:    strings.TrimSpace(description),
		Published:      published,
		FeedName:       feedName,
		Category:       category,
		Author:         strings.TrimSpace(author),
		SourcePriority: priority,
	}, true
}
