package feed

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var commonFeedPaths = []string{
	"/feed",
	"/feed.xml",
	"/rss",
	"/rss.xml",
	"/atom.xml",
	"/index.xml",
	"/feed/rss",
	"/feed/atom",
}

var feedLinkRegex = regexp.MustCompile(`<link[^>]+type=["']application/(?:rss|atom)\+xml["'][^>]*href=["']([^"']+)["']`)

// Discover finds the RSS/Atom feed URL for a site, first by scanning the
// page for a feed <link> element, then by probing common feed paths.
func Discover(siteURL string) (string, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site URL: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(siteURL)
	if err == nil {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 100*1024))
		resp.Body.Close()

		if m := feedLinkRegex.FindStringSubmatch(string(body)); len(m) > 1 {
			href, err := url.Parse(m[1])
			if err == nil {
				return base.ResolveReference(href).String(), nil
			}
		}
	}

	trimmed := strings.TrimSuffix(siteURL, "/")
	for _, path := range commonFeedPaths {
		candidate := trimmed + path
		resp, err := client.Head(candidate)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not discover a feed for %s", siteURL)
}
