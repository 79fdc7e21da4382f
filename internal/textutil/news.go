package textutil

import (
	"regexp"
	"strings"
)

// Some provider responses interleave a list of news articles with a closing
// summary. The article blocks follow a "URL, Source: line, Date: line, blank
// line" shape. This split is a best-effort heuristic: it depends on the
// provider's exact formatting, and when the pattern is absent the caller
// gets the trimmed raw text back as a single block.
var articleBlockRe = regexp.MustCompile(`https?://\S+\n+Source: .*\n+Date: .*(?:\n|$)`)

// SplitArticles separates an "articles list + summary" response into its two
// sections. ok reports whether the article pattern was detected; when false,
// articles holds the trimmed raw text and summary is empty.
func SplitArticles(raw string) (articles, summary string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	locs := articleBlockRe.FindAllStringIndex(trimmed, -1)
	if len(locs) == 0 {
		return trimmed, "", false
	}

	last := locs[len(locs)-1]
	articles = strings.TrimSpace(trimmed[:last[1]])
	summary = strings.TrimSpace(trimmed[last[1]:])
	return articles, summary, true
}

// JoinArticles renders the two sections with a visual separator, matching
// what the news endpoint returns to clients. If the summary is empty the
// articles section is returned as-is.
func JoinArticles(articles, summary string) string {
	if summary == "" {
		return articles
	}
	return articles + "\n\n---\n\n" + summary
}
