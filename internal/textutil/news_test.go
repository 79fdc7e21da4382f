package textutil

import (
	"strings"
	"testing"
)

const goodNewsSample = `New diabetes screening guidelines released
https://news.example.com/articles/diabetes-screening
Source: Health Daily
Date: 2025-03-14

Wearable heart monitors show promise in trial
https://news.example.com/articles/wearable-trial
Source: MedWire
Date: 2025-03-12

Overall, this week's coverage focused on early screening and consumer
monitoring devices.`

func TestSplitArticles_KnownGoodSample(t *testing.T) {
	articles, summary, ok := SplitArticles(goodNewsSample)
	if !ok {
		t.Fatal("expected article pattern to be detected")
	}
	if !strings.Contains(articles, "https://news.example.com/articles/wearable-trial") {
		t.Errorf("articles section missing second block: %q", articles)
	}
	if strings.Contains(articles, "Overall,") {
		t.Errorf("summary leaked into articles section: %q", articles)
	}
	if !strings.HasPrefix(summary, "Overall,") {
		t.Errorf("unexpected summary: %q", summary)
	}
}

func TestSplitArticles_UnparsableDegradesGracefully(t *testing.T) {
	raw := "  The provider changed its format and now returns prose only.  "
	articles, summary, ok := SplitArticles(raw)
	if ok {
		t.Fatal("expected no article pattern")
	}
	if articles != strings.TrimSpace(raw) {
		t.Errorf("expected trimmed raw text back, got %q", articles)
	}
	if summary != "" {
		t.Errorf("expected empty summary, got %q", summary)
	}
}

func TestJoinArticles(t *testing.T) {
	got := JoinArticles("a", "b")
	if got != "a\n\n---\n\nb" {
		t.Errorf("unexpected join: %q", got)
	}
	if JoinArticles("a", "") != "a" {
		t.Error("empty summary should return articles unchanged")
	}
}
