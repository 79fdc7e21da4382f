package textutil

import (
	"regexp"
	"strings"
)

// Provider output arrives with markdown artifacts the client UIs cannot
// render. Each cleanup stage is a pure function and a fixed point after one
// pass, so callers may compose or repeat them freely.
var (
	boldRe        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletRe      = regexp.MustCompile(`(?m)(^|[ \t])[-*]+[ \t]+`)
	punctuationRe = regexp.MustCompile(`[#*_\[\](){}]`)
	newlineRunRe  = regexp.MustCompile(`\n{2,}`)
)

// RemoveMarkdown strips markdown artifacts from raw provider text: bold
// markers, bullet prefixes, leftover markdown punctuation, and runs of
// blank lines. It never fails; worst case the input comes back trimmed.
func RemoveMarkdown(raw string) string {
	out := boldRe.ReplaceAllString(raw, "$1")
	out = bulletRe.ReplaceAllString(out, "$1")
	out = punctuationRe.ReplaceAllString(out, "")
	out = newlineRunRe.ReplaceAllString(out, "\n")
	return strings.TrimSpace(out)
}

// FormatParagraphs splits text on newlines, trims each segment, drops empty
// segments, and rejoins with a blank line between paragraphs.
func FormatParagraphs(text string) string {
	lines := strings.Split(text, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// Clean applies both cleanup stages in order.
func Clean(raw string) string {
	return FormatParagraphs(RemoveMarkdown(raw))
}

// Unescape resolves literal escape sequences (\n, \t, \", \', \\) that some
// providers emit inside JSON string payloads. Unknown sequences are kept
// verbatim; the routine is total and never evaluates its input.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
		}
		i++
	}
	return b.String()
}
