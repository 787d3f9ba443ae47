// Package html converts raw HTML pages into clean plain text.
package html

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// DefaultStripTags are the container tags removed wholesale, content
// included, before text extraction.
var DefaultStripTags = []string{"script", "style", "noscript", "header", "footer", "nav"}

// Pre-compiled regular expressions shared by all normalisers.
var (
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Normaliser strips a configured set of container tags from HTML and
// extracts collapsed plain text suitable for chunking.
type Normaliser struct {
	stripPatterns []*regexp.Regexp
}

// New creates a normaliser that removes the given container tags with
// their content. An empty list falls back to DefaultStripTags.
func New(stripTags []string) *Normaliser {
	if len(stripTags) == 0 {
		stripTags = DefaultStripTags
	}

	patterns := make([]*regexp.Regexp, 0, len(stripTags))
	for _, tag := range stripTags {
		tag = regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(tag)))
		if tag == "" {
			continue
		}
		patterns = append(patterns,
			regexp.MustCompile(fmt.Sprintf(`(?is)<%s[^>]*>.*?</%s>`, tag, tag)))
	}

	return &Normaliser{stripPatterns: patterns}
}

// Clean removes unwanted tags and extracts plain text from HTML.
// Tags are replaced by spaces so adjacent text runs stay separate words,
// entities are decoded, and all whitespace collapses to single spaces.
func (n *Normaliser) Clean(content string) string {
	for _, pattern := range n.stripPatterns {
		content = pattern.ReplaceAllString(content, " ")
	}

	content = htmlComments.ReplaceAllString(content, " ")
	content = allTags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = whitespace.ReplaceAllString(content, " ")

	return strings.TrimSpace(content)
}
