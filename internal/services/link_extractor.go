package services

import (
	"regexp"
	"strings"

	"github.com/alimgiray/repodigest/internal/models"
)

// inlineLinkPattern matches the literal [text](target) form. Text and target must be non-empty.
var inlineLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

var absoluteLinkPrefixes = []string{"http://", "https://", "#", "mailto:"}

// ExtractRelativeLinks returns the inline [text](target) links of a Markdown
// document whose targets point inside the repository, in document order.
// The scan is textual: code blocks are not skipped and reference links are not resolved.
// Duplicates are kept.
func ExtractRelativeLinks(markdown string) []models.LinkRef {
	links := []models.LinkRef{}
	for _, match := range inlineLinkPattern.FindAllStringSubmatch(markdown, -1) {
		text, target := match[1], match[2]
		if !isRelativeLink(target) {
			continue
		}
		links = append(links, models.LinkRef{Text: text, URL: target})
	}
	return links
}

func isRelativeLink(target string) bool {
	for _, prefix := range absoluteLinkPrefixes {
		if strings.HasPrefix(target, prefix) {
			return false
		}
	}
	return true
}
