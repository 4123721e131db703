package services

import (
	"fmt"
	"strings"

	"github.com/alimgiray/repodigest/internal/models"
)

// MaxRenderedLinks caps the README links section
const MaxRenderedLinks = 20

// RenderMarkdown turns a ReducedRecord into a single Markdown document.
// Sections with no data are left out entirely.
func RenderMarkdown(record *models.ReducedRecord) string {
	if record == nil {
		record = &models.ReducedRecord{}
	}

	var b strings.Builder
	renderTitle(&b, record)
	renderStatistics(&b, record.BasicInfo)

	if record.ReadmeContent != "" {
		b.WriteString("## README\n\n")
		writeFenced(&b, "markdown", record.ReadmeContent)
	}

	if len(record.Issues) > 0 {
		fmt.Fprintf(&b, "## Issues (%d)\n\n", len(record.Issues))
		for _, issue := range record.Issues {
			renderIssue(&b, issue)
		}
	}

	if len(record.Releases) > 0 {
		fmt.Fprintf(&b, "## Releases (%d)\n\n", len(record.Releases))
		for _, release := range record.Releases {
			renderRelease(&b, release)
		}
	}

	if len(record.Documents) > 0 {
		fmt.Fprintf(&b, "## Documentation Files (%d)\n\n", len(record.Documents))
		for _, doc := range record.Documents {
			fmt.Fprintf(&b, "### %s\n\n", doc.Name)
			if doc.Content == "" {
				b.WriteString("_Content could not be decoded._\n\n")
				continue
			}
			writeFenced(&b, "", doc.Content)
		}
	}

	if record.PRTemplate != "" {
		b.WriteString("## Pull Request Template\n\n")
		writeFenced(&b, "markdown", record.PRTemplate)
	}

	renderNameList(&b, "Issue Templates", record.IssueTemplates)
	renderNameList(&b, "CI Workflows", record.Workflows)
	renderEntries(&b, "Repository Structure", record.RootContents)
	renderEntries(&b, "Docs Directory", record.DocsDirectory)
	renderLinks(&b, record.ReadmeLinks)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderTitle(b *strings.Builder, record *models.ReducedRecord) {
	title := record.BasicInfo.FullName
	if title == "" {
		title = record.Repository
	}
	if title == "" {
		title = record.BasicInfo.Name
	}
	if title == "" {
		title = "Unknown repository"
	}

	fmt.Fprintf(b, "# %s\n\n", title)
	if record.BasicInfo.Description != "" {
		fmt.Fprintf(b, "> %s\n\n", record.BasicInfo.Description)
	}
	if record.BasicInfo.URL != "" {
		fmt.Fprintf(b, "**URL**: %s\n\n", record.BasicInfo.URL)
	}
}

func renderStatistics(b *strings.Builder, info models.BasicInfo) {
	b.WriteString("## Basic Statistics\n\n")
	fmt.Fprintf(b, "- **Stars**: %d\n", info.Stars)
	fmt.Fprintf(b, "- **Forks**: %d\n", info.Forks)
	fmt.Fprintf(b, "- **Watchers**: %d\n", info.Watchers)
	fmt.Fprintf(b, "- **Open Issues**: %d\n", info.OpenIssues)

	optional := []struct {
		label string
		value string
	}{
		{"Language", info.Language},
		{"License", info.License},
		{"Default Branch", info.DefaultBranch},
		{"Homepage", info.Homepage},
		{"Created", info.CreatedAt},
		{"Last Updated", info.UpdatedAt},
		{"Last Push", info.PushedAt},
	}
	for _, field := range optional {
		if field.value != "" {
			fmt.Fprintf(b, "- **%s**: %s\n", field.label, field.value)
		}
	}
	if len(info.Topics) > 0 {
		fmt.Fprintf(b, "- **Topics**: %s\n", strings.Join(info.Topics, ", "))
	}
	if info.IsFork {
		b.WriteString("- **Fork**: yes\n")
	}
	if info.Archived {
		b.WriteString("- **Archived**: yes\n")
	}
	b.WriteString("\n")
}

func renderIssue(b *strings.Builder, issue models.Issue) {
	fmt.Fprintf(b, "### #%d: %s\n\n", issue.Number, issue.Title)
	fmt.Fprintf(b, "- **State**: %s\n", issue.State)
	fmt.Fprintf(b, "- **Author**: %s\n", issue.Author)
	fmt.Fprintf(b, "- **Comments**: %d\n", issue.Comments)
	fmt.Fprintf(b, "- **Reactions**: %d\n", issue.Reactions)
	if len(issue.Labels) > 0 {
		fmt.Fprintf(b, "- **Labels**: %s\n", strings.Join(issue.Labels, ", "))
	}
	fmt.Fprintf(b, "- **Created**: %s\n", issue.CreatedAt)
	fmt.Fprintf(b, "- **Updated**: %s\n\n", issue.UpdatedAt)
	writeFenced(b, "", orPlaceholder(issue.Body, "(no content)"))
}

func renderRelease(b *strings.Builder, release models.Release) {
	heading := release.TagName
	if release.Name != "" && release.Name != release.TagName {
		heading += ": " + release.Name
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	fmt.Fprintf(b, "- **Published**: %s\n", release.PublishedAt)
	fmt.Fprintf(b, "- **Author**: %s\n", release.Author)
	fmt.Fprintf(b, "- **Prerelease**: %t\n\n", release.Prerelease)
	writeFenced(b, "", orPlaceholder(release.Body, "(no release notes)"))
}

func renderNameList(b *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s (%d)\n\n", title, len(names))
	for _, name := range names {
		fmt.Fprintf(b, "- %s\n", name)
	}
	b.WriteString("\n")
}

func renderEntries(b *strings.Builder, title string, entries []models.DirectoryEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, entry := range entries {
		glyph := "📄"
		if entry.IsDir() {
			glyph = "📁"
		}
		fmt.Fprintf(b, "- %s %s\n", glyph, entry.Name)
	}
	b.WriteString("\n")
}

func renderLinks(b *strings.Builder, links []models.LinkRef) {
	if len(links) == 0 {
		return
	}
	fmt.Fprintf(b, "## README Links (%d)\n\n", len(links))
	for i, link := range links {
		if i == MaxRenderedLinks {
			fmt.Fprintf(b, "- ... and %d more links\n", len(links)-MaxRenderedLinks)
			break
		}
		fmt.Fprintf(b, "- [%s](%s)\n", link.Text, link.URL)
	}
	b.WriteString("\n")
}

// writeFenced writes content in a code fence long enough not to be closed by the content itself
func writeFenced(b *strings.Builder, lang, content string) {
	fence := strings.Repeat("`", max(3, longestBacktickRun(content)+1))
	b.WriteString(fence + lang + "\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence + "\n\n")
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func longestBacktickRun(s string) int {
	longest, current := 0, 0
	for _, r := range s {
		if r == '`' {
			current++
			longest = max(longest, current)
			continue
		}
		current = 0
	}
	return longest
}
