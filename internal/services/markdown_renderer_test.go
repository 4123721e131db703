package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestRenderMarkdownOmitsEmptySections(t *testing.T) {
	output := RenderMarkdown(ReduceAggregate(&models.AggregateRecord{}))

	assert.True(t, strings.HasPrefix(output, "# Unknown repository\n"))
	assert.Contains(t, output, "## Basic Statistics\n")
	assert.Contains(t, output, "- **Stars**: 0\n")

	for _, header := range []string{
		"## README", "## Issues", "## Releases", "## Documentation Files", "## Pull Request Template",
		"## Issue Templates", "## CI Workflows", "## Repository Structure", "## Docs Directory", "## README Links",
	} {
		assert.NotContains(t, output, header)
	}
	assert.True(t, strings.HasSuffix(output, "\n"))
	assert.False(t, strings.HasSuffix(output, "\n\n"))
}

func TestRenderMarkdownSectionsAndOrder(t *testing.T) {
	record := &models.ReducedRecord{
		Repository: "octo/demo",
		BasicInfo: models.BasicInfo{
			FullName:    "octo/demo",
			Description: "A demo",
			URL:         "https://github.com/octo/demo",
			Stars:       12,
			Language:    "Go",
			Topics:      []string{"cli", "go"},
		},
		ReadmeContent: "# Demo\n\nHello",
		Issues: []models.Issue{
			{Number: 4, Title: "Crash on start", State: "open", Author: "alice", Labels: []string{"bug"}, Body: "Steps"},
			{Number: 9, Title: "Docs", State: "closed", Author: "bob"},
		},
		Releases: []models.Release{
			{TagName: "v1.0.0", Name: "First", Author: "carol", Body: "Notes"},
			{TagName: "v1.1.0-rc1", Author: "carol", Prerelease: true},
		},
		Documents:      []models.Document{{Name: "CHANGELOG.md", Content: "## 1.0"}, {Name: "LICENSE"}},
		PRTemplate:     "## Checklist",
		IssueTemplates: []string{"bug.yml"},
		Workflows:      []string{"ci.yml", "release.yml"},
		RootContents: []models.DirectoryEntry{
			{Name: "cmd", Type: "dir"},
			{Name: "go.mod", Type: "file"},
		},
		DocsDirectory: []models.DirectoryEntry{{Name: "guide.md", Type: "file"}},
		ReadmeLinks:   []models.LinkRef{{Text: "guide", URL: "docs/guide.md"}},
	}

	output := RenderMarkdown(record)

	assert.Contains(t, output, "# octo/demo\n\n> A demo\n\n**URL**: https://github.com/octo/demo\n")
	assert.Contains(t, output, "- **Stars**: 12\n")
	assert.Contains(t, output, "- **Language**: Go\n")
	assert.Contains(t, output, "- **Topics**: cli, go\n")
	assert.Contains(t, output, "## README\n\n```markdown\n# Demo\n\nHello\n```\n")
	assert.Contains(t, output, "## Issues (2)\n")
	assert.Contains(t, output, "### #4: Crash on start\n")
	assert.Contains(t, output, "- **Labels**: bug\n")
	assert.Contains(t, output, "```\nSteps\n```\n")
	assert.Contains(t, output, "### #9: Docs\n")
	assert.Contains(t, output, "```\n(no content)\n```\n")
	assert.Contains(t, output, "## Releases (2)\n\n### v1.0.0: First\n")
	assert.Contains(t, output, "- **Prerelease**: false\n\n```\nNotes\n```\n")
	assert.Contains(t, output, "### v1.1.0-rc1\n")
	assert.Contains(t, output, "- **Prerelease**: true\n\n```\n(no release notes)\n```\n")
	assert.Contains(t, output, "## Documentation Files (2)\n")
	assert.Contains(t, output, "### LICENSE\n\n_Content could not be decoded._\n")
	assert.Contains(t, output, "## Pull Request Template\n\n```markdown\n## Checklist\n```\n")
	assert.Contains(t, output, "## Issue Templates (1)\n\n- bug.yml\n")
	assert.Contains(t, output, "## CI Workflows (2)\n\n- ci.yml\n- release.yml\n")
	assert.Contains(t, output, "## Repository Structure\n\n- 📁 cmd\n- 📄 go.mod\n")
	assert.Contains(t, output, "## Docs Directory\n\n- 📄 guide.md\n")
	assert.Contains(t, output, "## README Links (1)\n\n- [guide](docs/guide.md)\n")

	order := []string{
		"# octo/demo", "## Basic Statistics", "## README", "## Issues", "## Releases",
		"## Documentation Files", "## Pull Request Template", "## Issue Templates", "## CI Workflows",
		"## Repository Structure", "## Docs Directory", "## README Links",
	}
	last := -1
	for _, header := range order {
		idx := strings.Index(output, header+"\n")
		if idx < 0 {
			idx = strings.Index(output, header+" (")
		}
		assert.Greater(t, idx, last, "section %q out of order", header)
		last = idx
	}
}

func TestRenderMarkdownTruncatesLinks(t *testing.T) {
	links := make([]models.LinkRef, 25)
	for i := range links {
		links[i] = models.LinkRef{Text: fmt.Sprintf("link%d", i), URL: fmt.Sprintf("docs/%d.md", i)}
	}

	output := RenderMarkdown(&models.ReducedRecord{Repository: "o/r", ReadmeLinks: links})

	assert.Contains(t, output, "## README Links (25)\n")
	assert.Equal(t, 20, strings.Count(output, "\n- [link"))
	assert.Contains(t, output, "- [link19](docs/19.md)\n- ... and 5 more links\n")
	assert.NotContains(t, output, "link20")
}

func TestRenderMarkdownWidensFences(t *testing.T) {
	readme := "Example:\n\n```go\nfmt.Println(1)\n```\n"

	output := RenderMarkdown(&models.ReducedRecord{Repository: "o/r", ReadmeContent: readme})

	assert.Contains(t, output, "````markdown\nExample:\n\n```go\nfmt.Println(1)\n```\n````\n")
}

func TestRenderMarkdownKeepsReadmeVerbatim(t *testing.T) {
	readme := "# Title\n\nBody\n\n\n"

	output := RenderMarkdown(&models.ReducedRecord{Repository: "o/r", ReadmeContent: readme})

	assert.Contains(t, output, "```markdown\n"+readme+"```\n")
}

func TestRenderMarkdownFencesHoldEmbeddedCode(t *testing.T) {
	readme := "Example:\n\n```go\nfmt.Println(1)\n```\n\n````\nfour\n````\n"
	output := RenderMarkdown(&models.ReducedRecord{Repository: "o/r", ReadmeContent: readme})

	source := []byte(output)
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if block, ok := node.(*ast.FencedCodeBlock); ok && entering {
			blocks = append(blocks, block)
		}
		return ast.WalkContinue, nil
	})

	require.Len(t, blocks, 1)
	assert.Equal(t, "markdown", string(blocks[0].Language(source)))

	var body strings.Builder
	lines := blocks[0].Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		body.Write(segment.Value(source))
	}
	assert.Equal(t, readme, body.String())
}
