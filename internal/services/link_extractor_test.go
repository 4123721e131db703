package services

import (
	"testing"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestExtractRelativeLinks(t *testing.T) {
	testCases := []struct {
		name     string
		markdown string
		expected []models.LinkRef
	}{
		{
			name:     "Absolute, anchor and mailto links are dropped",
			markdown: "[a](b.md) [c](http://x) [d](#e) [f](mailto:g@h)",
			expected: []models.LinkRef{{Text: "a", URL: "b.md"}},
		},
		{
			name:     "Document order and duplicates are kept",
			markdown: "See [guide](docs/guide.md).\n\nThen [setup](./SETUP.md) and [guide](docs/guide.md) again.",
			expected: []models.LinkRef{
				{Text: "guide", URL: "docs/guide.md"},
				{Text: "setup", URL: "./SETUP.md"},
				{Text: "guide", URL: "docs/guide.md"},
			},
		},
		{
			name:     "HTTPS links are dropped",
			markdown: "[site](https://example.com) [local](CONTRIBUTING.md)",
			expected: []models.LinkRef{{Text: "local", URL: "CONTRIBUTING.md"}},
		},
		{
			name:     "Link text is taken literally",
			markdown: "[**Bold** guide](docs/a.md)",
			expected: []models.LinkRef{{Text: "**Bold** guide", URL: "docs/a.md"}},
		},
		{
			name:     "Image syntax contains the inline pattern",
			markdown: "![logo](assets/logo.png)",
			expected: []models.LinkRef{{Text: "logo", URL: "assets/logo.png"}},
		},
		{
			name:     "Reference links are not inline links",
			markdown: "Read the [manual][m].\n\n[m]: docs/manual.md\n",
			expected: []models.LinkRef{},
		},
		{
			name:     "Links inside code are still matched",
			markdown: "`[x](y.md)`\n\n```\n[z](w.md)\n```\n",
			expected: []models.LinkRef{
				{Text: "x", URL: "y.md"},
				{Text: "z", URL: "w.md"},
			},
		},
		{
			name:     "Empty link text does not match",
			markdown: "[](empty.md)",
			expected: []models.LinkRef{},
		},
		{
			name:     "Targets with spaces and titles are kept verbatim",
			markdown: "[a](my file.md) [b](docs/b.md \"Title\")",
			expected: []models.LinkRef{
				{Text: "a", URL: "my file.md"},
				{Text: "b", URL: "docs/b.md \"Title\""},
			},
		},
		{
			name:     "No links",
			markdown: "# Title\n\nJust text.",
			expected: []models.LinkRef{},
		},
		{
			name:     "Empty input",
			markdown: "",
			expected: []models.LinkRef{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			links := ExtractRelativeLinks(tc.markdown)

			assert.NotNil(t, links)
			assert.Equal(t, tc.expected, links)
		})
	}
}
