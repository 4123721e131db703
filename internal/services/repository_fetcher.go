package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
)

const (
	DefaultIssueLimit   = 10
	DefaultReleaseLimit = 5
)

// PRTemplatePaths are tried in order; the first one that exists wins
var PRTemplatePaths = []string{
	".github/PULL_REQUEST_TEMPLATE.md",
	"PULL_REQUEST_TEMPLATE.md",
	".github/pull_request_template.md",
}

// RepositoryFetcher collects every resource kind for one repository, one request at a time
type RepositoryFetcher struct {
	client       *GitHubClient
	progress     io.Writer
	issueLimit   int
	releaseLimit int
	now          func() time.Time
}

func NewRepositoryFetcher(client *GitHubClient, progress io.Writer, issueLimit, releaseLimit int) *RepositoryFetcher {
	if progress == nil {
		progress = io.Discard
	}
	if issueLimit <= 0 {
		issueLimit = DefaultIssueLimit
	}
	if releaseLimit <= 0 {
		releaseLimit = DefaultReleaseLimit
	}

	return &RepositoryFetcher{
		client:       client,
		progress:     progress,
		issueLimit:   issueLimit,
		releaseLimit: releaseLimit,
		now:          time.Now,
	}
}

// Fetch retrieves all resource kinds for ref. Individual failures leave the
// corresponding field nil; Fetch itself cannot fail.
func (f *RepositoryFetcher) Fetch(ctx context.Context, ref models.RepositoryRef) *models.AggregateRecord {
	record := models.NewAggregateRecord(ref, f.now())
	repoPath := path.Join("repos", ref.Owner, ref.Name)

	log := logger.WithFields(logrus.Fields{
		"repository": ref.FullName(),
		"run_id":     record.Metadata.RunID,
	})
	log.Info("Fetching repository data")
	fmt.Fprintf(f.progress, "Fetching %s\n", ref.FullName())

	basicInfo := Fetch[*github.Repository](ctx, f.client, repoPath, nil)
	record.BasicInfo, _ = basicInfo.Get()
	f.report("Basic info", basicInfo.Outcome)

	record.Readme = f.fetchReadme(ctx, repoPath)

	for _, name := range CommonDocFiles {
		if file, ok := f.fetchFile(ctx, repoPath, name); ok {
			record.CommonDocs[name] = file
			f.report(name, models.Outcome{Status: models.StatusOK})
		}
	}

	record.DocsDirectory = f.fetchDirectory(ctx, repoPath, "docs", "docs/ directory")
	record.RootContents = f.fetchDirectory(ctx, repoPath, "", "Root directory")

	issueQuery := url.Values{
		"state":     {"all"},
		"sort":      {"reactions"},
		"direction": {"desc"},
		"per_page":  {strconv.Itoa(f.issueLimit)},
	}
	issues := Fetch[[]*github.Issue](ctx, f.client, path.Join(repoPath, "issues"), issueQuery)
	record.Issues, _ = issues.Get()
	f.reportCount("Issues", issues.Outcome, len(record.Issues))

	record.Workflows = f.fetchDirectory(ctx, repoPath, ".github/workflows", "Workflows")

	releaseQuery := url.Values{"per_page": {strconv.Itoa(f.releaseLimit)}}
	releases := Fetch[[]*github.RepositoryRelease](ctx, f.client, path.Join(repoPath, "releases"), releaseQuery)
	record.Releases, _ = releases.Get()
	f.reportCount("Releases", releases.Outcome, len(record.Releases))

	record.PRTemplate = f.fetchPRTemplate(ctx, repoPath)
	record.IssueTemplates = f.fetchDirectory(ctx, repoPath, ".github/ISSUE_TEMPLATE", "Issue templates")

	if readme := record.Readme; readme != nil && readme.DecodedContent != nil {
		record.ReadmeLinks = ExtractRelativeLinks(*readme.DecodedContent)
		fmt.Fprintf(f.progress, "  ✓ README links: %d\n", len(record.ReadmeLinks))
	}

	log.WithField("docs", len(record.CommonDocs)).Info("Finished fetching repository data")
	return record
}

func (f *RepositoryFetcher) fetchReadme(ctx context.Context, repoPath string) *models.FileContent {
	result := Fetch[*github.RepositoryContent](ctx, f.client, path.Join(repoPath, "readme"), nil)
	content, ok := result.Get()
	if !ok || content == nil {
		f.report("README", result.Outcome)
		return nil
	}

	readme, err := DecodeContent(content)
	if err != nil {
		logger.WithError(err).WithField("path", content.GetPath()).Warn("Failed to decode README")
		f.report("README", models.Outcome{Status: models.StatusException, Err: err})
		return readme
	}

	f.report("README", result.Outcome)
	return readme
}

// fetchFile gets a single file. Directories and failures count as absent;
// undecodable payloads are kept without decoded text.
func (f *RepositoryFetcher) fetchFile(ctx context.Context, repoPath, filePath string) (*models.FileContent, bool) {
	result := Fetch[json.RawMessage](ctx, f.client, path.Join(repoPath, "contents", filePath), nil)
	raw, ok := result.Get()
	if !ok {
		return nil, false
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		logger.WithField("path", filePath).Debug("Expected a file, found a directory")
		return nil, false
	}

	var content github.RepositoryContent
	if err := json.Unmarshal(raw, &content); err != nil {
		logger.WithError(err).WithField("path", filePath).Warn("Failed to parse file content response")
		return nil, false
	}

	file, _ := DecodeContent(&content)
	return file, true
}

func (f *RepositoryFetcher) fetchDirectory(ctx context.Context, repoPath, dirPath, label string) []*github.RepositoryContent {
	endpoint := path.Join(repoPath, "contents", dirPath)
	result := Fetch[[]*github.RepositoryContent](ctx, f.client, endpoint, nil)
	entries, ok := result.Get()
	if !ok {
		f.report(label, result.Outcome)
		return nil
	}

	f.reportCount(label, result.Outcome, len(entries))
	return entries
}

func (f *RepositoryFetcher) fetchPRTemplate(ctx context.Context, repoPath string) *models.FileContent {
	for _, candidate := range PRTemplatePaths {
		if file, ok := f.fetchFile(ctx, repoPath, candidate); ok {
			f.report("PR template ("+candidate+")", models.Outcome{Status: models.StatusOK})
			return file
		}
	}
	f.report("PR template", models.Outcome{Status: models.StatusNotFound})
	return nil
}

func (f *RepositoryFetcher) report(label string, outcome models.Outcome) {
	if outcome.OK() {
		fmt.Fprintf(f.progress, "  ✓ %s\n", label)
		return
	}
	fmt.Fprintf(f.progress, "  ✗ %s (%s)\n", label, outcome.Describe())
}

func (f *RepositoryFetcher) reportCount(label string, outcome models.Outcome, count int) {
	if outcome.OK() {
		fmt.Fprintf(f.progress, "  ✓ %s: %d\n", label, count)
		return
	}
	f.report(label, outcome)
}
