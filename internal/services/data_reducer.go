package services

import (
	"time"
	"unicode/utf8"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/google/go-github/v57/github"
)

// CommonDocFiles are the documentation files looked up at the repository root, in order
var CommonDocFiles = []string{
	"CHANGELOG.md", "CHANGELOG",
	"SECURITY.md", "SECURITY",
	"FAQ.md", "FAQ",
	"ROADMAP.md", "ROADMAP",
	"ARCHITECTURE.md",
	"DEVELOPMENT.md",
	"INSTALLATION.md",
	"CONFIGURATION.md",
	"CONTRIBUTING.md",
	"CODE_OF_CONDUCT.md",
	"LICENSE", "LICENSE.md",
}

// ReduceAggregate projects an AggregateRecord onto a ReducedRecord.
// It never fails: anything missing upstream becomes a zero value or an empty list.
func ReduceAggregate(record *models.AggregateRecord) *models.ReducedRecord {
	if record == nil {
		record = &models.AggregateRecord{}
	}

	reduced := &models.ReducedRecord{
		Repository:     record.Metadata.FullName,
		BasicInfo:      reduceBasicInfo(record.BasicInfo),
		ReadmeContent:  record.Readme.Text(),
		ReadmeLinks:    append([]models.LinkRef{}, record.ReadmeLinks...),
		Issues:         make([]models.Issue, 0, len(record.Issues)),
		Releases:       make([]models.Release, 0, len(record.Releases)),
		Documents:      reduceDocuments(record.CommonDocs),
		PRTemplate:     record.PRTemplate.Text(),
		IssueTemplates: entryNames(record.IssueTemplates),
		Workflows:      entryNames(record.Workflows),
		RootContents:   reduceEntries(record.RootContents),
		DocsDirectory:  reduceEntries(record.DocsDirectory),
	}

	if reduced.Repository == "" {
		reduced.Repository = reduced.BasicInfo.FullName
	}

	for _, issue := range record.Issues {
		if issue == nil {
			continue
		}
		reduced.Issues = append(reduced.Issues, reduceIssue(issue))
	}
	for _, release := range record.Releases {
		if release == nil {
			continue
		}
		reduced.Releases = append(reduced.Releases, reduceRelease(release))
	}

	reduced.Stats = computeStats(reduced, record)
	return reduced
}

func reduceBasicInfo(repo *github.Repository) models.BasicInfo {
	info := models.BasicInfo{Topics: []string{}}
	if repo == nil {
		return info
	}

	info.Name = repo.GetName()
	info.FullName = repo.GetFullName()
	info.Owner = repo.GetOwner().GetLogin()
	info.Description = repo.GetDescription()
	info.URL = repo.GetHTMLURL()
	info.Homepage = repo.GetHomepage()
	info.Language = repo.GetLanguage()
	info.DefaultBranch = repo.GetDefaultBranch()
	info.Stars = repo.GetStargazersCount()
	info.Forks = repo.GetForksCount()
	info.Watchers = repo.GetSubscribersCount()
	info.OpenIssues = repo.GetOpenIssuesCount()
	info.Size = repo.GetSize()
	info.IsFork = repo.GetFork()
	info.Archived = repo.GetArchived()
	info.CreatedAt = formatTimestamp(repo.CreatedAt)
	info.UpdatedAt = formatTimestamp(repo.UpdatedAt)
	info.PushedAt = formatTimestamp(repo.PushedAt)

	if license := repo.GetLicense(); license != nil {
		info.License = license.GetSPDXID()
		if info.License == "" || info.License == "NOASSERTION" {
			info.License = license.GetName()
		}
	}
	if repo.Topics != nil {
		info.Topics = append(info.Topics, repo.Topics...)
	}

	// subscribers_count is only present on the single-repository endpoint
	if info.Watchers == 0 {
		info.Watchers = repo.GetWatchersCount()
	}
	return info
}

func reduceIssue(issue *github.Issue) models.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return models.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		Comments:  issue.GetComments(),
		Reactions: issue.GetReactions().GetTotalCount(),
		CreatedAt: formatTimestamp(issue.CreatedAt),
		UpdatedAt: formatTimestamp(issue.UpdatedAt),
		Author:    issue.GetUser().GetLogin(),
		Labels:    labels,
		Body:      issue.GetBody(),
	}
}

func reduceRelease(release *github.RepositoryRelease) models.Release {
	return models.Release{
		TagName:     release.GetTagName(),
		Name:        release.GetName(),
		PublishedAt: formatTimestamp(release.PublishedAt),
		Author:      release.GetAuthor().GetLogin(),
		Prerelease:  release.GetPrerelease(),
		Body:        release.GetBody(),
	}
}

// reduceDocuments returns the resolved docs in CommonDocFiles order
func reduceDocuments(docs map[string]*models.FileContent) []models.Document {
	documents := []models.Document{}
	for _, name := range CommonDocFiles {
		file, ok := docs[name]
		if !ok || file == nil {
			continue
		}
		path := file.GetPath()
		if path == "" {
			path = name
		}
		documents = append(documents, models.Document{
			Name:    name,
			Path:    path,
			Content: file.Text(),
		})
	}
	return documents
}

func reduceEntries(entries []*github.RepositoryContent) []models.DirectoryEntry {
	reduced := make([]models.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		reduced = append(reduced, models.DirectoryEntry{
			Name: entry.GetName(),
			Path: entry.GetPath(),
			Type: entry.GetType(),
			Size: entry.GetSize(),
		})
	}
	return reduced
}

func entryNames(entries []*github.RepositoryContent) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		names = append(names, entry.GetName())
	}
	return names
}

func computeStats(reduced *models.ReducedRecord, record *models.AggregateRecord) models.Stats {
	stats := models.Stats{
		ReadmeLength:        utf8.RuneCountInString(reduced.ReadmeContent),
		TotalIssues:         len(reduced.Issues),
		TotalReleases:       len(reduced.Releases),
		TotalDocuments:      len(reduced.Documents),
		TotalWorkflows:      len(reduced.Workflows),
		TotalIssueTemplates: len(reduced.IssueTemplates),
		TotalReadmeLinks:    len(reduced.ReadmeLinks),
		RootEntries:         len(reduced.RootContents),
		DocsEntries:         len(reduced.DocsDirectory),
		HasReadme:           reduced.ReadmeContent != "",
		HasPRTemplate:       reduced.PRTemplate != "",
		HasDocsDirectory:    record.DocsDirectory != nil,
		HasWorkflows:        len(reduced.Workflows) > 0,
		HasIssueTemplates:   len(reduced.IssueTemplates) > 0,
	}

	for _, issue := range reduced.Issues {
		switch issue.State {
		case "open":
			stats.OpenIssues++
		case "closed":
			stats.ClosedIssues++
		}
	}
	return stats
}

func formatTimestamp(ts *github.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
