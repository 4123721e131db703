package models

import (
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/google/uuid"
)

// FileContent is a file-content API response plus its decoded text.
// DecodedContent is nil when the payload was missing or not valid Base64/UTF-8.
type FileContent struct {
	*github.RepositoryContent
	DecodedContent *string `json:"decoded_content,omitempty"`
}

// Text returns the decoded content, or "" when there is none
func (f *FileContent) Text() string {
	if f == nil || f.DecodedContent == nil {
		return ""
	}
	return *f.DecodedContent
}

// FetchMetadata describes a single fetch run
type FetchMetadata struct {
	RunID     string    `json:"run_id"`
	Owner     string    `json:"owner"`
	Repo      string    `json:"repo"`
	FullName  string    `json:"full_name"`
	FetchedAt time.Time `json:"fetched_at"`
}

// AggregateRecord is everything fetched for one repository, as returned by the API.
// A nil field means the resource was not found or its request failed.
type AggregateRecord struct {
	Metadata       FetchMetadata               `json:"metadata"`
	BasicInfo      *github.Repository          `json:"basic_info"`
	Readme         *FileContent                `json:"readme"`
	ReadmeLinks    []LinkRef                   `json:"readme_links,omitempty"`
	CommonDocs     map[string]*FileContent     `json:"common_docs"`
	DocsDirectory  []*github.RepositoryContent `json:"docs_directory"`
	RootContents   []*github.RepositoryContent `json:"root_contents"`
	Issues         []*github.Issue             `json:"issues"`
	Workflows      []*github.RepositoryContent `json:"workflows"`
	Releases       []*github.RepositoryRelease `json:"releases"`
	PRTemplate     *FileContent                `json:"pr_template"`
	IssueTemplates []*github.RepositoryContent `json:"issue_templates"`
}

// NewAggregateRecord creates an empty AggregateRecord for ref with a generated run ID
func NewAggregateRecord(ref RepositoryRef, fetchedAt time.Time) *AggregateRecord {
	return &AggregateRecord{
		Metadata: FetchMetadata{
			RunID:     uuid.New().String(),
			Owner:     ref.Owner,
			Repo:      ref.Name,
			FullName:  ref.FullName(),
			FetchedAt: fetchedAt.UTC(),
		},
		CommonDocs: map[string]*FileContent{},
	}
}
