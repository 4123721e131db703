package models

// ReducedRecord is the text-focused projection of an AggregateRecord.
// Every field is always present; missing upstream data becomes a zero value or empty list.
type ReducedRecord struct {
	Repository     string           `json:"repository"`
	BasicInfo      BasicInfo        `json:"basic_info"`
	ReadmeContent  string           `json:"readme_content"`
	ReadmeLinks    []LinkRef        `json:"readme_links"`
	Issues         []Issue          `json:"issues"`
	Releases       []Release        `json:"releases"`
	Documents      []Document       `json:"documents"`
	PRTemplate     string           `json:"pr_template"`
	IssueTemplates []string         `json:"issue_templates"`
	Workflows      []string         `json:"workflows"`
	RootContents   []DirectoryEntry `json:"root_contents"`
	DocsDirectory  []DirectoryEntry `json:"docs_directory"`
	Stats          Stats            `json:"stats"`
}

// BasicInfo is the flattened repository metadata
type BasicInfo struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Owner         string   `json:"owner"`
	Description   string   `json:"description"`
	URL           string   `json:"url"`
	Homepage      string   `json:"homepage"`
	Language      string   `json:"language"`
	License       string   `json:"license"`
	DefaultBranch string   `json:"default_branch"`
	Topics        []string `json:"topics"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Watchers      int      `json:"watchers"`
	OpenIssues    int      `json:"open_issues"`
	Size          int      `json:"size"`
	IsFork        bool     `json:"is_fork"`
	Archived      bool     `json:"archived"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	PushedAt      string   `json:"pushed_at"`
}

// Issue is the text-relevant part of a GitHub issue
type Issue struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	Comments  int      `json:"comments"`
	Reactions int      `json:"reactions"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Author    string   `json:"author"`
	Labels    []string `json:"labels"`
	Body      string   `json:"body"`
}

// Release is the text-relevant part of a GitHub release
type Release struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	PublishedAt string `json:"published_at"`
	Author      string `json:"author"`
	Prerelease  bool   `json:"prerelease"`
	Body        string `json:"body"`
}

// Document is a documentation file with its text
type Document struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// DirectoryEntry is one item of a directory listing
type DirectoryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

// IsDir reports whether the entry is a directory
func (e DirectoryEntry) IsDir() bool {
	return e.Type == "dir"
}

// Stats summarizes a ReducedRecord
type Stats struct {
	ReadmeLength        int  `json:"readme_length"`
	TotalIssues         int  `json:"total_issues"`
	OpenIssues          int  `json:"open_issues"`
	ClosedIssues        int  `json:"closed_issues"`
	TotalReleases       int  `json:"total_releases"`
	TotalDocuments      int  `json:"total_documents"`
	TotalWorkflows      int  `json:"total_workflows"`
	TotalIssueTemplates int  `json:"total_issue_templates"`
	TotalReadmeLinks    int  `json:"total_readme_links"`
	RootEntries         int  `json:"root_entries"`
	DocsEntries         int  `json:"docs_entries"`
	HasReadme           bool `json:"has_readme"`
	HasPRTemplate       bool `json:"has_pr_template"`
	HasDocsDirectory    bool `json:"has_docs_directory"`
	HasWorkflows        bool `json:"has_workflows"`
	HasIssueTemplates   bool `json:"has_issue_templates"`
}
