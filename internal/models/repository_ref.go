package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRepositoryURL is returned when a URL does not name an owner and a repository
var ErrInvalidRepositoryURL = errors.New("invalid repository URL")

// RepositoryRef identifies a GitHub repository
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// ParseRepositoryURL takes the last two non-empty path segments of a repository URL.
// A trailing slash and a trailing ".git" are stripped first.
func ParseRepositoryURL(rawURL string) (RepositoryRef, error) {
	trimmed := strings.TrimSpace(rawURL)
	trimmed = strings.TrimRight(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	trimmed = strings.TrimRight(trimmed, "/")

	repoPath := trimmed
	if parsed, err := url.Parse(trimmed); err == nil {
		repoPath = parsed.Path
	} else if at := strings.Index(trimmed, "@"); at >= 0 && strings.Contains(trimmed[at:], ":") {
		// scp-style remote: git@github.com:owner/repo
		repoPath = trimmed[strings.Index(trimmed[at:], ":")+at+1:]
	}

	var segments []string
	for _, segment := range strings.Split(repoPath, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	if len(segments) < 2 {
		return RepositoryRef{}, fmt.Errorf("%w: %q", ErrInvalidRepositoryURL, rawURL)
	}

	return RepositoryRef{
		Owner: segments[len(segments)-2],
		Name:  segments[len(segments)-1],
	}, nil
}

// FullName returns "owner/name"
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// Slug returns "owner_name", used for output directory names
func (r RepositoryRef) Slug() string {
	return r.Owner + "_" + r.Name
}
