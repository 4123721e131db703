package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/joho/godotenv"
)

const (
	// TokenKey is the key looked up in both the dotfile and the environment.
	TokenKey = "GITHUB_TOKEN"

	// TokenPlaceholder is the value shipped in example dotfiles. It is never a real token.
	TokenPlaceholder = "your_token_here"
)

// TokenSource is one place an access token may come from.
type TokenSource interface {
	Name() string
	Token() (string, bool, error)
}

// StaticToken is a token handed over explicitly, usually from a command line flag.
type StaticToken string

func (s StaticToken) Name() string { return "flag" }

func (s StaticToken) Token() (string, bool, error) {
	token := strings.TrimSpace(string(s))
	return token, token != "", nil
}

// DotenvFile reads GITHUB_TOKEN from a KEY=VALUE file.
type DotenvFile struct {
	Path string
}

func (d DotenvFile) Name() string { return d.Path }

func (d DotenvFile) Token() (string, bool, error) {
	if d.Path == "" {
		return "", false, nil
	}

	data, err := os.ReadFile(d.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", d.Path, err)
	}

	// Lines are parsed one at a time so a malformed line elsewhere cannot hide the token.
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		values, err := godotenv.Unmarshal(line)
		if err != nil {
			logger.WithField("file", d.Path).Debugf("Skipping unparsable line: %v", err)
			continue
		}

		token := strings.TrimSpace(values[TokenKey])
		if token != "" && token != TokenPlaceholder {
			return token, true, nil
		}
	}
	return "", false, nil
}

// EnvVar reads a token from a process environment variable.
type EnvVar struct {
	Key string
}

func (e EnvVar) Name() string { return "$" + e.Key }

func (e EnvVar) Token() (string, bool, error) {
	value, ok := os.LookupEnv(e.Key)
	value = strings.TrimSpace(value)
	return value, ok && value != "", nil
}

// CredentialResolver walks its sources in order and returns the first token found.
type CredentialResolver struct {
	sources []TokenSource
}

func NewCredentialResolver(sources ...TokenSource) *CredentialResolver {
	return &CredentialResolver{sources: sources}
}

// DefaultSources returns the standard lookup order: flag, dotfile, environment.
func DefaultSources(flagToken, envFile string) []TokenSource {
	return []TokenSource{
		StaticToken(flagToken),
		DotenvFile{Path: envFile},
		EnvVar{Key: TokenKey},
	}
}

// Resolve returns the token, or "" when no source has one.
// Source errors are logged and skipped.
func (r *CredentialResolver) Resolve() string {
	for _, source := range r.sources {
		token, ok, err := source.Token()
		if err != nil {
			logger.WithError(err).WithField("source", source.Name()).Warn("Failed to read token source")
			continue
		}
		if ok {
			logger.WithField("source", source.Name()).Debug("Using GitHub token")
			return token
		}
	}

	logger.Warn("No GitHub token found, continuing unauthenticated (60 requests/hour)")
	return ""
}
