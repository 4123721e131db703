package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// DefaultRequestTimeout bounds every API request
const DefaultRequestTimeout = 10 * time.Second

// GitHubClient issues single GET requests against the GitHub REST API and
// turns every failure into an Outcome instead of an error.
type GitHubClient struct {
	gh *github.Client
}

// NewGitHubClient creates a client for baseURL. An empty token means unauthenticated requests.
func NewGitHubClient(baseURL, token string, timeout time.Duration) (*GitHubClient, error) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	client := github.NewClient(httpClient)
	client.UserAgent = "repodigest"

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
		client.BaseURL = parsed
	}

	return &GitHubClient{gh: client}, nil
}

// Get requests endpoint (relative to the API base URL) with the given query
// and decodes a 200 response body into v.
func (c *GitHubClient) Get(ctx context.Context, endpoint string, query url.Values, v interface{}) models.Outcome {
	target := strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	entry := logger.WithField("endpoint", target)

	req, err := c.gh.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		entry.WithError(err).Error("Failed to build request")
		return models.Outcome{Status: models.StatusException, Err: err}
	}

	resp, err := c.gh.Do(ctx, req, v)
	return classify(entry, resp, err)
}

// classify maps a go-github response/error pair onto an Outcome and logs it
func classify(entry *logrus.Entry, resp *github.Response, err error) models.Outcome {
	statusCode := 0
	if resp != nil && resp.Response != nil {
		statusCode = resp.StatusCode
	}

	var ghErr *github.ErrorResponse
	var rateErr *github.RateLimitError
	switch {
	case statusCode == http.StatusNotFound:
		entry.Info("Not found")
		return models.Outcome{Status: models.StatusNotFound, StatusCode: statusCode, Err: err}
	case err == nil && statusCode == http.StatusOK:
		entry.Debug("Request succeeded")
		return models.Outcome{Status: models.StatusOK, StatusCode: statusCode}
	case errors.As(err, &rateErr):
		entry.WithField("status", statusCode).Warnf("Rate limit exceeded, resets at %s", rateErr.Rate.Reset.Time.Format(time.RFC3339))
		return models.Outcome{Status: models.StatusHTTPError, StatusCode: statusCode, Err: err}
	case errors.As(err, &ghErr), err == nil && statusCode != 0:
		// err == nil here means a 2xx other than 200
		entry.WithField("status", statusCode).Warn("Unexpected response status")
		return models.Outcome{Status: models.StatusHTTPError, StatusCode: statusCode, Err: err}
	case err != nil && statusCode != 0 && statusCode != http.StatusOK:
		entry.WithField("status", statusCode).WithError(err).Warn("Request failed")
		return models.Outcome{Status: models.StatusHTTPError, StatusCode: statusCode, Err: err}
	default:
		if err == nil {
			err = errors.New("no response")
		}
		entry.WithError(err).Error("Request error")
		return models.Outcome{Status: models.StatusException, StatusCode: statusCode, Err: err}
	}
}

// Fetch is Get with a typed result
func Fetch[T any](ctx context.Context, client *GitHubClient, endpoint string, query url.Values) models.Result[T] {
	var value T
	outcome := client.Get(ctx, endpoint, query, &value)
	return models.Result[T]{Outcome: outcome, Value: value}
}
