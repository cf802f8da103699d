package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 20 * time.Second
	apiVersion     = "2022-11-28"
	maxErrorBody   = 64 << 10

	// IssuesPerPage is the page size ListIssues requests; a page
	// shorter than this is the last one.
	IssuesPerPage = 100
)

// Client talks to the GitHub REST API for one owner/repo scope.
type Client struct {
	token      string
	owner      string
	repo       string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for the given repository scope.
func NewClient(token, owner, repo string) *Client {
	return &Client{
		token:     token,
		owner:     owner,
		repo:      repo,
		baseURL:   defaultBaseURL,
		userAgent: "ghrelay",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client pointing at a custom base URL
// (GitHub Enterprise, or a test server).
func NewClientWithBaseURL(token, owner, repo, baseURL string) *Client {
	c := NewClient(token, owner, repo)
	if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
		c.baseURL = trimmed
	}
	return c
}

// ListIssues returns one page of the repository's issues, open and
// closed, in the API's default (most recently created first) order.
func (c *Client) ListIssues(ctx context.Context, page int) ([]Issue, error) {
	if page < 1 {
		page = 1
	}
	path := fmt.Sprintf("%s/issues?state=all&per_page=%d&page=%d", c.repoPath(), IssuesPerPage, page)
	var issues []Issue
	if err := c.do(ctx, http.MethodGet, path, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// CreateIssue opens a new issue.
func (c *Client) CreateIssue(ctx context.Context, title, body string) (*Issue, error) {
	payload := map[string]string{"title": title, "body": body}
	var issue Issue
	if err := c.do(ctx, http.MethodPost, c.repoPath()+"/issues", payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CreateComment appends a comment to an existing issue.
func (c *Client) CreateComment(ctx context.Context, issueNumber int, body string) (*Comment, error) {
	payload := map[string]string{"body": body}
	path := fmt.Sprintf("%s/issues/%d/comments", c.repoPath(), issueNumber)
	var comment Comment
	if err := c.do(ctx, http.MethodPost, path, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetContents fetches the file at path. Absence surfaces as an
// *APIError with status 404 (see IsNotFound).
func (c *Client) GetContents(ctx context.Context, path string) (*FileContent, error) {
	var file FileContent
	if err := c.do(ctx, http.MethodGet, c.contentsPath(path), nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// PutContents creates or updates the file at path.
func (c *Client) PutContents(ctx context.Context, path string, put PutContentsRequest) (*ContentsWritten, error) {
	var written ContentsWritten
	if err := c.do(ctx, http.MethodPut, c.contentsPath(path), put, &written); err != nil {
		return nil, err
	}
	return &written, nil
}

// GetRepo fetches the repository metadata; the check command uses it to
// verify the credential and scope.
func (c *Client) GetRepo(ctx context.Context) (*Repo, error) {
	var repo Repo
	if err := c.do(ctx, http.MethodGet, c.repoPath(), nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

func (c *Client) repoPath() string {
	return fmt.Sprintf("/repos/%s/%s", url.PathEscape(c.owner), url.PathEscape(c.repo))
}

func (c *Client) contentsPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.repoPath() + "/contents/" + strings.Join(segments, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req, body != nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFrom(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}

func apiErrorFrom(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(data) > 0 {
		var parsed struct {
			Message          string `json:"message"`
			DocumentationURL string `json:"documentation_url"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
			apiErr.DocumentationURL = parsed.DocumentationURL
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
