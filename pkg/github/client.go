// Package github is the sole mediator between commentator and the GitHub
// REST API. It wraps go-github with the four operations a run needs:
// resolving a PR number from a branch ref, listing the comments on a PR,
// and creating or editing a comment.
package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/commentator-run/commentator/pkg/log"
)

// DefaultBaseURL is the API base URL for github.com.
const DefaultBaseURL = "https://api.github.com/"

// IssueComment is one existing comment on a PR conversation thread.
type IssueComment struct {
	ID   int64
	Body string
}

// Client issues authenticated requests against a GitHub API endpoint.
type Client struct {
	gh      *github.Client
	baseURL string
	token   string
}

type clientOptions struct {
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

// WithHTTPClient sets the HTTP client used beneath the authenticating
// transport. Tests use this to splice in a replaying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// NewClient creates a client for the given API base URL and bearer token.
// An empty baseURL targets github.com; any other URL is treated as a GitHub
// Enterprise endpoint.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}

	ctx := context.Background()
	if options.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, options.httpClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)

	gh := github.NewClient(httpClient)
	if baseURL != DefaultBaseURL {
		var err error
		gh, err = gh.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
		}
	}

	return &Client{gh: gh, baseURL: baseURL, token: token}, nil
}

// BaseURL returns the API base URL this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// String renders the client for debug output with the token masked.
func (c *Client) String() string {
	return fmt.Sprintf("github.Client{base_url: %q, token: %q}", c.baseURL, maskToken(c.token))
}

// maskToken hides all but the first and last two characters of a token.
// Short tokens are masked entirely.
func maskToken(token string) string {
	const mask = "************"
	if len(token) > 8 {
		return token[:2] + mask + token[len(token)-2:]
	}
	return mask
}

// ResolvePRForRef returns the number of the open pull request whose head
// branch equals ref. The listing is requested sorted by most recent update,
// descending, so when several open PRs share a head ref the most recently
// updated one wins.
func (c *Client) ResolvePRForRef(ctx context.Context, owner, repo, ref string) (int, error) {
	opts := &github.PullRequestListOptions{
		State:     "open",
		Sort:      "updated",
		Direction: "desc",
	}

	log.Debugf("listing open PRs for %s/%s to resolve ref %q", owner, repo, ref)
	prs, _, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return 0, convertError("list pull requests", err)
	}

	for _, pr := range prs {
		if pr.GetHead().GetRef() == ref {
			return pr.GetNumber(), nil
		}
	}

	return 0, &NotFoundError{Owner: owner, Repo: repo, Ref: ref}
}

// ListComments returns the comments on a PR conversation thread in the
// order the API returns them (creation order).
func (c *Client) ListComments(ctx context.Context, owner, repo string, number int) ([]IssueComment, error) {
	log.Debugf("listing comments on %s/%s#%d", owner, repo, number)
	comments, _, err := c.gh.Issues.ListComments(ctx, owner, repo, number, nil)
	if err != nil {
		return nil, convertError("list comments", err)
	}

	out := make([]IssueComment, 0, len(comments))
	for _, comment := range comments {
		out = append(out, IssueComment{
			ID:   comment.GetID(),
			Body: comment.GetBody(),
		})
	}
	return out, nil
}

// CreateComment posts a new comment on a PR conversation thread and returns
// the new comment's id. Any status other than 201 is an error.
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) (int64, error) {
	log.Debugf("creating comment on %s/%s#%d", owner, repo, number)
	comment, resp, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	if err != nil {
		return 0, convertError("create comment", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return 0, &APIError{StatusCode: resp.StatusCode, Message: "unexpected status creating comment"}
	}
	return comment.GetID(), nil
}

// EditComment replaces the body of an existing comment in place. Any status
// other than 200 is an error.
func (c *Client) EditComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	log.Debugf("editing comment %d on %s/%s", commentID, owner, repo)
	_, resp, err := c.gh.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{Body: &body})
	if err != nil {
		return convertError("edit comment", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "unexpected status editing comment"}
	}
	return nil
}
