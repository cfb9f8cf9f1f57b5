// Package publisher posts a status comment on the pull request belonging to
// a branch, either as a brand new comment or by editing a comment a previous
// run left behind. Which of the two happens is decided by an overwrite
// policy evaluated against the metadata markers embedded in the existing
// comments.
package publisher

import (
	"context"
	"fmt"

	"github.com/commentator-run/commentator/pkg/github"
	"github.com/commentator-run/commentator/pkg/log"
	"github.com/commentator-run/commentator/pkg/metadata"
)

// API is the slice of the GitHub client a publish run needs. *github.Client
// satisfies it; tests substitute a fake.
type API interface {
	ResolvePRForRef(ctx context.Context, owner, repo, ref string) (int, error)
	ListComments(ctx context.Context, owner, repo string, number int) ([]github.IssueComment, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (int64, error)
	EditComment(ctx context.Context, owner, repo string, commentID int64, body string) error
}

// Request describes one publish run.
type Request struct {
	Owner  string
	Repo   string
	Ref    string
	Source Source
	Policy OverwritePolicy
}

// Result reports what a publish run did.
type Result struct {
	// PRNumber is the pull request the comment landed on.
	PRNumber int
	// CommentID is the comment that was created or edited.
	CommentID int64
	// Updated is true when an existing comment was edited in place.
	Updated bool
}

// Publisher runs publish requests against a GitHub API client.
type Publisher struct {
	api API
}

// New creates a Publisher backed by the given API client.
func New(api API) *Publisher {
	return &Publisher{api: api}
}

// Publish retrieves the comment body, finds the open PR for the branch and
// creates or edits the status comment according to the request's policy.
//
// The source is read before any API call so a bad file path fails fast,
// and the marker is stamped with the policy's identifier so later runs can
// find the comment again.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	body, err := req.Source.Retrieve()
	if err != nil {
		return nil, err
	}

	prNumber, err := p.api.ResolvePRForRef(ctx, req.Owner, req.Repo, req.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve PR for ref %q: %w", req.Ref, err)
	}
	log.Infof("resolved ref %q to PR %s/%s#%d", req.Ref, req.Owner, req.Repo, prNumber)

	// The never policy creates unconditionally, so the listing round-trip
	// is skipped altogether.
	var (
		targetID int64
		ok       bool
	)
	if req.Policy.Mode != OverwriteNever {
		comments, err := p.api.ListComments(ctx, req.Owner, req.Repo, prNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments on PR #%d: %w", prNumber, err)
		}
		targetID, ok = SelectTarget(comments, req.Policy)
	}

	marked := metadata.Encode(body, req.Policy.Identifier)

	if ok {
		if err := p.api.EditComment(ctx, req.Owner, req.Repo, targetID, marked); err != nil {
			return nil, fmt.Errorf("failed to edit comment %d: %w", targetID, err)
		}
		log.Infof("updated comment %d on PR #%d", targetID, prNumber)
		return &Result{PRNumber: prNumber, CommentID: targetID, Updated: true}, nil
	}

	commentID, err := p.api.CreateComment(ctx, req.Owner, req.Repo, prNumber, marked)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on PR #%d: %w", prNumber, err)
	}
	log.Infof("created comment %d on PR #%d", commentID, prNumber)
	return &Result{PRNumber: prNumber, CommentID: commentID, Updated: false}, nil
}
