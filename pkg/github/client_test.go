package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gopkg.in/dnaeon/go-vcr.v2/recorder"
)

// newReplayClient builds a Client whose HTTP traffic is served from a
// recorded cassette under testdata/fixtures.
func newReplayClient(t *testing.T, cassette string) *Client {
	t.Helper()

	r, err := recorder.New("testdata/fixtures/" + cassette)
	if err != nil {
		t.Fatalf("failed to open cassette %s: %v", cassette, err)
	}
	t.Cleanup(func() {
		if err := r.Stop(); err != nil {
			t.Errorf("failed to stop recorder: %v", err)
		}
	})

	client, err := NewClient("", "test-token", WithHTTPClient(&http.Client{Transport: r}))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestResolvePRForRef(t *testing.T) {
	client := newReplayClient(t, "pull_requests")

	// Two open PRs share the head ref; the listing is ordered by most
	// recently updated, so the first match wins.
	number, err := client.ResolvePRForRef(context.Background(), "acme", "widgets", "feature/foo")
	if err != nil {
		t.Fatalf("ResolvePRForRef returned error: %v", err)
	}
	if number != 42 {
		t.Errorf("expected PR 42, got %d", number)
	}
}

func TestResolvePRForRef_NotFound(t *testing.T) {
	client := newReplayClient(t, "pull_requests")

	_, err := client.ResolvePRForRef(context.Background(), "acme", "widgets", "feature/missing")
	if err == nil {
		t.Fatal("expected error for unknown ref")
	}
	if !IsNotFoundError(err) {
		t.Errorf("expected not-found error, got %T: %v", err, err)
	}

	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nfe.Ref != "feature/missing" || nfe.Owner != "acme" || nfe.Repo != "widgets" {
		t.Errorf("unexpected error fields: %+v", nfe)
	}
}

func TestListComments(t *testing.T) {
	client := newReplayClient(t, "list_comments")

	comments, err := client.ListComments(context.Background(), "acme", "widgets", 42)
	if err != nil {
		t.Fatalf("ListComments returned error: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	// Listing order is preserved.
	wantIDs := []int64{101, 102, 103}
	for i, want := range wantIDs {
		if comments[i].ID != want {
			t.Errorf("comment %d: expected id %d, got %d", i, want, comments[i].ID)
		}
	}
	if comments[1].Body != "Build OK\n\n<!-- commentator : \"build-7\" -->" {
		t.Errorf("unexpected body for comment 102: %q", comments[1].Body)
	}
}

func TestListComments_NotFound(t *testing.T) {
	client := newReplayClient(t, "list_comments_missing")

	_, err := client.ListComments(context.Background(), "acme", "widgets", 999)
	if err == nil {
		t.Fatal("expected error for missing issue")
	}
	if !IsNotFoundError(err) {
		t.Errorf("expected not-found error, got: %v", err)
	}
}

func TestCreateComment(t *testing.T) {
	client := newReplayClient(t, "create_comment")

	id, err := client.CreateComment(context.Background(), "acme", "widgets", 42, "Build OK\n\n<!-- commentator : null -->")
	if err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}
	if id != 9001 {
		t.Errorf("expected comment id 9001, got %d", id)
	}
}

func TestCreateComment_UnexpectedStatus(t *testing.T) {
	client := newReplayClient(t, "create_comment_accepted")

	// Anything other than 201 is a failure, even a 2xx.
	_, err := client.CreateComment(context.Background(), "acme", "widgets", 42, "queued body")
	if err == nil {
		t.Fatal("expected error for non-201 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusAccepted {
		t.Errorf("expected status 202, got %d", apiErr.StatusCode)
	}
}

func TestEditComment(t *testing.T) {
	client := newReplayClient(t, "edit_comment")

	if err := client.EditComment(context.Background(), "acme", "widgets", 777, "Updated build status"); err != nil {
		t.Fatalf("EditComment returned error: %v", err)
	}
}
