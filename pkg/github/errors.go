package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
)

// APIError represents an error response from the GitHub API.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the error message returned by GitHub, if any.
	Message string
	// Errors contains field-level error details for validation failures.
	Errors []ErrorDetail
	// RateLimit carries rate limit information when the response included it.
	RateLimit *RateLimitInfo
}

// ErrorDetail describes a single field-level error in an API response.
type ErrorDetail struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
}

// RateLimitInfo describes the rate limit state attached to an error response.
type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     int64
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error (status %d)", e.StatusCode)
}

// NotFoundError reports that no open pull request matched the requested ref.
type NotFoundError struct {
	Owner string
	Repo  string
	Ref   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no open pull request found for ref %q in %s/%s", e.Ref, e.Owner, e.Repo)
}

// convertError maps go-github error types onto the client's error taxonomy.
// Transport failures stay plain wrapped errors; API responses become
// *APIError so callers can inspect the status code.
func convertError(op string, err error) error {
	if err == nil {
		return nil
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		apiErr := &APIError{
			Message: errResp.Message,
		}
		if errResp.Response != nil {
			apiErr.StatusCode = errResp.Response.StatusCode
		}
		for _, detail := range errResp.Errors {
			apiErr.Errors = append(apiErr.Errors, ErrorDetail{
				Resource: detail.Resource,
				Field:    detail.Field,
				Code:     detail.Code,
			})
		}
		return apiErr
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		apiErr := &APIError{
			Message: rateErr.Message,
			RateLimit: &RateLimitInfo{
				Limit:     rateErr.Rate.Limit,
				Remaining: rateErr.Rate.Remaining,
				Reset:     rateErr.Rate.Reset.Unix(),
			},
		}
		if rateErr.Response != nil {
			apiErr.StatusCode = rateErr.Response.StatusCode
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", op, err)
}

// IsNotFoundError reports whether err is a missing-resource error: either a
// ref that resolved to no open PR, or a 404 from the API.
func IsNotFoundError(err error) bool {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimitError reports whether err indicates rate limiting: a 429, or a
// 403 that carried rate limit information.
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return apiErr.StatusCode == http.StatusForbidden && apiErr.RateLimit != nil
}

// IsAuthenticationError reports whether err indicates a credential problem:
// a 401, or a 403 without rate limit information.
func IsAuthenticationError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		return apiErr.RateLimit == nil
	}
	return false
}
