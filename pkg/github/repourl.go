package github

import (
	"fmt"
	"net/url"
	"strings"
)

// RepoInfo is the repository coordinates and API endpoint deduced from a
// repository URL.
type RepoInfo struct {
	Owner  string
	Name   string
	APIURL string
}

// ParseRepoURL deduces owner, repository name and API base URL from a
// repository URL such as "https://github.com/owner/repo".
//
// github.com maps to the public API endpoint; any other host is assumed to
// be a GitHub Enterprise installation serving its API under /api/v3/.
func ParseRepoURL(raw string) (*RepoInfo, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid repository URL %q: expected http(s) scheme", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid repository URL %q: missing host", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository URL %q: expected path /owner/repo", raw)
	}

	info := &RepoInfo{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}

	host := strings.ToLower(u.Hostname())
	if host == "github.com" || host == "www.github.com" {
		info.APIURL = DefaultBaseURL
	} else {
		info.APIURL = fmt.Sprintf("%s://%s/api/v3/", u.Scheme, u.Host)
	}

	if info.Name == "" {
		return nil, fmt.Errorf("invalid repository URL %q: empty repository name", raw)
	}

	return info, nil
}
