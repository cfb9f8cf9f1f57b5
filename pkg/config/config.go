// Package config assembles the settings for a publish run from an optional
// YAML file, environment variables and flag overrides, in that order of
// precedence (later sources win).
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/commentator-run/commentator/pkg/github"
	"github.com/commentator-run/commentator/pkg/metadata"
	"github.com/commentator-run/commentator/pkg/publisher"
)

// Config holds everything a publish run needs to know. Zero values mean
// "not set"; Validate decides what is actually required.
type Config struct {
	// Token authenticates against the GitHub API.
	Token string `yaml:"token" env:"GITHUB_TOKEN"`
	// APIURL is the API base URL, empty for github.com.
	APIURL string `yaml:"api_url" env:"COMMENTATOR_API_URL"`
	// RepoURL, when set, is parsed to fill Owner, Repo and APIURL.
	RepoURL string `yaml:"repo_url" env:"COMMENTATOR_REPO_URL"`
	// Owner is the repository owner or organization.
	Owner string `yaml:"owner" env:"COMMENTATOR_OWNER"`
	// Repo is the repository name.
	Repo string `yaml:"repo" env:"COMMENTATOR_REPO"`
	// Ref is the head branch whose open PR receives the comment.
	Ref string `yaml:"ref" env:"COMMENTATOR_REF"`
	// Overwrite is the overwrite mode: never, always or using-identifier.
	Overwrite string `yaml:"overwrite" env:"COMMENTATOR_OVERWRITE"`
	// OverwriteID is the identifier for the using-identifier mode. Setting
	// it without an explicit mode implies using-identifier.
	OverwriteID string `yaml:"overwrite_id" env:"COMMENTATOR_OVERWRITE_ID"`
	// LogLevel is the minimum level for diagnostic output.
	LogLevel string `yaml:"log_level" env:"COMMENTATOR_LOG_LEVEL"`
}

// Load reads the optional YAML file at path and overlays environment
// variables on top. An empty path skips the file; a missing file at an
// explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// Resolve fills Owner, Repo and APIURL from RepoURL where they are not
// already set explicitly.
func (c *Config) Resolve() error {
	if c.RepoURL == "" {
		return nil
	}
	info, err := github.ParseRepoURL(c.RepoURL)
	if err != nil {
		return err
	}
	if c.Owner == "" {
		c.Owner = info.Owner
	}
	if c.Repo == "" {
		c.Repo = info.Name
	}
	if c.APIURL == "" {
		c.APIURL = info.APIURL
	}
	return nil
}

// Policy builds the overwrite policy the configuration describes. With no
// explicit mode the default is always, unless an identifier is set, which
// implies using-identifier.
func (c *Config) Policy() (publisher.OverwritePolicy, error) {
	if c.Overwrite == "" {
		if c.OverwriteID != "" {
			return publisher.OverwriteWithIdentifier(c.OverwriteID), nil
		}
		return publisher.AlwaysOverwrite(), nil
	}

	mode, err := publisher.ParseOverwriteMode(c.Overwrite)
	if err != nil {
		return publisher.OverwritePolicy{}, err
	}
	policy := publisher.OverwritePolicy{Mode: mode}
	if c.OverwriteID != "" {
		id := c.OverwriteID
		policy.Identifier = &id
	}
	return policy, nil
}

// Validate checks that the configuration is complete enough to run.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("repository owner is required (set --org, --repo-url or COMMENTATOR_OWNER)")
	}
	if c.Repo == "" {
		return fmt.Errorf("repository name is required (set --repo, --repo-url or COMMENTATOR_REPO)")
	}
	if c.Ref == "" {
		return fmt.Errorf("branch ref is required (set --ref or COMMENTATOR_REF)")
	}
	if c.Token == "" {
		return fmt.Errorf("GitHub token is required (set --token or GITHUB_TOKEN)")
	}
	if c.Overwrite != "" {
		if _, err := publisher.ParseOverwriteMode(c.Overwrite); err != nil {
			return err
		}
	}
	if c.OverwriteID != "" && !metadata.ValidIdentifier(c.OverwriteID) {
		return fmt.Errorf("invalid overwrite identifier %q: must not contain a marker terminator", c.OverwriteID)
	}
	return nil
}
