package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultPollInterval is the pause between two reconciliation passes.
	DefaultPollInterval = 300 * time.Second

	// DefaultInvalidationInterval is the pause between two invalidation passes.
	DefaultInvalidationInterval = 300 * time.Second

	// DefaultRequestTimeout bounds a single request to a remote API.
	DefaultRequestTimeout = 30 * time.Second
)

// Config is the effective configuration of a labeler instance.
type Config struct {
	// Repo is the observed repository in owner/name form.
	Repo string
	// GitHubUser is the account expected behind GitHubToken. Empty skips the check.
	GitHubUser string
	// GitHubToken authenticates against the pull request host.
	GitHubToken string
	// JiraURL is the base URL of the issue tracker.
	JiraURL string
	// JiraProject is the project key tickets are matched against.
	JiraProject string
	// PollInterval is the pause between reconciliation passes.
	PollInterval time.Duration
	// InvalidationInterval is the pause between invalidation passes. Zero disables invalidation.
	InvalidationInterval time.Duration
	// CacheDir is the root directory of all persisted caches.
	CacheDir string
	// RequestTimeout bounds every request to GitHub and Jira.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		JiraProject:          DefaultProjectKey,
		PollInterval:         DefaultPollInterval,
		InvalidationInterval: DefaultInvalidationInterval,
		RequestTimeout:       DefaultRequestTimeout,
	}
}

// Owner returns the owner part of Repo.
func (c Config) Owner() string {
	owner, _, _ := strings.Cut(c.Repo, "/")
	return owner
}

// RepoName returns the repository name part of Repo.
func (c Config) RepoName() string {
	_, name, _ := strings.Cut(c.Repo, "/")
	return name
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	owner, name, ok := strings.Cut(c.Repo, "/")
	switch {
	case c.Repo == "":
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "repository is required"), "field", "repo")
	case !ok || owner == "" || name == "" || strings.Contains(name, "/"):
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "repository must be owner/name"), "repo", c.Repo)
	case c.GitHubToken == "":
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "github token is required"), "field", "github.token")
	case c.JiraURL == "":
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "jira url is required"), "field", "jira.url")
	case c.JiraProject == "":
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "jira project is required"), "field", "jira.project")
	case c.CacheDir == "":
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "cache directory is required"), "field", "cache_dir")
	case c.PollInterval <= 0:
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "poll interval must be positive"), "poll_interval", c.PollInterval)
	case c.InvalidationInterval < 0:
		return zerr.With(
			zerr.Wrap(ErrInvalidConfig, "invalidation interval must not be negative"),
			"invalidation_interval", c.InvalidationInterval,
		)
	case c.RequestTimeout <= 0:
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "request timeout must be positive"), "request_timeout", c.RequestTimeout)
	}
	return nil
}
