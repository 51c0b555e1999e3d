package config

import "time"

// File represents the structure of the labelsync.yaml configuration file.
type File struct {
	Repo                 string         `yaml:"repo"`
	GitHub               GitHubSection  `yaml:"github"`
	Jira                 JiraSection    `yaml:"jira"`
	PollInterval         *time.Duration `yaml:"poll_interval"`
	InvalidationInterval *time.Duration `yaml:"invalidation_interval"`
	CacheDir             string         `yaml:"cache_dir"`
	RequestTimeout       *time.Duration `yaml:"request_timeout"`
}

// GitHubSection holds the pull request host settings.
type GitHubSection struct {
	User  string `yaml:"user"`
	Token string `yaml:"token"`
}

// JiraSection holds the issue tracker settings.
type JiraSection struct {
	URL     string `yaml:"url"`
	Project string `yaml:"project"`
}
