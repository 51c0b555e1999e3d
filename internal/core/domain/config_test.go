package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/labelsync/internal/core/domain"
)

func validConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Repo = "apache/flink"
	cfg.GitHubToken = "token"
	cfg.JiraURL = "https://issues.apache.org/jira"
	cfg.CacheDir = "/tmp/labelsync"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "missing repo", mutate: func(c *domain.Config) { c.Repo = "" }, wantErr: true},
		{name: "repo without owner", mutate: func(c *domain.Config) { c.Repo = "/flink" }, wantErr: true},
		{name: "repo without slash", mutate: func(c *domain.Config) { c.Repo = "flink" }, wantErr: true},
		{name: "repo with extra path", mutate: func(c *domain.Config) { c.Repo = "a/b/c" }, wantErr: true},
		{name: "missing token", mutate: func(c *domain.Config) { c.GitHubToken = "" }, wantErr: true},
		{name: "missing jira url", mutate: func(c *domain.Config) { c.JiraURL = "" }, wantErr: true},
		{name: "missing project", mutate: func(c *domain.Config) { c.JiraProject = "" }, wantErr: true},
		{name: "missing cache dir", mutate: func(c *domain.Config) { c.CacheDir = "" }, wantErr: true},
		{name: "zero poll interval", mutate: func(c *domain.Config) { c.PollInterval = 0 }, wantErr: true},
		{
			name:    "negative invalidation interval",
			mutate:  func(c *domain.Config) { c.InvalidationInterval = -time.Second },
			wantErr: true,
		},
		{name: "invalidation disabled", mutate: func(c *domain.Config) { c.InvalidationInterval = 0 }},
		{name: "zero request timeout", mutate: func(c *domain.Config) { c.RequestTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestConfig_OwnerAndName(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "apache", cfg.Owner())
	assert.Equal(t, "flink", cfg.RepoName())
}

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "FLINK", cfg.JiraProject)
	assert.Equal(t, 300*time.Second, cfg.PollInterval)
	assert.Equal(t, 300*time.Second, cfg.InvalidationInterval)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
