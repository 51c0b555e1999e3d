// Package config provides the configuration loader for labelsync.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// TokenEnv is consulted when neither the file nor a flag sets the token.
const TokenEnv = "GITHUB_TOKEN"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path on top of the defaults.
// With an empty path, labelsync.yaml in the working directory is used when present.
func (l *Loader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path == "" {
		if _, err := os.Stat(domain.ConfigFileName); err != nil {
			l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults and flags")
			applyEnv(&cfg)
			return cfg, nil
		}
		path = domain.ConfigFileName
	}

	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return domain.Config{}, err
	}
	apply(&cfg, &file, filepath.Dir(path))
	applyEnv(&cfg)

	l.Logger.Debug(fmt.Sprintf("loaded configuration from %s", path))
	return cfg, nil
}

func apply(cfg *domain.Config, file *File, baseDir string) {
	if file.Repo != "" {
		cfg.Repo = file.Repo
	}
	if file.GitHub.User != "" {
		cfg.GitHubUser = file.GitHub.User
	}
	if file.GitHub.Token != "" {
		cfg.GitHubToken = file.GitHub.Token
	}
	if file.Jira.URL != "" {
		cfg.JiraURL = file.Jira.URL
	}
	if file.Jira.Project != "" {
		cfg.JiraProject = file.Jira.Project
	}
	if file.PollInterval != nil {
		cfg.PollInterval = *file.PollInterval
	}
	if file.InvalidationInterval != nil {
		cfg.InvalidationInterval = *file.InvalidationInterval
	}
	if file.CacheDir != "" {
		cfg.CacheDir = resolvePath(baseDir, file.CacheDir)
	}
	if file.RequestTimeout != nil {
		cfg.RequestTimeout = *file.RequestTimeout
	}
}

func applyEnv(cfg *domain.Config) {
	if cfg.GitHubToken != "" {
		return
	}
	if token, ok := os.LookupEnv(TokenEnv); ok {
		cfg.GitHubToken = token
	}
}

// resolvePath makes relative paths relative to the configuration file.
func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is supplied by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.With(errors.Join(domain.ErrConfigParseFailed, parseErr), "path", configPath)
	}

	return nil
}
