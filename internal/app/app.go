// Package app implements the application layer for labelsync.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/labelsync/internal/adapters/cas"                  //nolint:depguard // Wired in app layer
	githubadapter "go.trai.ch/labelsync/internal/adapters/github" //nolint:depguard // Wired in app layer
	jiraadapter "go.trai.ch/labelsync/internal/adapters/jira"     //nolint:depguard // Wired in app layer
	"go.trai.ch/labelsync/internal/adapters/logger"               //nolint:depguard // Wired in app layer
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/labelsync/internal/engine/components"
	"go.trai.ch/labelsync/internal/engine/invalidator"
	"go.trai.ch/labelsync/internal/engine/retry"
	"go.trai.ch/labelsync/internal/engine/scheduler"
	"go.trai.ch/labelsync/internal/engine/updater"
	"go.trai.ch/zerr"
)

// HostFactory creates the pull request host for a configuration.
type HostFactory func(cfg domain.Config) (ports.PullRequestHost, error)

// TrackerFactory creates the issue tracker for a configuration.
type TrackerFactory func(cfg domain.Config) (ports.IssueTracker, error)

// App represents the main application logic.
type App struct {
	configLoader   ports.ConfigLoader
	logger         ports.Logger
	tracer         ports.Tracer
	clock          clockwork.Clock
	hostFactory    HostFactory
	trackerFactory TrackerFactory
	retryOptions   []retry.Option
}

// New creates a new App instance talking to GitHub and Jira.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer, clock clockwork.Clock) *App {
	return &App{
		configLoader:   loader,
		logger:         log,
		tracer:         tracer,
		clock:          clock,
		hostFactory:    newGitHubHost,
		trackerFactory: newJiraTracker,
	}
}

// WithHostFactory replaces the pull request host factory.
func (a *App) WithHostFactory(f HostFactory) *App {
	a.hostFactory = f
	return a
}

// WithTrackerFactory replaces the issue tracker factory.
func (a *App) WithTrackerFactory(f TrackerFactory) *App {
	a.trackerFactory = f
	return a
}

// WithRetryOptions tunes the ticket fetch retries.
func (a *App) WithRetryOptions(opts ...retry.Option) *App {
	a.retryOptions = append(a.retryOptions, opts...)
	return a
}

func newGitHubHost(cfg domain.Config) (ports.PullRequestHost, error) {
	client := githubadapter.NewClient(cfg.GitHubToken, cfg.RequestTimeout)
	cached := githubadapter.NewCachedClient(cfg.GitHubToken, cfg.RequestTimeout, domain.PullCachePath(cfg.CacheDir))
	return githubadapter.New(client, cfg.Owner(), cfg.RepoName()).WithResponseCache(cached), nil
}

func newJiraTracker(cfg domain.Config) (ports.IssueTracker, error) {
	return jiraadapter.New(cfg.JiraURL, cfg.JiraProject, &http.Client{Timeout: cfg.RequestTimeout})
}

// ConfigOptions locates the configuration file and carries command-line overrides.
// Empty strings and nil pointers leave the loaded value untouched.
type ConfigOptions struct {
	Path                 string
	Repo                 string
	CacheDir             string
	JiraURL              string
	JiraProject          string
	GitHubUser           string
	PollInterval         *time.Duration
	InvalidationInterval *time.Duration
	RequestTimeout       *time.Duration
}

func (o ConfigOptions) apply(cfg *domain.Config) {
	overrides := []struct {
		dst *string
		src string
	}{
		{&cfg.Repo, o.Repo},
		{&cfg.CacheDir, o.CacheDir},
		{&cfg.JiraURL, o.JiraURL},
		{&cfg.JiraProject, o.JiraProject},
		{&cfg.GitHubUser, o.GitHubUser},
	}
	for _, ov := range overrides {
		if ov.src != "" {
			*ov.dst = ov.src
		}
	}
	if o.PollInterval != nil {
		cfg.PollInterval = *o.PollInterval
	}
	if o.InvalidationInterval != nil {
		cfg.InvalidationInterval = *o.InvalidationInterval
	}
	if o.RequestTimeout != nil {
		cfg.RequestTimeout = *o.RequestTimeout
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Config ConfigOptions
	// Once runs a single pass instead of looping until the context ends.
	Once bool
}

// CleanOptions configuration for the Clean method.
// Labels also drops the cached GitHub responses. With neither flag set, every
// cache and the invalidation marker are removed.
type CleanOptions struct {
	Config     ConfigOptions
	Labels     bool
	Components bool
}

// LogOptions configures the logger from command-line flags.
type LogOptions struct {
	JSON    bool
	Verbose bool
	File    string
}

type configurableLogger interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
	SetFile(opts logger.FileOptions)
}

// ConfigureLogging applies LogOptions when the logger supports them.
func (a *App) ConfigureLogging(opts LogOptions) {
	cl, ok := a.logger.(configurableLogger)
	if !ok {
		return
	}
	cl.SetJSON(opts.JSON)
	cl.SetVerbose(opts.Verbose)
	if opts.File != "" {
		cl.SetFile(logger.FileOptions{Path: opts.File, MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 30})
	}
}

// Close releases resources held by the logger.
func (a *App) Close() error {
	if c, ok := a.logger.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Run validates credentials, then reconciles labels until ctx ends.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.loadConfig(opts.Config)
	if err != nil {
		return err
	}

	host, err := a.hostFactory(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to create pull request host")
	}
	login, err := host.ValidateCredentials(ctx)
	if err != nil {
		return err
	}
	if cfg.GitHubUser != "" && !strings.EqualFold(login, cfg.GitHubUser) {
		a.logger.Warn(fmt.Sprintf("github token belongs to %q, expected %q", login, cfg.GitHubUser))
	}

	tracker, err := a.trackerFactory(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to create issue tracker")
	}

	e, err := a.buildEngine(cfg, host, tracker)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("labeling pull requests of %s from %s tickets at %s",
		cfg.Repo, cfg.JiraProject, cfg.JiraURL))

	if opts.Once {
		return e.scheduler.RunOnce(ctx)
	}
	return e.scheduler.Run(ctx)
}

// Invalidate runs a single invalidation pass.
func (a *App) Invalidate(ctx context.Context, opts ConfigOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	tracker, err := a.trackerFactory(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to create issue tracker")
	}

	store, err := cas.NewStore(domain.ComponentCachePath(cfg.CacheDir), a.logger)
	if err != nil {
		return err
	}

	inv := invalidator.New(invalidator.NewMarker(domain.MarkerPath(cfg.CacheDir)), tracker, store, a.clock, a.logger)
	return inv.Run(ctx)
}

// Clean removes persisted caches.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.configLoader.Load(opts.Config.Path)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	opts.Config.apply(&cfg)
	if cfg.CacheDir == "" {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "cache directory is required"), "field", "cache_dir")
	}

	all := !opts.Labels && !opts.Components
	var targets []string
	if all || opts.Labels {
		targets = append(targets, domain.LabelCachePath(cfg.CacheDir), domain.PullCachePath(cfg.CacheDir))
	}
	if all || opts.Components {
		targets = append(targets, domain.ComponentCachePath(cfg.CacheDir), domain.MarkerPath(cfg.CacheDir))
	}

	var errs []error
	for _, path := range targets {
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, zerr.With(errors.Join(domain.ErrCleanFailed, err), "path", path))
			continue
		}
		a.logger.Info("removed " + path)
	}
	return errors.Join(errs...)
}

func (a *App) loadConfig(opts ConfigOptions) (domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.Path)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

type engine struct {
	scheduler *scheduler.Scheduler
}

func (a *App) buildEngine(cfg domain.Config, host ports.PullRequestHost, tracker ports.IssueTracker) (*engine, error) {
	componentStore, err := cas.NewStore(domain.ComponentCachePath(cfg.CacheDir), a.logger)
	if err != nil {
		return nil, err
	}
	labelStore, err := cas.NewLabelStore(domain.LabelCachePath(cfg.CacheDir), a.logger)
	if err != nil {
		return nil, err
	}

	fetcher := retry.New(a.clock, a.logger, a.retryOptions...)
	lookup := components.New(componentStore, tracker, fetcher, a.logger)
	marker := invalidator.NewMarker(domain.MarkerPath(cfg.CacheDir))
	inv := invalidator.New(marker, tracker, componentStore, a.clock, a.logger)
	upd := updater.New(host, lookup, labelStore, domain.NewTicketExtractor(cfg.JiraProject), a.tracer, a.logger)

	return &engine{
		scheduler: scheduler.NewScheduler(upd, inv, a.clock, a.logger, cfg.PollInterval, cfg.InvalidationInterval),
	}, nil
}
