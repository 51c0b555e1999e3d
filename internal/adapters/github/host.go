// Package github implements ports.PullRequestHost on top of the GitHub REST API.
package github

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"net/url"
	"sync"
	"time"

	gh "github.com/google/go-github/v67/github"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// pageSize is the number of items requested per page.
const pageSize = 100

// Host implements ports.PullRequestHost for a single repository.
type Host struct {
	client *gh.Client
	reads  *gh.Client
	owner  string
	repo   string

	mu    sync.Mutex
	known map[string]struct{}
}

var _ ports.PullRequestHost = (*Host)(nil)

// NewClient returns a GitHub client authenticating with token whose requests
// are bounded by timeout.
func NewClient(token string, timeout time.Duration) *gh.Client {
	return gh.NewClient(&http.Client{Timeout: timeout}).WithAuthToken(token)
}

// NewCachedClient is NewClient with GET responses kept in dir and revalidated
// with conditional requests, which GitHub does not count against the rate limit.
func NewCachedClient(token string, timeout time.Duration, dir string) *gh.Client {
	transport := httpcache.NewTransport(diskcache.New(dir))
	return gh.NewClient(&http.Client{Transport: transport, Timeout: timeout}).WithAuthToken(token)
}

// New creates a Host for owner/repo.
func New(client *gh.Client, owner, repo string) *Host {
	return &Host{
		client: client,
		reads:  client,
		owner:  owner,
		repo:   repo,
		known:  make(map[string]struct{}),
	}
}

// WithResponseCache routes pull request and label listings through cached.
// Credential checks, rate limit reads and label writes keep using the plain client.
func (h *Host) WithResponseCache(cached *gh.Client) *Host {
	h.reads = cached
	return h
}

// ValidateCredentials fetches the authenticated user and returns its login.
func (h *Host) ValidateCredentials(ctx context.Context) (string, error) {
	user, _, err := h.client.Users.Get(ctx, "")
	if err != nil {
		if isStatus(err, http.StatusUnauthorized) {
			return "", zerr.With(errors.Join(domain.ErrAuthFailed, err), "repo", h.owner+"/"+h.repo)
		}
		return "", zerr.Wrap(err, "failed to validate github credentials")
	}
	if user.GetLogin() == "" {
		return "", zerr.Wrap(domain.ErrAuthFailed, "github did not report an authenticated user")
	}
	return user.GetLogin(), nil
}

// RateLimit returns the core API budget.
func (h *Host) RateLimit(ctx context.Context) (domain.RateLimit, error) {
	limits, _, err := h.client.RateLimit.Get(ctx)
	if err != nil {
		return domain.RateLimit{}, zerr.Wrap(classify(err), "failed to read rate limit")
	}
	core := limits.GetCore()
	if core == nil {
		return domain.RateLimit{}, nil
	}
	return domain.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}

// ListPullRequests pages lazily through pull requests in all states, newest first.
func (h *Host) ListPullRequests(ctx context.Context) iter.Seq2[domain.PullRequest, error] {
	return func(yield func(domain.PullRequest, error) bool) {
		opts := &gh.PullRequestListOptions{
			State:       "all",
			Sort:        "created",
			Direction:   "desc",
			ListOptions: gh.ListOptions{PerPage: pageSize},
		}
		for {
			prs, resp, err := h.reads.PullRequests.List(ctx, h.owner, h.repo, opts)
			if err != nil {
				err = zerr.With(errors.Join(domain.ErrListPullRequestsFailed, classify(err)), "page", opts.Page)
				yield(domain.PullRequest{}, err)
				return
			}
			for _, pr := range prs {
				if !yield(toPullRequest(pr), nil) {
					return
				}
			}
			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// Labels returns the current label names of a pull request.
func (h *Host) Labels(ctx context.Context, number int) ([]string, error) {
	opts := &gh.ListOptions{PerPage: pageSize}
	names := []string{}
	for {
		labels, resp, err := h.reads.Issues.ListLabelsByIssue(ctx, h.owner, h.repo, number, opts)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(classify(err), "failed to list labels"), "pr", number)
		}
		for _, l := range labels {
			names = append(names, l.GetName())
		}
		if resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

// AddLabels attaches labels to a pull request.
func (h *Host) AddLabels(ctx context.Context, number int, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if _, _, err := h.client.Issues.AddLabelsToIssue(ctx, h.owner, h.repo, number, names); err != nil {
		return zerr.With(errors.Join(domain.ErrLabelWriteFailed, classify(err)), "pr", number)
	}
	return nil
}

// RemoveLabels detaches labels from a pull request. Labels already absent are ignored.
func (h *Host) RemoveLabels(ctx context.Context, number int, names []string) error {
	for _, name := range names {
		_, err := h.client.Issues.RemoveLabelForIssue(ctx, h.owner, h.repo, number, url.PathEscape(name))
		if err != nil && !isStatus(err, http.StatusNotFound) {
			err = zerr.With(errors.Join(domain.ErrLabelWriteFailed, classify(err)), "pr", number)
			return zerr.With(err, "label", name)
		}
	}
	return nil
}

// GetOrCreateLabel returns the repository label called name, creating it with
// domain.LabelColor when it does not exist. Resolved names are remembered for
// the lifetime of the Host.
func (h *Host) GetOrCreateLabel(ctx context.Context, name string) (string, error) {
	if h.isKnown(name) {
		return name, nil
	}

	label, _, err := h.client.Issues.GetLabel(ctx, h.owner, h.repo, url.PathEscape(name))
	if err != nil {
		if !isStatus(err, http.StatusNotFound) {
			return "", zerr.With(errors.Join(domain.ErrLabelResolveFailed, classify(err)), "label", name)
		}
		label, _, err = h.client.Issues.CreateLabel(ctx, h.owner, h.repo, &gh.Label{
			Name:  gh.String(name),
			Color: gh.String(domain.LabelColor),
		})
		if err != nil {
			return "", zerr.With(errors.Join(domain.ErrLabelResolveFailed, classify(err)), "label", name)
		}
	}

	resolved := label.GetName()
	if resolved == "" {
		resolved = name
	}
	h.remember(resolved)
	return resolved, nil
}

func (h *Host) isKnown(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.known[name]
	return ok
}

func (h *Host) remember(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.known[name] = struct{}{}
}

func toPullRequest(pr *gh.PullRequest) domain.PullRequest {
	out := domain.PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		UpdatedAt: pr.GetUpdatedAt().Time,
		Labels:    make([]string, 0, len(pr.Labels)),
	}
	for _, l := range pr.Labels {
		out.Labels = append(out.Labels, l.GetName())
	}
	return out
}

func isStatus(err error, status int) bool {
	var ghErr *gh.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == status
}

// classify marks rejected credentials as domain.ErrAuthFailed.
func classify(err error) error {
	if isStatus(err, http.StatusUnauthorized) {
		return errors.Join(domain.ErrAuthFailed, err)
	}
	return err
}
