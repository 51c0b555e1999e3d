package ports

import (
	"context"
	"iter"

	"go.trai.ch/labelsync/internal/core/domain"
)

// PullRequestHost reads and labels the pull requests of one repository.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type PullRequestHost interface {
	// ValidateCredentials checks the configured credentials and returns the
	// login they belong to. Rejected credentials are reported as domain.ErrAuthFailed.
	ValidateCredentials(ctx context.Context) (string, error)

	// RateLimit returns the current request budget.
	RateLimit(ctx context.Context) (domain.RateLimit, error)

	// ListPullRequests lazily enumerates pull requests in all states, newest first.
	// Iteration stops after the first error.
	ListPullRequests(ctx context.Context) iter.Seq2[domain.PullRequest, error]

	// Labels returns the current label names of a pull request.
	Labels(ctx context.Context, number int) ([]string, error)

	// AddLabels attaches labels to a pull request.
	AddLabels(ctx context.Context, number int, names []string) error

	// RemoveLabels detaches labels from a pull request.
	RemoveLabels(ctx context.Context, number int, names []string) error

	// GetOrCreateLabel returns the repository label called name, creating it with
	// domain.LabelColor when it does not exist yet.
	GetOrCreateLabel(ctx context.Context, name string) (string, error)
}
