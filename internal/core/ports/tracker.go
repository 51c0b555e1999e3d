package ports

import (
	"context"
	"time"

	"go.trai.ch/labelsync/internal/core/domain"
)

// IssueTracker reads tickets from the issue tracker.
//
//go:generate mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks
type IssueTracker interface {
	// GetIssue fetches a single ticket by key.
	GetIssue(ctx context.Context, key string) (*domain.Issue, error)

	// SearchUpdatedSince returns every ticket of the configured project updated at or
	// after since, most recently updated first.
	SearchUpdatedSince(ctx context.Context, since time.Time) ([]domain.IssueRef, error)
}

// ComponentSource resolves the raw component names of a ticket.
type ComponentSource interface {
	// Components returns the component names of the ticket identified by key.
	Components(ctx context.Context, key string) ([]string, error)
}
