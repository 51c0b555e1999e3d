package domain

import "time"

// Issue is the subset of an issue-tracker ticket the labeler consumes.
type Issue struct {
	Key        string
	Components []string
	UpdatedAt  time.Time
}

// IssueRef identifies a ticket returned by an updated-since search.
type IssueRef struct {
	Key       string
	UpdatedAt time.Time
}

// PullRequest is the subset of a pull request the labeler consumes.
// Labels and UpdatedAt come from the same listing response; Labels is nil when
// the listing did not carry them.
type PullRequest struct {
	Number    int
	Title     string
	UpdatedAt time.Time
	Labels    []string
}

// RateLimit describes the remaining request budget of a remote API.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}
