// Package jira implements ports.IssueTracker on top of the Jira REST API.
package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// searchPageSize is the number of tickets requested per search page.
	searchPageSize = 100

	// jqlTimeLayout is the minute-precision layout accepted by JQL date clauses.
	jqlTimeLayout = "2006/01/02 15:04"
)

var (
	issueFields  = "components,updated"
	searchFields = []string{"updated"}
)

// Tracker implements ports.IssueTracker.
type Tracker struct {
	client  *jira.Client
	project string
}

var _ ports.IssueTracker = (*Tracker)(nil)

// New creates a Tracker for the project on the Jira instance at baseURL.
// A nil httpClient uses a client bounded by domain.DefaultRequestTimeout.
func New(baseURL, project string, httpClient *http.Client) (*Tracker, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultRequestTimeout}
	}
	client, err := jira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create jira client"), "url", baseURL)
	}
	return &Tracker{client: client, project: project}, nil
}

// GetIssue fetches the components and last-update time of a ticket.
func (t *Tracker) GetIssue(ctx context.Context, key string) (*domain.Issue, error) {
	issue, resp, err := t.client.Issue.GetWithContext(ctx, key, &jira.GetQueryOptions{Fields: issueFields})
	if err != nil {
		return nil, zerr.With(classify(resp, err), "ticket", key)
	}

	out := &domain.Issue{Key: issue.Key}
	if issue.Fields != nil {
		out.UpdatedAt = time.Time(issue.Fields.Updated)
		for _, c := range issue.Fields.Components {
			if c != nil {
				out.Components = append(out.Components, c.Name)
			}
		}
	}
	return out, nil
}

// SearchUpdatedSince pages through every ticket of the project updated at or after since.
func (t *Tracker) SearchUpdatedSince(ctx context.Context, since time.Time) ([]domain.IssueRef, error) {
	jql := UpdatedSinceJQL(t.project, since)
	opts := &jira.SearchOptions{MaxResults: searchPageSize, Fields: searchFields}

	var refs []domain.IssueRef
	for {
		issues, resp, err := t.client.Issue.SearchWithContext(ctx, jql, opts)
		if err != nil {
			return nil, zerr.With(classify(resp, err), "jql", jql)
		}
		for i := range issues {
			ref := domain.IssueRef{Key: issues[i].Key}
			if issues[i].Fields != nil {
				ref.UpdatedAt = time.Time(issues[i].Fields.Updated)
			}
			refs = append(refs, ref)
		}
		if len(issues) == 0 || resp.StartAt+len(issues) >= resp.Total {
			return refs, nil
		}
		opts.StartAt = resp.StartAt + len(issues)
	}
}

// UpdatedSinceJQL renders the query for tickets of project updated at or after since.
// JQL dates have minute precision; since is truncated, so the window overlaps the
// previous one by less than a minute.
func UpdatedSinceJQL(project string, since time.Time) string {
	return fmt.Sprintf(`project = %s AND updatedDate >= "%s" ORDER BY updated DESC`,
		project, since.UTC().Format(jqlTimeLayout))
}

// classify marks rejected credentials as domain.ErrAuthFailed.
// A 403 is a permission or throttling answer and stays retryable.
func classify(resp *jira.Response, err error) error {
	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return zerr.With(errors.Join(domain.ErrAuthFailed, err), "status", resp.StatusCode)
		default:
			return zerr.With(zerr.Wrap(err, "jira request failed"), "status", resp.StatusCode)
		}
	}
	return zerr.Wrap(err, "jira request failed")
}
