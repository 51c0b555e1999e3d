// Package updater reconciles the component labels of every pull request with
// the components of the ticket named in its title.
package updater

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Updater runs reconciliation passes over all pull requests of a repository.
type Updater struct {
	host       ports.PullRequestHost
	components ports.ComponentSource
	labels     ports.LabelCache
	extractor  *domain.TicketExtractor
	tracer     ports.Tracer
	logger     ports.Logger
}

// New creates an Updater.
func New(
	host ports.PullRequestHost,
	components ports.ComponentSource,
	labels ports.LabelCache,
	extractor *domain.TicketExtractor,
	tracer ports.Tracer,
	logger ports.Logger,
) *Updater {
	return &Updater{
		host:       host,
		components: components,
		labels:     labels,
		extractor:  extractor,
		tracer:     tracer,
		logger:     logger,
	}
}

// CheckPullRequests runs one pass over all pull requests.
//
// Pull requests are processed one at a time. A failure on a single pull request
// is logged and the pass continues; a failure to list pull requests ends the
// pass and is returned.
func (u *Updater) CheckPullRequests(ctx context.Context) error {
	ctx, span := u.tracer.Start(ctx, "check_pull_requests")
	defer span.End()

	u.logRateLimit(ctx)

	var checked, failed int
	for pr, err := range u.host.ListPullRequests(ctx) {
		if err != nil {
			span.RecordError(err)
			return err
		}
		checked++
		if err := u.checkPullRequest(ctx, pr); err != nil {
			failed++
			u.logger.Error(zerr.With(zerr.Wrap(err, "failed to update pull request"), "pr", pr.Number))
		}
	}

	span.SetAttribute("pull_requests", checked)
	span.SetAttribute("failed", failed)
	u.logger.Info(fmt.Sprintf("checked %d pull requests, %d failed", checked, failed))
	return nil
}

func (u *Updater) logRateLimit(ctx context.Context) {
	limit, err := u.host.RateLimit(ctx)
	if err != nil {
		u.logger.Warn(fmt.Sprintf("could not read rate limit: %v", err))
		return
	}
	u.logger.Info(fmt.Sprintf("rate limit: %d of %d requests remaining, resets at %s",
		limit.Remaining, limit.Limit, limit.Reset.Format("15:04:05 MST")))
}

func (u *Updater) checkPullRequest(ctx context.Context, pr domain.PullRequest) (err error) {
	ctx, span := u.tracer.Start(ctx, "check_pull_request")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()
	span.SetAttribute("pr", pr.Number)

	ticket, ok := u.extractor.ExtractTicketID(pr.Title)
	if !ok {
		u.logger.Warn(fmt.Sprintf("skipping #%d, no ticket id in title %q", pr.Number, pr.Title))
		return nil
	}
	span.SetAttribute("ticket", ticket)

	components, err := u.components.Components(ctx, ticket)
	if err != nil {
		return err
	}

	required, err := u.resolveLabels(ctx, domain.NormalizeComponents(components))
	if err != nil {
		return err
	}

	current, err := u.labels.Labels(ctx, strconv.Itoa(pr.Number), pr.UpdatedAt, func(ctx context.Context) ([]string, error) {
		if pr.Labels != nil {
			return slices.Clone(pr.Labels), nil
		}
		return u.host.Labels(ctx, pr.Number)
	})
	if err != nil {
		return err
	}

	delta := domain.Reconcile(required, current)
	if delta.Empty() {
		return nil
	}
	if len(delta.ToAdd) > 0 {
		if err := u.host.AddLabels(ctx, pr.Number, delta.ToAdd); err != nil {
			return err
		}
	}
	if len(delta.ToRemove) > 0 {
		if err := u.host.RemoveLabels(ctx, pr.Number, delta.ToRemove); err != nil {
			return err
		}
	}

	u.logger.Info(fmt.Sprintf("#%d (%s): added [%s], removed [%s]", pr.Number, ticket,
		strings.Join(delta.ToAdd, ", "), strings.Join(delta.ToRemove, ", ")))
	return nil
}

// resolveLabels maps required label names to the names the host knows them by,
// creating missing labels.
func (u *Updater) resolveLabels(ctx context.Context, names []string) ([]string, error) {
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		label, err := u.host.GetOrCreateLabel(ctx, name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, label)
	}
	return resolved, nil
}
