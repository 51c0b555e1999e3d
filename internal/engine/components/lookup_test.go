package components_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports/mocks"
	"go.trai.ch/labelsync/internal/engine/components"
	"go.trai.ch/labelsync/internal/engine/retry"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cache   *mocks.MockKeyValueStore
	tracker *mocks.MockIssueTracker
	lookup  *components.Lookup
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	cache := mocks.NewMockKeyValueStore(ctrl)
	tracker := mocks.NewMockIssueTracker(ctrl)
	fetcher := retry.New(clockwork.NewFakeClock(), logger, retry.WithAttempts(1))
	return fixture{
		cache:   cache,
		tracker: tracker,
		lookup:  components.New(cache, tracker, fetcher, logger),
	}
}

func TestLookup_CacheHitSkipsTracker(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.cache.EXPECT().Get("FLINK-1").Return([]string{"Runtime / Checkpointing"}, true)

	got, err := f.lookup.Components(context.Background(), "FLINK-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Runtime / Checkpointing"}, got)
}

func TestLookup_MissFetchesAndStores(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	comps := []string{"Connectors / Kafka", "Runtime / State Backends"}
	gomock.InOrder(
		f.cache.EXPECT().Get("FLINK-500").Return(nil, false),
		f.tracker.EXPECT().GetIssue(gomock.Any(), "FLINK-500").
			Return(&domain.Issue{Key: "FLINK-500", Components: comps}, nil),
		f.cache.EXPECT().Put("FLINK-500", comps).Return(nil),
	)

	got, err := f.lookup.Components(ctx, "FLINK-500")
	require.NoError(t, err)
	assert.Equal(t, comps, got)
}

func TestLookup_FetchFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.cache.EXPECT().Get("FLINK-2").Return(nil, false)
	f.tracker.EXPECT().GetIssue(gomock.Any(), "FLINK-2").Return(nil, errors.New("timeout"))

	_, err := f.lookup.Components(context.Background(), "FLINK-2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteFailed))
}

func TestLookup_PersistFailurePropagates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	writeErr := errors.Join(domain.ErrCacheWriteFailed, errors.New("disk full"))
	f.cache.EXPECT().Get("FLINK-3").Return(nil, false)
	f.tracker.EXPECT().GetIssue(gomock.Any(), "FLINK-3").Return(&domain.Issue{Key: "FLINK-3"}, nil)
	f.cache.EXPECT().Put("FLINK-3", gomock.Nil()).Return(writeErr)

	_, err := f.lookup.Components(context.Background(), "FLINK-3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheWriteFailed))
}

func TestLookup_Invalidate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.cache.EXPECT().Remove("FLINK-4").Return(true)
	f.cache.EXPECT().Remove("FLINK-5").Return(false)

	assert.True(t, f.lookup.Invalidate("FLINK-4"))
	assert.False(t, f.lookup.Invalidate("FLINK-5"))
}
