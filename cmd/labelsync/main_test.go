package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/labelsync/internal/adapters/telemetry"
	"go.trai.ch/labelsync/internal/app"
	"go.trai.ch/labelsync/internal/core/domain"
	"go.trai.ch/labelsync/internal/core/ports"
	"go.trai.ch/labelsync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T) (*app.Components, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	a := app.New(loader, log, telemetry.NewNoOpTracer(), clockwork.NewFakeClock())
	return &app.Components{App: a, Logger: log}, loader, log
}

func TestRun_Success(t *testing.T) {
	components, _, _ := newComponents(t)
	cleaned := false
	provider := func(context.Context) (*app.Components, func(), error) {
		return components, func() { cleaned = true }, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "labelsync version")
	assert.True(t, cleaned)
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_AuthFailureExitsNonZero(t *testing.T) {
	components, loader, log := newComponents(t)
	provider := func(context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	cfg := domain.DefaultConfig()
	cfg.Repo = "apache/flink"
	cfg.GitHubToken = "revoked"
	cfg.JiraURL = "https://issues.apache.org/jira"
	cfg.CacheDir = t.TempDir()
	loader.EXPECT().Load("").Return(cfg, nil)

	host := mocks.NewMockPullRequestHost(gomock.NewController(t))
	host.EXPECT().ValidateCredentials(gomock.Any()).Return("", domain.ErrAuthFailed)

	var logged error
	log.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	exitCode := run(context.Background(), []string{"run"}, new(bytes.Buffer), new(bytes.Buffer), provider,
		func(a *app.App) {
			a.WithHostFactory(func(domain.Config) (ports.PullRequestHost, error) { return host, nil })
		})

	assert.Equal(t, 1, exitCode)
	assert.True(t, errors.Is(logged, domain.ErrAuthFailed))
}
