package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gh "github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/labelsync/internal/adapters/github"
	"go.trai.ch/labelsync/internal/core/domain"
)

// recorder collects "METHOD escaped-path?query" lines for every request.
type recorder struct {
	mu       sync.Mutex
	requests []string
}

func (r *recorder) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		line := req.Method + " " + req.URL.EscapedPath()
		if req.URL.RawQuery != "" {
			line += "?" + req.URL.RawQuery
		}
		r.requests = append(r.requests, line)
		r.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}

func (r *recorder) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.requests...)
}

func newHost(t *testing.T, mux *http.ServeMux) (*github.Host, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(rec.wrap(mux))
	t.Cleanup(server.Close)

	client := gh.NewClient(nil)
	baseURL, err := client.BaseURL.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return github.New(client, "apache", "flink"), rec
}

func respondJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func nextLink(r *http.Request) string {
	return fmt.Sprintf(`<http://%s/repos/apache/flink/pulls?page=2>; rel="next"`, r.Host)
}

func TestHost_ValidateCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		wantAuth bool
	}{
		{name: "valid", status: http.StatusOK, body: `{"login":"flinkbot"}`},
		{name: "rejected", status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`, wantErr: true, wantAuth: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"oops"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mux := http.NewServeMux()
			mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
				respondJSON(w, tt.status, tt.body)
			})
			host, _ := newHost(t, mux)

			login, err := host.ValidateCredentials(context.Background())
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "flinkbot", login)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantAuth, errors.Is(err, domain.ErrAuthFailed))
		})
	}
}

func TestHost_RateLimit(t *testing.T) {
	t.Parallel()

	reset := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rate_limit", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, fmt.Sprintf(
			`{"resources":{"core":{"limit":5000,"remaining":4321,"reset":%d}}}`, reset.Unix()))
	})
	host, _ := newHost(t, mux)

	limit, err := host.RateLimit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5000, limit.Limit)
	assert.Equal(t, 4321, limit.Remaining)
	assert.True(t, limit.Reset.Equal(reset))
}

func TestHost_ListPullRequests_Pages(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/apache/flink/pulls", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "all", q.Get("state"))
		assert.Equal(t, "created", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("direction"))
		assert.Equal(t, "100", q.Get("per_page"))

		if q.Get("page") == "" {
			w.Header().Set("Link", nextLink(r))
			respondJSON(w, http.StatusOK, `[
				{"number":3,"title":"[FLINK-3] newest","updated_at":"2024-03-01T10:00:00Z","labels":[{"name":"component=API/DataStream"},{"name":"bug"}]},
				{"number":2,"title":"[hotfix] typo","updated_at":"2024-02-01T10:00:00Z"}
			]`)
			return
		}
		respondJSON(w, http.StatusOK, `[{"number":1,"title":"FLINK-1 oldest","updated_at":"2024-01-01T10:00:00Z"}]`)
	})
	host, rec := newHost(t, mux)

	var prs []domain.PullRequest
	for pr, err := range host.ListPullRequests(context.Background()) {
		require.NoError(t, err)
		prs = append(prs, pr)
	}

	require.Len(t, prs, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{prs[0].Number, prs[1].Number, prs[2].Number})
	assert.Equal(t, "[FLINK-3] newest", prs[0].Title)
	assert.Equal(t, []string{"component=API/DataStream", "bug"}, prs[0].Labels)
	assert.NotNil(t, prs[1].Labels)
	assert.Empty(t, prs[1].Labels)
	assert.True(t, prs[0].UpdatedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.Len(t, rec.lines(), 2)
}

func TestHost_ListPullRequests_StopsEarly(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/apache/flink/pulls", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", nextLink(r))
		respondJSON(w, http.StatusOK, `[{"number":3},{"number":2}]`)
	})
	host, rec := newHost(t, mux)

	for range host.ListPullRequests(context.Background()) {
		break
	}
	assert.Len(t, rec.lines(), 1)
}

func TestHost_ListPullRequests_Failure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/apache/flink/pulls", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusBadGateway, `{"message":"upstream"}`)
	})
	host, _ := newHost(t, mux)

	var errs []error
	for _, err := range host.ListPullRequests(context.Background()) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], domain.ErrListPullRequestsFailed))
}

func TestHost_Labels(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/apache/flink/issues/7/labels", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, `[{"name":"component=Runtime/Checkpointing"},{"name":"stale"}]`)
	})
	host, _ := newHost(t, mux)

	labels, err := host.Labels(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"component=Runtime/Checkpointing", "stale"}, labels)
}

func TestHost_AddLabels(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/apache/flink/issues/7/labels", func(w http.ResponseWriter, r *http.Request) {
		var names []string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&names))
		assert.Equal(t, []string{"component=A", "component=B"}, names)
		respondJSON(w, http.StatusOK, `[]`)
	})
	mux.HandleFunc("POST /repos/apache/flink/issues/8/labels", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})
	host, rec := newHost(t, mux)
	ctx := context.Background()

	require.NoError(t, host.AddLabels(ctx, 7, []string{"component=A", "component=B"}))
	require.NoError(t, host.AddLabels(ctx, 7, nil))
	assert.Len(t, rec.lines(), 1)

	err := host.AddLabels(ctx, 8, []string{"component=A"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLabelWriteFailed))
}

func TestHost_RemoveLabels_EscapesNames(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /repos/apache/flink/issues/7/labels/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() == "/repos/apache/flink/issues/7/labels/component=%3Cnone%3E" {
			respondJSON(w, http.StatusNotFound, `{"message":"Label does not exist"}`)
			return
		}
		respondJSON(w, http.StatusOK, `[]`)
	})
	host, rec := newHost(t, mux)

	err := host.RemoveLabels(context.Background(), 7, []string{"component=Connectors/Kafka", "component=<none>"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"DELETE /repos/apache/flink/issues/7/labels/component=Connectors%2FKafka",
		"DELETE /repos/apache/flink/issues/7/labels/component=%3Cnone%3E",
	}, rec.lines())
}

func TestHost_GetOrCreateLabel(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/apache/flink/labels/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() == "/repos/apache/flink/labels/component=Documentation" {
			respondJSON(w, http.StatusOK, `{"name":"component=Documentation","color":"175fb7"}`)
			return
		}
		respondJSON(w, http.StatusNotFound, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("POST /repos/apache/flink/labels", func(w http.ResponseWriter, r *http.Request) {
		var label gh.Label
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&label))
		assert.Equal(t, "component=Table/SQL", label.GetName())
		assert.Equal(t, domain.LabelColor, label.GetColor())
		respondJSON(w, http.StatusCreated, `{"name":"component=Table/SQL","color":"175fb7"}`)
	})
	host, rec := newHost(t, mux)
	ctx := context.Background()

	name, err := host.GetOrCreateLabel(ctx, "component=Documentation")
	require.NoError(t, err)
	assert.Equal(t, "component=Documentation", name)

	name, err = host.GetOrCreateLabel(ctx, "component=Table/SQL")
	require.NoError(t, err)
	assert.Equal(t, "component=Table/SQL", name)

	_, err = host.GetOrCreateLabel(ctx, "component=Table/SQL")
	require.NoError(t, err)
	_, err = host.GetOrCreateLabel(ctx, "component=Documentation")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /repos/apache/flink/labels/component=Documentation",
		"GET /repos/apache/flink/labels/component=Table%2FSQL",
		"POST /repos/apache/flink/labels",
	}, rec.lines())
}

func TestHost_GetOrCreateLabel_Failure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/apache/flink/labels/", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})
	host, _ := newHost(t, mux)

	_, err := host.GetOrCreateLabel(context.Background(), "component=A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLabelResolveFailed))
}

func TestNewClient_BoundsRequests(t *testing.T) {
	t.Parallel()
	client := github.NewClient("token", 5*time.Second)
	assert.Equal(t, 5*time.Second, client.Client().Timeout)
}

func TestHost_ResponseCacheRevalidatesListings(t *testing.T) {
	t.Parallel()

	var conditional []string
	var mu sync.Mutex
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/apache/flink/pulls", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		conditional = append(conditional, r.Header.Get("If-None-Match"))
		mu.Unlock()

		w.Header().Set("ETag", `"listing-v1"`)
		w.Header().Set("Cache-Control", "private, no-cache")
		if r.Header.Get("If-None-Match") == `"listing-v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		respondJSON(w, http.StatusOK, `[{"number":4,"title":"FLINK-4","updated_at":"2024-03-01T10:00:00Z","labels":[{"name":"bug"}]}]`)
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusUnauthorized, `{"message":"Bad credentials"}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dir := filepath.Join(t.TempDir(), "githubPullCache")
	plain := github.NewClient("token", 5*time.Second)
	cached := github.NewCachedClient("token", 5*time.Second, dir)
	for _, c := range []*gh.Client{plain, cached} {
		baseURL, err := c.BaseURL.Parse(server.URL + "/")
		require.NoError(t, err)
		c.BaseURL = baseURL
	}
	host := github.New(plain, "apache", "flink").WithResponseCache(cached)

	_, err := host.ValidateCredentials(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.NoDirExists(t, dir)

	for range 2 {
		var prs []domain.PullRequest
		for pr, err := range host.ListPullRequests(context.Background()) {
			require.NoError(t, err)
			prs = append(prs, pr)
		}
		require.Len(t, prs, 1)
		assert.Equal(t, 4, prs[0].Number)
		assert.Equal(t, []string{"bug"}, prs[0].Labels)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", `"listing-v1"`}, conditional)
	assert.DirExists(t, dir)
}
