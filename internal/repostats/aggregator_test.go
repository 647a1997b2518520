package repostats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGitHub serves a fixed owner's repositories and language breakdowns and
// records the order of requests.
type fakeGitHub struct {
	mu       sync.Mutex
	paths    []string
	auth     []string
	failPath string
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.mu.Unlock()

	if r.URL.Path == f.failPath {
		http.Error(w, "rate limited", http.StatusForbidden)
		return
	}

	var body any
	switch r.URL.Path {
	case "/users/acme/repos":
		if r.URL.Query().Get("type") != "public" || r.URL.Query().Get("sort") != "updated" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		body = []map[string]any{
			{"name": "rocket", "full_name": "acme/rocket", "stargazers_count": 10, "forks_count": 2, "language": "Go"},
			{"name": "anvil", "full_name": "acme/anvil", "stargazers_count": 3, "forks_count": 1, "language": "JavaScript"},
		}
	case "/repos/acme/rocket/languages":
		body = map[string]int64{"Go": 6000, "Shell": 1000}
	case "/repos/acme/anvil/languages":
		body = map[string]int64{"JavaScript": 2000, "Shell": 1000}
	case "/users/broken/repos":
		w.Write([]byte("{not json")) //nolint:errcheck
		return
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func TestRefresh(t *testing.T) {
	fake := &fakeGitHub{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	agg := New(srv.URL, "acme", WithToken("s3cret"))
	assert.True(t, agg.UpdatedAt().IsZero())

	require.NoError(t, agg.Refresh(context.Background()))

	assert.Equal(t, []string{
		"/users/acme/repos",
		"/repos/acme/rocket/languages",
		"/repos/acme/anvil/languages",
	}, fake.paths)
	for _, a := range fake.auth {
		assert.Equal(t, "Bearer s3cret", a)
	}

	repos := agg.Repositories()
	require.Len(t, repos, 2)
	assert.Equal(t, "rocket", repos[0].Name)
	assert.Equal(t, map[string]int64{"Go": 6000, "Shell": 1000}, repos[0].Languages)

	stats := agg.Stats()
	assert.Equal(t, 2, stats.Repositories)
	assert.Equal(t, 13, stats.Stars)
	assert.Equal(t, 3, stats.Forks)
	assert.Equal(t, int64(10000), stats.TotalBytes)
	assert.Equal(t, map[string]int64{"Go": 6000, "Shell": 2000, "JavaScript": 2000}, stats.Bytes)
	assert.False(t, agg.UpdatedAt().IsZero())
}

func TestRefreshKeepsPreviousStateOnFailure(t *testing.T) {
	fake := &fakeGitHub{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	agg := New(srv.URL, "acme")
	require.NoError(t, agg.Refresh(context.Background()))

	fake.failPath = "/repos/acme/anvil/languages"
	err := agg.Refresh(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "403")

	assert.Len(t, agg.Repositories(), 2)
	assert.Equal(t, int64(10000), agg.Stats().TotalBytes)
}

func TestRefreshDecodeError(t *testing.T) {
	srv := httptest.NewServer(&fakeGitHub{})
	defer srv.Close()

	agg := New(srv.URL, "broken")
	err := agg.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
	assert.Empty(t, agg.Repositories())
}

func TestRefreshUnreachable(t *testing.T) {
	srv := httptest.NewServer(&fakeGitHub{})
	url := srv.URL
	srv.Close()

	err := New(url, "acme").Refresh(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestStatsAccessorReturnsCopy(t *testing.T) {
	srv := httptest.NewServer(&fakeGitHub{})
	defer srv.Close()

	agg := New(srv.URL, "acme")
	require.NoError(t, agg.Refresh(context.Background()))

	s := agg.Stats()
	s.Bytes["Go"] = 1
	assert.Equal(t, int64(6000), agg.Stats().Bytes["Go"])
}

func TestLanguages(t *testing.T) {
	s := Stats{}
	s.add(Repository{Languages: map[string]int64{"Go": 300, "Shell": 100}})
	s.add(Repository{Languages: map[string]int64{"C": 100}})

	assert.Equal(t, []LanguageShare{
		{Name: "Go", Bytes: 300, Percent: 60},
		{Name: "C", Bytes: 100, Percent: 20},
		{Name: "Shell", Bytes: 100, Percent: 20},
	}, s.Languages())

	assert.Empty(t, Stats{}.Languages())
}

func TestDefaults(t *testing.T) {
	agg := New("", "acme")
	assert.Equal(t, DefaultBaseURL, agg.baseURL)
	require.Len(t, agg.Projects(), 1)
	assert.Len(t, agg.Projects()[0].Versions, 3)
	assert.Equal(t, "latest", agg.Projects()[0].Versions[0].Name)
}
