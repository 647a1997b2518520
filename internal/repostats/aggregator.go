// Package repostats collects public repository metadata for an owner from
// the GitHub REST API, or from a proxy that mirrors it, and totals the bytes
// of code per language.
package repostats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const DefaultBaseURL = "https://api.github.com"

// Aggregator fetches repositories one request at a time and keeps the result
// of the last successful Refresh. Accessors are safe for concurrent use.
type Aggregator struct {
	client   *http.Client
	baseURL  string
	owner    string
	token    string
	projects []Project

	mu      sync.RWMutex
	repos   []Repository
	stats   Stats
	updated time.Time
}

type Option func(*Aggregator)

func WithHTTPClient(c *http.Client) Option {
	return func(a *Aggregator) { a.client = c }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(a *Aggregator) { a.token = token }
}

func WithProjects(projects []Project) Option {
	return func(a *Aggregator) { a.projects = projects }
}

func New(baseURL, owner string, opts ...Option) *Aggregator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	a := &Aggregator{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  baseURL,
		owner:    owner,
		projects: DefaultProjects(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Refresh lists the owner's public repositories, most recently updated
// first, then fetches the language breakdown of each in turn. The stored
// state is replaced only when every request succeeds.
func (a *Aggregator) Refresh(ctx context.Context) error {
	var repos []Repository
	query := url.Values{
		"type":     {"public"},
		"sort":     {"updated"},
		"per_page": {"100"},
	}
	if err := a.getJSON(ctx, query, &repos, "users", a.owner, "repos"); err != nil {
		return err
	}

	var stats Stats
	for i := range repos {
		langs := map[string]int64{}
		if err := a.getJSON(ctx, nil, &langs, "repos", a.owner, repos[i].Name, "languages"); err != nil {
			return err
		}
		repos[i].Languages = langs
		stats.add(repos[i])
	}
	if stats.Bytes == nil {
		stats.Bytes = map[string]int64{}
	}

	a.mu.Lock()
	a.repos = repos
	a.stats = stats
	a.updated = time.Now()
	a.mu.Unlock()
	return nil
}

func (a *Aggregator) getJSON(ctx context.Context, query url.Values, out any, elem ...string) error {
	u, err := url.JoinPath(a.baseURL, elem...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUpstream, u, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: %s", ErrUpstream, u, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrDecode, u, err)
	}
	return nil
}

// Repositories returns the repositories from the last successful refresh.
func (a *Aggregator) Repositories() []Repository {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Repository, len(a.repos))
	copy(out, a.repos)
	return out
}

// Stats returns the totals from the last successful refresh.
func (a *Aggregator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats.clone()
}

func (a *Aggregator) Projects() []Project {
	return a.projects
}

// UpdatedAt is the time of the last successful refresh, zero if none.
func (a *Aggregator) UpdatedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.updated
}
