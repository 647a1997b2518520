// Package search queries a hosted search REST endpoint.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Query is a basic query expression and an advanced query that narrows it.
type Query struct {
	Q  string `json:"q"`
	AQ string `json:"aq,omitempty"`
}

// Result is one search hit. Raw holds the indexed fields of the document.
type Result struct {
	Title    string         `json:"title"`
	ClickURI string         `json:"clickUri"`
	Raw      map[string]any `json:"raw"`
}

type Results struct {
	TotalCount int      `json:"totalCount"`
	Results    []Result `json:"results"`
}

// Endpoint is a search REST endpoint and the access token used to query it.
type Endpoint struct {
	RestURI     string
	AccessToken string
	Client      *http.Client
}

func NewEndpoint(restURI, accessToken string) *Endpoint {
	return &Endpoint{
		RestURI:     restURI,
		AccessToken: accessToken,
		Client:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (e *Endpoint) Search(ctx context.Context, q Query) (*Results, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.RestURI, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.AccessToken)
	}

	client := e.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, resp.Status)
	}

	var results Results
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSearchFailed, err)
	}
	return &results, nil
}

// ResolveSuggestion finds the document whose field equals value, searching
// within scope, and returns its click URI.
func (e *Endpoint) ResolveSuggestion(ctx context.Context, field, value, scope string) (string, error) {
	results, err := e.Search(ctx, Query{
		Q:  fmt.Sprintf("@%s==%q", field, value),
		AQ: scope,
	})
	if err != nil {
		return "", err
	}

	for _, r := range results.Results {
		if v, ok := r.Raw[field].(string); ok && v == value {
			return r.ClickURI, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSuggestionNotFound, value)
}
