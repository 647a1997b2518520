package search

import "errors"

var (
	ErrSearchFailed       = errors.New("search request failed")
	ErrSuggestionNotFound = errors.New("selected suggestion not found")
)
