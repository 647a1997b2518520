package repostats

import "errors"

var (
	ErrUpstream = errors.New("upstream request failed")
	ErrDecode   = errors.New("failed to decode upstream response")
)
