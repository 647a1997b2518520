package field

import "errors"

var (
	ErrNoContext      = errors.New("no 2d drawing context available")
	ErrInvalidOptions = errors.New("invalid animator options")
)
