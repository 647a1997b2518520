package config

import "errors"

// Configuration loading errors
var (
	ErrConfigFileRead  = errors.New("failed to read config file")
	ErrConfigUnmarshal = errors.New("failed to unmarshal config")
)

// Configuration validation errors
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidColor  = errors.New("invalid color")
)
