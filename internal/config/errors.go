package config

import "github.com/pkg/errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a value that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat indicates a config file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	return "parsing " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
