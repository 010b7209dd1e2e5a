package config

import (
	"errors"
	"fmt"
)

// ErrUnknownTracker is matched by every error returned for a tracker name
// that is not in the configuration.
var ErrUnknownTracker = errors.New("unknown tracker")

// ConfigError is the base error type for configuration errors
type ConfigError struct {
	Type    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigNotFoundError creates a new error for a missing config file
func NewConfigNotFoundError(path string, err error) error {
	return &ConfigError{
		Type:    "ConfigNotFound",
		Message: fmt.Sprintf("no config file at %s", path),
		Err:     err,
	}
}

// NewConfigDecodeError creates a new error for a config file that could not be decoded
func NewConfigDecodeError(path string, err error) error {
	return &ConfigError{
		Type:    "ConfigDecode",
		Message: fmt.Sprintf("failed to decode %s", path),
		Err:     err,
	}
}

// NewUnknownTrackerError creates a new error for a tracker name with no config entry
func NewUnknownTrackerError(name string) error {
	return &ConfigError{
		Type:    "UnknownTracker",
		Message: fmt.Sprintf("tracker %q is not configured", name),
		Err:     ErrUnknownTracker,
	}
}

// IsDecodeError reports whether err came from decoding a config file.
func IsDecodeError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr) && cfgErr.Type == "ConfigDecode"
}
