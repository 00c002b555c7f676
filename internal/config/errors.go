package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrDoomedTribe   = errors.New("a tribe without hunters is doomed")
)

// ConfigError names the offending field of a rejected configuration.
type ConfigError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind.Error())
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind.Error(), e.Field, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Kind }

func invalidf(field, format string, args ...any) error {
	return &ConfigError{Kind: ErrInvalidConfig, Field: field, Msg: fmt.Sprintf(format, args...)}
}
