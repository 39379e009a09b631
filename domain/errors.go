package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSynthesisFailed  = errors.New("audio synthesis failed")
	ErrResampleFailed   = errors.New("audio resampling failed")
	ErrCacheUnavailable = errors.New("cache store unavailable")
)

// UnknownModelError reports a request for a model that is not loaded, carrying
// the names that are, so callers can list them in the rejection.
type UnknownModelError struct {
	Requested string
	Available []string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("model '%s' not available. Available models: [%s]",
		e.Requested, strings.Join(e.Available, ", "))
}

func NewUnknownModelError(requested string, available []string) *UnknownModelError {
	return &UnknownModelError{
		Requested: requested,
		Available: available,
	}
}
