package property

import (
	"context"
	"errors"
	"fmt"
)

// ErrNetwork matches every NetworkError via errors.Is.
var ErrNetwork = errors.New("network error")

// NetworkError covers connectivity failures, non-2xx responses and bodies
// that cannot be decoded. StatusCode is 0 when no response was received.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("get properties: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("get properties: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Source abstracts the remote get-properties endpoint.
type Source interface {
	Fetch(ctx context.Context, f Filters) (Result, error)
}

// Cache is the contract of the query result cache, keyed by Filters.Key.
// Get reports only fresh entries.
type Cache interface {
	Get(key string) (Result, bool)
	Put(key string, r Result)
}
