package property

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultFetchTimeout = 15 * time.Second

// Service is the query layer: it turns a filter snapshot into a Result,
// reusing cached results and collapsing concurrent identical requests.
type Service struct {
	source  Source
	cache   Cache
	timeout time.Duration
	group   singleflight.Group
}

// NewService creates a new Service. timeout bounds a shared remote call,
// which outlives the caller that started it.
func NewService(source Source, cache Cache, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Service{
		source:  source,
		cache:   cache,
		timeout: timeout,
	}
}

// Cached returns the fresh cached result for f, if any.
func (s *Service) Cached(f Filters) (Result, bool) {
	return s.cache.Get(f.Key())
}

// Fetch returns the cached result for f or issues the request. cached
// reports whether the network was skipped. Failed requests are not cached.
//
// Callers asking for the same snapshot share one remote call. That call is
// not tied to any caller's ctx; a caller whose ctx ends gets a NetworkError
// while the others keep waiting.
func (s *Service) Fetch(ctx context.Context, f Filters) (result Result, cached bool, err error) {
	key := f.Key()
	if r, ok := s.cache.Get(key); ok {
		slog.Debug("properties cache hit", "key", key)
		return r, true, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		r, err := s.source.Fetch(fetchCtx, f)
		if err != nil {
			return nil, err
		}
		s.cache.Put(key, r)
		return r, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		slog.Debug("properties fetch abandoned by caller", "key", key, "error", ctx.Err())
		return Result{}, false, &NetworkError{Err: ctx.Err()}
	}
	if res.Err != nil {
		slog.Warn("properties fetch failed", "key", key, "error", res.Err)
		return Result{}, false, res.Err
	}

	r, ok := res.Val.(Result)
	if !ok {
		return Result{}, false, fmt.Errorf("unexpected result type %T", res.Val)
	}
	slog.Debug("properties fetched", "key", key, "records", len(r.Data), "shared", res.Shared)
	return r, false, nil
}
