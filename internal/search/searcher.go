package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/i474232898/property-search/internal/property"
)

// Querier is the part of property.Service the Searcher depends on.
type Querier interface {
	Cached(f property.Filters) (property.Result, bool)
	Fetch(ctx context.Context, f property.Filters) (property.Result, bool, error)
}

// Searcher issues queries on behalf of sessions. A cached snapshot settles
// synchronously; otherwise the session goes to loading and the request runs
// in the background until its response is committed or discarded.
type Searcher struct {
	ctx       context.Context
	querier   Querier
	timeout   time.Duration
	autoApply bool
	wg        sync.WaitGroup
}

// NewSearcher creates a Searcher. Background requests derive from ctx, so
// cancelling it aborts everything in flight. When autoApply is set every
// filter edit triggers a query, not only search and apply.
func NewSearcher(ctx context.Context, querier Querier, timeout time.Duration, autoApply bool) *Searcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Searcher{
		ctx:       ctx,
		querier:   querier,
		timeout:   timeout,
		autoApply: autoApply,
	}
}

// Search commits the search text and queries the resulting snapshot.
func (s *Searcher) Search(sess *Session, text string) {
	s.issue(sess, sess.commitSearch(text))
}

// Apply queries the current snapshot.
func (s *Searcher) Apply(sess *Session) {
	s.issue(sess, sess.Filters())
}

// Edited is called after a filter edit. It queries only in auto-apply mode.
func (s *Searcher) Edited(sess *Session) {
	if s.autoApply {
		s.issue(sess, sess.Filters())
	}
}

// Retry re-issues the latest issued snapshot unchanged.
func (s *Searcher) Retry(sess *Session) {
	s.issue(sess, sess.lastIssued())
}

// Wait blocks until every background request has finished.
func (s *Searcher) Wait() {
	s.wg.Wait()
}

func (s *Searcher) issue(sess *Session, f property.Filters) {
	if r, ok := s.querier.Cached(f); ok {
		sess.settle(f, r)
		return
	}
	if !sess.begin(f) {
		slog.Debug("properties query already in flight", "session", sess.ID(), "key", f.Key())
		return
	}

	key := f.Key()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		r, _, err := s.querier.Fetch(ctx, f)
		if !sess.complete(key, r, err) {
			slog.Debug("discarding stale properties response", "session", sess.ID(), "key", key)
		}
	}()
}
