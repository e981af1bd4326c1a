package property

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type countingSource struct {
	mu    sync.Mutex
	calls int
	err   error
	res   Result
}

func (s *countingSource) Fetch(ctx context.Context, f Filters) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return Result{}, s.err
	}
	return s.res, nil
}

type mapCache struct {
	mu sync.Mutex
	m  map[string]Result
}

func newMapCache() *mapCache { return &mapCache{m: make(map[string]Result)} }

func (c *mapCache) Get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[key]
	return r, ok
}

func (c *mapCache) Put(key string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = r
}

// blockingSource holds every request until release is closed and keeps the
// context the request ran under.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once

	mu  sync.Mutex
	ctx context.Context
}

func (s *blockingSource) Fetch(ctx context.Context, f Filters) (Result, error) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.once.Do(func() { close(s.started) })

	select {
	case <-s.release:
		return Result{Data: []Record{record("a", nil, nil)}}, nil
	case <-ctx.Done():
		return Result{}, &NetworkError{Err: ctx.Err()}
	}
}

func (s *blockingSource) fetchCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func TestFetchReusesCachedSnapshot(t *testing.T) {
	src := &countingSource{res: Result{Data: []Record{record("a", nil, nil)}}}
	svc := NewService(src, newMapCache(), time.Second)
	f := Filters{MinTemp: Float(10), MaxTemp: Float(20)}

	if _, cached, err := svc.Fetch(context.Background(), f); err != nil || cached {
		t.Fatalf("first fetch: cached=%v err=%v", cached, err)
	}
	r, cached, err := svc.Fetch(context.Background(), f)
	if err != nil || !cached {
		t.Fatalf("second fetch: cached=%v err=%v", cached, err)
	}
	if len(r.Data) != 1 {
		t.Errorf("len(data) = %d, want 1", len(r.Data))
	}
	if src.calls != 1 {
		t.Errorf("network calls = %d, want 1", src.calls)
	}
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	src := &countingSource{err: &NetworkError{StatusCode: 503, Err: errors.New("unavailable")}}
	svc := NewService(src, newMapCache(), time.Second)

	for i := 0; i < 2; i++ {
		_, _, err := svc.Fetch(context.Background(), Filters{})
		if !errors.Is(err, ErrNetwork) {
			t.Fatalf("err = %v, want network error", err)
		}
	}
	if src.calls != 2 {
		t.Errorf("network calls = %d, want 2", src.calls)
	}
	if _, ok := svc.Cached(Filters{}); ok {
		t.Error("failed result was cached")
	}
}

func TestFetchSurvivesCancelledCaller(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(src, newMapCache(), 5*time.Second)
	f := Filters{MinTemp: Float(10)}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := svc.Fetch(ctx, f)
		firstErr <- err
	}()
	<-src.started

	type outcome struct {
		r   Result
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		r, _, err := svc.Fetch(context.Background(), f)
		second <- outcome{r, err}
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, ErrNetwork) || !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller err = %v, want network error wrapping context.Canceled", err)
	}
	if err := src.fetchCtx().Err(); err != nil {
		t.Fatalf("shared fetch context ended with the first caller: %v", err)
	}

	close(src.release)
	got := <-second
	if got.err != nil {
		t.Fatalf("second caller err = %v", got.err)
	}
	if len(got.r.Data) != 1 {
		t.Errorf("len(data) = %d, want 1", len(got.r.Data))
	}
	if _, ok := svc.Cached(f); !ok {
		t.Error("result of the shared fetch was not cached")
	}
}

func TestFetchSharedCallHasOwnTimeout(t *testing.T) {
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(src, newMapCache(), 20*time.Millisecond)

	_, _, err := svc.Fetch(context.Background(), Filters{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestDescribeWeatherCode(t *testing.T) {
	c := func(n int) *int { return &n }
	tests := []struct {
		code *int
		want string
		cond Condition
	}{
		{nil, "Unknown", ConditionUnknown},
		{c(0), "Clear sky", ConditionClear},
		{c(63), "Moderate rain", ConditionRain},
		{c(75), "Heavy snow", ConditionSnow},
		{c(95), "Code 95", ConditionStorm},
	}
	for _, tt := range tests {
		if got := DescribeWeatherCode(tt.code); got != tt.want {
			t.Errorf("DescribeWeatherCode(%v) = %q, want %q", tt.code, got, tt.want)
		}
		if got := ConditionFor(tt.code); got != tt.cond {
			t.Errorf("ConditionFor(%v) = %q, want %q", tt.code, got, tt.cond)
		}
	}
}
