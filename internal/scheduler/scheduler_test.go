package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

type countingPruner struct {
	calls atomic.Int32
}

func (p *countingPruner) Name() string { return "counting" }

func (p *countingPruner) Prune(time.Time) int {
	p.calls.Add(1)
	return 1
}

func TestSweepRunsEveryPruner(t *testing.T) {
	a, b := &countingPruner{}, &countingPruner{}
	s := New(time.Minute, a, b)

	s.Sweep()

	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Fatalf("calls = %d, %d; want 1, 1", a.calls.Load(), b.calls.Load())
	}
}

func TestStartSchedulesSweep(t *testing.T) {
	p := &countingPruner{}
	s := New(time.Second, p)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for p.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if p.calls.Load() == 0 {
		t.Fatal("scheduled sweep never ran")
	}
}

func TestStartWithoutPruners(t *testing.T) {
	s := New(time.Minute)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	s.Stop()
}
