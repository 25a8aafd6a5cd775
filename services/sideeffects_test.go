package services

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestDispatchRunsInlineWhenNilOrStopped(t *testing.T) {
	var ran atomic.Int32
	job := SideEffectJob{Kind: "test", Run: func() error {
		ran.Add(1)
		return nil
	}}

	var nilDispatcher *SideEffectDispatcher
	nilDispatcher.Dispatch(job)
	if ran.Load() != 1 {
		t.Fatalf("nil dispatcher did not run inline")
	}

	d := NewSideEffectDispatcher(4)
	d.Dispatch(job) // never started
	if ran.Load() != 2 {
		t.Fatalf("stopped dispatcher did not run inline")
	}
}

func TestStopDrainsQueuedJobs(t *testing.T) {
	d := NewSideEffectDispatcher(8)
	d.Start()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		d.Dispatch(SideEffectJob{Kind: "test", Run: func() error {
			ran.Add(1)
			return nil
		}})
	}
	d.Stop()

	if got := ran.Load(); got != 5 {
		t.Fatalf("drained jobs = %d, want 5", got)
	}
}

func TestJobErrorIsSwallowed(t *testing.T) {
	d := NewSideEffectDispatcher(1)
	d.Start()
	defer d.Stop()

	d.Dispatch(SideEffectJob{Kind: "test", Ref: "r", Run: func() error {
		return errors.New("side effect failed")
	}})
	// the error must not panic or surface; Stop in the deferred call
	// proves the worker survived it
}
