package services

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// SideEffectJob is deferred work emitted after a booking transaction
// commits. Its failure is logged and swallowed: it can never roll back,
// retry, or alter the committed booking.
type SideEffectJob struct {
	Kind string
	Ref  string
	Run  func() error
}

// SideEffectDispatcher consumes post-commit jobs on a worker goroutine so
// notification-transport latency stays off the request path. When the
// worker is not running (tests, shutdown drain) jobs run inline; either
// way errors stop here.
type SideEffectDispatcher struct {
	jobs chan SideEffectJob
	wg   sync.WaitGroup

	mu      sync.Mutex
	started bool
}

func NewSideEffectDispatcher(buffer int) *SideEffectDispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &SideEffectDispatcher{jobs: make(chan SideEffectJob, buffer)}
}

func (d *SideEffectDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for job := range d.jobs {
			runJob(job)
		}
	}()
}

// Stop drains queued jobs before returning.
func (d *SideEffectDispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	d.mu.Unlock()

	close(d.jobs)
	d.wg.Wait()
}

// Dispatch hands a job to the worker, falling back to an inline run when
// the worker is stopped or the queue is full.
func (d *SideEffectDispatcher) Dispatch(job SideEffectJob) {
	if d == nil {
		runJob(job)
		return
	}

	d.mu.Lock()
	started := d.started
	d.mu.Unlock()
	if !started {
		runJob(job)
		return
	}

	select {
	case d.jobs <- job:
	default:
		runJob(job)
	}
}

func runJob(job SideEffectJob) {
	if job.Run == nil {
		return
	}
	if err := job.Run(); err != nil {
		logrus.WithFields(logrus.Fields{
			"kind": job.Kind,
			"ref":  job.Ref,
		}).WithError(err).Error("post-commit side effect failed")
	}
}
