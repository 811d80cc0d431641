package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) Err() error {
	return r.err
}

type stubJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *atomic.Int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		j.executed.Add(1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &stubResult{err: errors.New("job error")}
	}
	return &stubResult{}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed atomic.Int32
	count := 10

	for i := 0; i < count; i++ {
		pool.Submit(&stubJob{executed: &executed})
	}

	results := pool.Wait()

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if got := executed.Load(); got != int32(count) {
		t.Errorf("expected %d executions, got %d", count, got)
	}
}

type trackingJob struct {
	onStart  func()
	onEnd    func()
	duration time.Duration
}

func (j *trackingJob) Execute(ctx context.Context) Result {
	if j.onStart != nil {
		j.onStart()
	}
	time.Sleep(j.duration)
	if j.onEnd != nil {
		j.onEnd()
	}
	return &stubResult{}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	workers := 4
	pool := NewPool(workers)
	pool.Start()

	var current, maxSeen, completed int32
	var mu sync.Mutex

	total := 40
	for i := 0; i < total; i++ {
		pool.Submit(&trackingJob{
			onStart: func() {
				curr := atomic.AddInt32(&current, 1)
				mu.Lock()
				if curr > maxSeen {
					maxSeen = curr
				}
				mu.Unlock()
			},
			onEnd: func() {
				atomic.AddInt32(&current, -1)
				atomic.AddInt32(&completed, 1)
			},
			duration: 5 * time.Millisecond,
		})
	}

	pool.Wait()

	if atomic.LoadInt32(&completed) != int32(total) {
		t.Errorf("expected %d completed jobs, got %d", total, completed)
	}

	mu.Lock()
	peak := maxSeen
	mu.Unlock()
	if peak > int32(workers) {
		t.Errorf("concurrency peak %d exceeded %d workers", peak, workers)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&stubJob{shouldErr: true})
	pool.Submit(&stubJob{})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failed := 0
	for _, res := range results {
		if res.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_ShutdownClosesResults(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&trackingJob{
		onStart:  func() { close(started) },
		duration: 200 * time.Millisecond,
	})
	<-started

	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		for range pool.results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("results channel never closed after Shutdown")
	}
}
