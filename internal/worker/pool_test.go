package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var errStub = errors.New("document unreadable")

// stubResult implements Result
type stubResult struct {
	id  int
	err error
}

func (r *stubResult) GetError() error { return r.err }

// stubJob implements Job by running fn, or sleeping for delay when fn is nil
type stubJob struct {
	id    int
	delay time.Duration
	fail  bool
	fn    func()
	runs  *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.runs != nil {
		atomic.AddInt32(j.runs, 1)
	}
	if j.fn != nil {
		j.fn()
	}
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &stubResult{id: j.id, err: ctx.Err()}
		}
	}
	if j.fail {
		return &stubResult{id: j.id, err: errStub}
	}
	return &stubResult{id: j.id}
}

func TestNewPool_Workers(t *testing.T) {
	tests := []struct {
		desc    string
		workers int
		want    int
	}{
		{"explicit", 5, 5},
		{"zero", 0, 1},
		{"negative", -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			p := NewPool(context.Background(), tt.workers)
			if p.workers != tt.want {
				t.Errorf("Expected %d workers, got %d", tt.want, p.workers)
			}
		})
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var runs int32
	const total = 12
	for i := 0; i < total; i++ {
		if !pool.Submit(&stubJob{id: i, runs: &runs, fail: i%4 == 0}) {
			t.Fatalf("Expected job %d to be accepted", i)
		}
	}

	results := pool.Wait()
	if len(results) != total {
		t.Fatalf("Expected %d results, got %d", total, len(results))
	}
	if got := atomic.LoadInt32(&runs); got != total {
		t.Errorf("Expected %d runs, got %d", total, got)
	}

	seen := make(map[int]bool)
	failed := 0
	for _, r := range results {
		sr := r.(*stubResult)
		seen[sr.id] = true
		if errors.Is(r.GetError(), errStub) {
			failed++
		}
	}
	if len(seen) != total {
		t.Errorf("Expected %d distinct jobs in results, got %d", total, len(seen))
	}
	if failed != 3 {
		t.Errorf("Expected 3 failed jobs, got %d", failed)
	}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	const workers = 4
	pool := NewPool(context.Background(), workers)
	pool.Start()

	var active, peak int32
	track := func() {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	}

	for i := 0; i < 40; i++ {
		pool.Submit(&stubJob{id: i, fn: track})
	}
	pool.Wait()

	if p := atomic.LoadInt32(&peak); p > workers {
		t.Errorf("Expected at most %d concurrent jobs, got %d", workers, p)
	}
}

func TestPool_ManyMoreJobsThanBuffer(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	const total = 200
	done := make(chan []Result)
	go func() {
		for i := 0; i < total; i++ {
			pool.Submit(&stubJob{id: i})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != total {
			t.Errorf("Expected %d results, got %d", total, len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Pool deadlocked with more jobs than buffer space")
	}
}

func TestPool_ParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1)
	pool.Start()
	cancel()

	if pool.Submit(&stubJob{}) {
		t.Error("Expected Submit to refuse jobs after parent cancellation")
	}
	pool.Wait()
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Shutdown()

	done := make(chan bool)
	go func() { done <- pool.Submit(&stubJob{}) }()

	select {
	case accepted := <-done:
		if accepted {
			t.Error("Expected Submit after shutdown to be refused")
		}
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_ShutdownCancelsRunningJobs(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&stubJob{fn: func() { close(started) }, delay: time.Minute})
	<-started

	finished := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not cancel the running job")
	}

	results := pool.Wait()
	if len(results) != 1 || !errors.Is(results[0].GetError(), context.Canceled) {
		t.Errorf("Expected one cancelled result, got %v", results)
	}
}
