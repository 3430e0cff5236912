// Package metrics keeps the process counters served on /metrics.
//
// The CPU and memory figures are synthetic: CPU cycles with the wall clock
// second and memory grows with the request count.
package metrics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseMemoryMB        = 50
	memoryStepMB        = 5
	requestsPerMemStep  = 1000
	cpuOscillatorPeriod = 60
)

// Snapshot is a point-in-time view of the reporter.
type Snapshot struct {
	UptimeSeconds     uint64
	MemoryUsageMB     uint64
	CPUUsagePercent   float64
	TotalRequests     uint64
	RequestsPerMinute float64
}

// Reporter owns the request counter and the CPU oscillator.
// It is safe for concurrent use.
type Reporter struct {
	started  time.Time
	now      func() time.Time
	interval time.Duration
	requests atomic.Uint64
	cpu      atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReporter creates a reporter whose uptime starts now.
func NewReporter() *Reporter {
	return newReporter(time.Now, time.Second)
}

func newReporter(now func() time.Time, interval time.Duration) *Reporter {
	r := &Reporter{
		started:  now(),
		now:      now,
		interval: interval,
	}
	r.tick()

	return r
}

// Start launches the oscillator goroutine. It runs until ctx is done or
// Shutdown is called. Calling Start twice is a no-op.
func (r *Reporter) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go r.run(ctx, r.done)
}

func (r *Reporter) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Reporter) tick() {
	r.cpu.Store(r.now().Unix() % cpuOscillatorPeriod)
}

// Shutdown stops the oscillator and waits for it to exit.
func (r *Reporter) Shutdown() error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	<-done

	return nil
}

// RecordRequest counts one request and returns the new total.
func (r *Reporter) RecordRequest() uint64 {
	return r.requests.Add(1)
}

// Snapshot reads every figure at once.
func (r *Reporter) Snapshot() Snapshot {
	total := r.requests.Load()

	uptime := uint64(0)
	if elapsed := r.now().Sub(r.started); elapsed > 0 {
		uptime = uint64(elapsed / time.Second)
	}

	perMinute := 0.0
	if uptime > 0 {
		perMinute = float64(total) / float64(uptime) * 60
	}

	return Snapshot{
		UptimeSeconds:     uptime,
		MemoryUsageMB:     baseMemoryMB + (total/requestsPerMemStep)*memoryStepMB,
		CPUUsagePercent:   float64(r.cpu.Load()) / cpuOscillatorPeriod * 100,
		TotalRequests:     total,
		RequestsPerMinute: perMinute,
	}
}
