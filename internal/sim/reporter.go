package sim

import (
	"sync"
	"sync/atomic"
)

// Reporter hands step reports to a consumer goroutine. Publish never
// blocks: when the buffer is full the report is dropped and counted.
type Reporter struct {
	ch      chan StepReport
	done    chan struct{}
	once    sync.Once
	dropped atomic.Int64
}

func NewReporter(buffer int, handle func(StepReport)) *Reporter {
	if buffer < 1 {
		buffer = 1
	}
	r := &Reporter{
		ch:   make(chan StepReport, buffer),
		done: make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		for rep := range r.ch {
			handle(rep)
		}
	}()
	return r
}

func (r *Reporter) Publish(rep StepReport) bool {
	select {
	case r.ch <- rep:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Close stops accepting reports and waits for queued ones to be handled.
// Publish must not be called after Close.
func (r *Reporter) Close() {
	r.once.Do(func() { close(r.ch) })
	<-r.done
}

func (r *Reporter) Dropped() int64 { return r.dropped.Load() }
