package history

import (
	"fmt"
	"runtime"

	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// Recorder is a multi-producer single-consumer event sink.
//
// Workers are spread over shards by id, so producers rarely contend
// with each other. Any number of goroutines may call Record(); exactly
// ONE goroutine may call Drain().
type Recorder struct {
	ring   *ring.ShardedRing
	shards uint64
}

// MaxShards caps the shard count; workers beyond it share shards.
const MaxShards = 64

// minPerShard keeps every shard deep enough to absorb a burst.
const minPerShard = 16

// NewRecorder creates a Recorder for the given number of workers.
//
// The shard count is workers rounded up to a power of 2 (at most
// MaxShards). Capacity is rounded up to a power of 2 that gives every
// shard at least a few slots.
func NewRecorder(capacity, workers int) (*Recorder, error) {
	if capacity <= 0 || workers <= 0 {
		return nil, fmt.Errorf("%w: capacity=%d workers=%d", ErrInvalidConfig, capacity, workers)
	}

	shards := nextPow2(uint64(min(workers, MaxShards)))
	total := nextPow2(max(uint64(capacity), shards*minPerShard))

	r, err := ring.NewShardedRing(total, shards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Recorder{
		ring:   r,
		shards: shards,
	}, nil
}

// Shards returns the number of ring shards.
func (r *Recorder) Shards() int {
	return int(r.shards)
}

func nextPow2(v uint64) uint64 {
	n := uint64(1)
	for n < v {
		n <<= 1
	}
	return n
}

// Record stores ev, yielding while the worker's shard is full.
//
// Record only returns once the event is buffered, so a consumer must be
// draining concurrently if more events are recorded than fit.
func (r *Recorder) Record(ev Event) {
	for !r.ring.Write(ev.Worker%r.shards, ev) {
		runtime.Gosched()
	}
}

// Drain passes every buffered event to fn and returns how many were read.
//
// SINGLE CONSUMER: only one goroutine may call Drain().
func (r *Recorder) Drain(fn func(Event)) int {
	n := 0
	for {
		v, ok := r.ring.TryRead()
		if !ok {
			return n
		}
		if ev, ok := v.(Event); ok {
			fn(ev)
			n++
		}
	}
}
