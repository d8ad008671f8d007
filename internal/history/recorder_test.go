package history_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/randomizedcoder/go-atomic-flag/internal/atomicflag"
	"github.com/randomizedcoder/go-atomic-flag/internal/history"
)

func TestNewRecorder_Invalid(t *testing.T) {
	testCases := []struct {
		name              string
		capacity, workers int
	}{
		{"ZeroCapacity", 0, 4},
		{"ZeroWorkers", 64, 0},
		{"Negative", -1, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := history.NewRecorder(tc.capacity, tc.workers)
			if !errors.Is(err, history.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRecorder_Shards(t *testing.T) {
	testCases := []struct {
		workers int
		want    int
	}{
		{1, 1},
		{3, 4},
		{8, 8},
		{100, history.MaxShards},
	}

	for _, tc := range testCases {
		r, err := history.NewRecorder(1024, tc.workers)
		if err != nil {
			t.Fatalf("NewRecorder(1024, %d): %v", tc.workers, err)
		}
		if r.Shards() != tc.want {
			t.Errorf("workers=%d: expected %d shards, got %d", tc.workers, tc.want, r.Shards())
		}
	}
}

func TestRecorder_RecordDrain(t *testing.T) {
	r, err := history.NewRecorder(64, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Empty recorder drains nothing
	if n := r.Drain(func(history.Event) {}); n != 0 {
		t.Errorf("expected 0 events from empty recorder, got %d", n)
	}

	r.Record(history.Event{Op: history.OpTrySet, Result: true})
	r.Record(history.Event{Op: history.OpTrySet, Result: false})

	var tally history.Tally
	if n := r.Drain(tally.Add); n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
	if err := tally.Check(atomicflag.Clear, atomicflag.Set); err != nil {
		t.Errorf("unexpected violation: %v", err)
	}
}

// TestRecorder_MPSC records from many producers while one consumer drains.
func TestRecorder_MPSC(t *testing.T) {
	const (
		producers = 16
		perWorker = 5000
	)

	r, err := history.NewRecorder(256, producers)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				r.Record(history.Event{Worker: id, Op: history.OpIsClear, Result: true})
			}
		}(uint64(p))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	// Consumer (single goroutine - this test's main goroutine)
	received := 0
	count := func(history.Event) { received++ }
	for {
		select {
		case <-done:
			r.Drain(count)
			if received != producers*perWorker {
				t.Errorf("expected %d events, received %d", producers*perWorker, received)
			}
			return
		default:
			r.Drain(count)
		}
	}
}
