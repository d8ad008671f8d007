// Package atomicflag provides a two-state flag for resolving ownership races.
//
// This package offers two implementations of the Flagger interface:
//   - AtomicFlag: Lock-free flag using a single compare-and-swap per transition
//   - MutexFlag: Standard library approach using sync.Mutex (baseline only)
//
// AtomicFlag is the primitive. MutexFlag exists so benchmarks and contract
// tests have something to compare against; it blocks under contention and
// must not be used where a non-blocking claim is required.
package atomicflag

// Flagger is a shared Clear/Set state that concurrent callers race to change.
//
// Implementations must be safe for concurrent use:
//   - Any number of goroutines may call any method concurrently
//   - Of N concurrent TrySet() calls against a Clear flag, exactly one wins
type Flagger interface {
	// IsClear returns true if the flag is Clear at the moment of the read.
	IsClear() bool

	// IsSet returns true if the flag is Set at the moment of the read.
	IsSet() bool

	// TrySet transitions Clear -> Set. Returns true only for the caller
	// that performed the transition.
	TrySet() bool

	// TryClear transitions Set -> Clear. Returns true only for the caller
	// that performed the transition.
	TryClear() bool
}

// State is the observable value of a flag.
type State uint32

const (
	Clear State = iota
	Set
)

func (s State) String() string {
	switch s {
	case Clear:
		return "clear"
	case Set:
		return "set"
	default:
		return "invalid"
	}
}
