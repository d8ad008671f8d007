package atomicflag

import "sync/atomic"

// noCopy may be added to structs which must not be copied
// after the first use.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// AtomicFlag is a lock-free Clear/Set flag.
//
// Every operation is a single atomic instruction: loads for the
// observers, one compare-and-swap for each transition. Callers that
// lose a race get false immediately and are never parked.
//
// The zero value is a Clear flag. AtomicFlag must not be copied after
// first use; share a *AtomicFlag instead.
type AtomicFlag struct {
	_ noCopy

	v atomic.Uint32 // uint32(Clear) or uint32(Set), nothing else
}

// New creates a Clear AtomicFlag.
func New() *AtomicFlag {
	return &AtomicFlag{}
}

// IsClear returns true if the flag is Clear.
//
// This performs a single atomic load.
func (f *AtomicFlag) IsClear() bool {
	return f.v.Load() == uint32(Clear)
}

// IsSet returns true if the flag is Set.
//
// This is its own atomic load rather than !IsClear(), so the answer
// always comes from one observation of the flag.
func (f *AtomicFlag) IsSet() bool {
	return f.v.Load() == uint32(Set)
}

// TrySet attempts the Clear -> Set transition.
//
// Returns true if this call performed it. Returns false if the flag
// was already Set; the state is left unchanged.
func (f *AtomicFlag) TrySet() bool {
	return f.v.CompareAndSwap(uint32(Clear), uint32(Set))
}

// TryClear attempts the Set -> Clear transition.
//
// Returns true if this call performed it. Returns false if the flag
// was already Clear; the state is left unchanged.
func (f *AtomicFlag) TryClear() bool {
	return f.v.CompareAndSwap(uint32(Set), uint32(Clear))
}

// State returns the current state from a single atomic load.
func (f *AtomicFlag) State() State {
	return State(f.v.Load())
}

// Claim runs fn if this call wins the Clear -> Set transition.
//
// fn runs in the calling goroutine. Losers return false immediately
// without waiting for the winner's fn to finish. The flag stays Set
// even if fn panics.
func (f *AtomicFlag) Claim(fn func()) bool {
	if !f.TrySet() {
		return false
	}
	fn()
	return true
}
