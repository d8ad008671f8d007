package atomicflag

import "sync"

// MutexFlag guards a bool with a sync.Mutex.
//
// This is the standard library approach, kept as a benchmark baseline.
// Contended callers block on the mutex, so it does not provide the
// non-blocking guarantee of AtomicFlag.
type MutexFlag struct {
	mu  sync.Mutex
	set bool
}

// NewMutex creates a Clear MutexFlag.
func NewMutex() *MutexFlag {
	return &MutexFlag{}
}

// IsClear returns true if the flag is Clear.
func (m *MutexFlag) IsClear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.set
}

// IsSet returns true if the flag is Set.
func (m *MutexFlag) IsSet() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set
}

// TrySet attempts the Clear -> Set transition under the mutex.
func (m *MutexFlag) TrySet() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.set {
		return false
	}
	m.set = true
	return true
}

// TryClear attempts the Set -> Clear transition under the mutex.
func (m *MutexFlag) TryClear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return false
	}
	m.set = false
	return true
}
