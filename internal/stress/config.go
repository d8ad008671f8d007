// Package stress runs contention trials against a Flagger and checks the
// recorded history of every trial.
package stress

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("stress: invalid config")

// Config controls a stress run.
type Config struct {
	// Workers is the number of goroutines calling TrySet().
	Workers int

	// Clearers is the number of goroutines calling TryClear().
	Clearers int

	// Trials is the number of fresh flags to contend on.
	Trials int

	// OpsPerWorker is how many calls each goroutine makes per trial.
	OpsPerWorker int
}

// DefaultConfig returns a one-shot claim race: 100 setters, one call each.
func DefaultConfig() Config {
	return Config{
		Workers:      100,
		Clearers:     0,
		Trials:       1000,
		OpsPerWorker: 1,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	case c.Clearers < 0:
		return fmt.Errorf("%w: clearers must be >= 0, got %d", ErrInvalidConfig, c.Clearers)
	case c.Trials < 1:
		return fmt.Errorf("%w: trials must be >= 1, got %d", ErrInvalidConfig, c.Trials)
	case c.OpsPerWorker < 1:
		return fmt.Errorf("%w: ops per worker must be >= 1, got %d", ErrInvalidConfig, c.OpsPerWorker)
	}
	return nil
}

// oneShot reports whether the run is a pure claim race, where exactly one
// TrySet() per trial must win.
func (c Config) oneShot() bool {
	return c.Clearers == 0 && c.OpsPerWorker == 1
}
