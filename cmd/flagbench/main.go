// Command flagbench compares the atomic flag against a mutex-guarded flag.
//
// Usage:
//
//	go run ./cmd/flagbench -n 10000000
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/randomizedcoder/go-atomic-flag/internal/atomicflag"
)

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	flag.Parse()

	fmt.Printf("Benchmarking flag operations (%d iterations)\n", *iterations)
	fmt.Println("─────────────────────────────────────────────────")

	report("IsSet", *iterations,
		timeLoop(*iterations, atomicflag.NewMutex(), func(f atomicflag.Flagger) { _ = f.IsSet() }),
		timeLoop(*iterations, atomicflag.New(), func(f atomicflag.Flagger) { _ = f.IsSet() }))

	report("TrySet + TryClear", *iterations,
		timeLoop(*iterations, atomicflag.NewMutex(), setClear),
		timeLoop(*iterations, atomicflag.New(), setClear))
}

func setClear(f atomicflag.Flagger) {
	f.TrySet()
	f.TryClear()
}

func timeLoop(n int, f atomicflag.Flagger, op func(atomicflag.Flagger)) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		op(f)
	}
	return time.Since(start)
}

func report(name string, n int, mutexDur, atomicDur time.Duration) {
	mutexPerOp := float64(mutexDur.Nanoseconds()) / float64(n)
	atomicPerOp := float64(atomicDur.Nanoseconds()) / float64(n)

	fmt.Printf("\nResults (%s per iteration):\n", name)
	fmt.Printf("  Mutex:   %v (%.2f ns/op)\n", mutexDur, mutexPerOp)
	fmt.Printf("  Atomic:  %v (%.2f ns/op)\n", atomicDur, atomicPerOp)

	if atomicPerOp < mutexPerOp {
		fmt.Printf("\n  Speedup:  %.2fx (Atomic faster)\n", mutexPerOp/atomicPerOp)
	} else {
		fmt.Printf("\n  Speedup:  %.2fx (Mutex faster)\n", atomicPerOp/mutexPerOp)
	}

	// Extrapolate to ops/second
	fmt.Printf("\nThroughput (theoretical max):\n")
	fmt.Printf("  Mutex:   %.2f M ops/sec\n", 1000/mutexPerOp)
	fmt.Printf("  Atomic:  %.2f M ops/sec\n", 1000/atomicPerOp)
}
