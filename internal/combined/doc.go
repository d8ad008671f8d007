// Package combined provides benchmarks that exercise a flag together with
// the history recorder.
//
// These benchmarks are closer to a real claim race than the isolated
// flag micro-benchmarks, as they include the cost of publishing each
// outcome to a single consumer.
package combined
