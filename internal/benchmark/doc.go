// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for the hot paths of a single
// openinclude invocation:
//   - include directive location on a source line
//   - $base_path[N] template expansion
//   - resolution through the adjacent, configured and engine layers
//   - CUE configuration loading and settings import
//
// The profile can feed PGO builds:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
