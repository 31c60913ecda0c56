// Package profile provides optional runtime profiling for the apml
// tool.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (the default), every operation is a no-op
// with zero runtime overhead:
//
//	go build -tags pprof ./...
//
// Profile files are written to the configured directory with names
// matching the profiling mode (e.g. cpu.pprof, mem.pprof) and analyzed
// with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
