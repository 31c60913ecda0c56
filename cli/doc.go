// Package cli contains the command line interface for apml.
//
// # Usage
//
//	apml list [--filter=<expr>] [--keys] [<source>]
//	apml get <name> [<source>]
//	apml set <name> <value> [--after=<name>] [--write] [<source>]
//	apml unset <name> [--write] [<source>]
//	apml fmt [--json|--yaml] [<source>]
//	apml bench <tree> [--count=N] [--emit|--scan]
//
// Every command reads from a source file or stdin ("-", the default),
// and the editing commands print the rewritten document to stdout
// unless --write rewrites the file in place.
//
// # Logging options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json, pretty)
//   - --log-caller: include caller information in log output
//
// # Profiling options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (cpu, heap, allocs, trace, ...)
//   - --pprof-dir: profile output directory
package cli
