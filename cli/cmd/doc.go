// Package cmd implements the apml subcommands.
//
// Every command parses its source document into a lossless tree, works
// through the editor package, and renders the result back, so
// formatting and comments the command does not touch survive
// byte-for-byte.
package cmd
