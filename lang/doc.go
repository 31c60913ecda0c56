// Package lang implements the APML definition language: newline-separated
// name=value variable assignments with shell-style quoting, comments, and
// POSIX-compatible parameter expansion syntax used to describe package
// metadata.
//
// The engine keeps two representations of a document:
//
//   - A lossless syntax tree ([lst.LST]): an ordered token sequence whose
//     rendering reproduces the source text byte-for-byte. Quoting structure
//     is resolved; expansion syntax is retained as raw text.
//
//   - A semantic tree ([ast]): typed values with quoting interpreted,
//     expansion operators parsed into structured modifiers, and glob
//     patterns parsed into matchable parts.
//
// Conversions run both ways. Emitting an AST node from an LST node is
// fallible (malformed expansion syntax is only detected here); lowering an
// AST node back to its minimal LST form is infallible and canonical.
// The [editor] package mutates the LST in place while preserving all
// unrelated formatting, spacing, and comments.
//
// # Grammar
//
// Informal EBNF of the surface language:
//
//	Document  → (Blank | Comment | Variable)* EOF
//	Comment   → '#' <text> '\n'
//	Variable  → Name '=' Value
//	Name      → [A-Za-z0-9_]+
//	Value     → (Unquoted | SingleQuoted | DoubleQuoted)*
//	Expansion → '$' Name | '${' Name Modifier? '}' | '${#' Name '}'
//
// Expansion modifiers mirror POSIX shell parameter expansion: substring
// (":o", ":o:l"), prefix/suffix stripping ("#", "##", "%", "%%"),
// replacement ("/", "//", "/#", "/%"), case conversion ("^", "^^", ",",
// ",,"), and default-value forms (":-", ":+", ":?").
//
// Expansions are parsed as data, never evaluated. There is no variable
// resolution, no command execution, and no control flow.
package lang
