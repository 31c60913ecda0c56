// Package ast implements the semantic tree for APML values.
//
// Where the lst package carries value text as raw quoting units, this
// package interprets that text: literal runs, escapes, "$name" and
// "${...}" expansions with their POSIX modifiers, and the glob
// patterns some modifiers take. [EmitValue] performs the fallible
// interpretation; the [VariableValue.Lower] method renders a semantic
// value back to a lossless one, and emitting that result yields an
// equal tree.
//
// [GlobPattern] also evaluates: its query methods implement shell
// pattern matching with shortest/longest anchoring and
// leftmost-longest replacement.
package ast
