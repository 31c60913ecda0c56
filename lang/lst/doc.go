// Package lst implements the lossless syntax tree for APML documents.
//
// The tree is an ordered sequence of tokens — spaces, newlines,
// comments, and variable definitions — that corresponds byte-for-byte
// to the source text. Rendering any tree produced by [Parse] yields the
// original input exactly, which is what makes structure-preserving
// edits possible: the editor package mutates this token sequence and
// everything it does not touch re-renders unchanged.
//
// Variable values are split into quoting units only. Parameter
// expansion syntax inside a unit is carried as raw text and interpreted
// by the ast package.
package lst
