// Package editor provides structure-preserving edits over a lossless
// syntax tree.
//
// The editor assumes its input tree is valid and guarantees the output
// tree is valid, with newly added definitions written in the
// conventional style (double-quoted values, one definition per line).
// Tokens it does not touch re-render byte-for-byte.
package editor

import (
	"iter"

	"github.com/ardnew/apml/lang/ast"
	"github.com/ardnew/apml/lang/lst"
)

// Editor wraps a lossless syntax tree with a mutation API.
type Editor struct {
	tree *lst.LST
}

// Wrap wraps the given tree for editing. The editor takes ownership;
// the caller must not mutate the tree while the editor holds it.
func Wrap(tree *lst.LST) *Editor {
	return &Editor{tree: tree}
}

// Unwrap returns the underlying tree.
func (e *Editor) Unwrap() *lst.LST { return e.tree }

// String renders the current tree as source text.
func (e *Editor) String() string { return e.tree.String() }

// Tokens returns the current token sequence. The slice aliases the
// tree; edits through the editor invalidate it.
func (e *Editor) Tokens() []lst.Token { return e.tree.Tokens }

// Variables iterates over all variable definitions with their token
// index.
func (e *Editor) Variables() iter.Seq2[int, *lst.VariableDefinition] {
	return func(yield func(int, *lst.VariableDefinition) bool) {
		for i, tok := range e.tree.Tokens {
			if tok.Kind != lst.TokenVariable {
				continue
			}

			if !yield(i, tok.Var) {
				return
			}
		}
	}
}

// ASTVariables interprets every definition into semantic form,
// failing on the first value that does not emit.
func (e *Editor) ASTVariables() ([]ast.VariableDefinition, error) {
	var defs []ast.VariableDefinition

	for _, lv := range e.Variables() {
		def, err := ast.EmitDefinition(lv)
		if err != nil {
			return nil, err
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// Keys iterates over all variable definition names in document order.
func (e *Editor) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range e.Variables() {
			if !yield(v.Name) {
				return
			}
		}
	}
}

// Comments iterates over all comment lines (text after '#').
func (e *Editor) Comments() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tok := range e.tree.Tokens {
			if tok.Kind != lst.TokenComment {
				continue
			}

			if !yield(tok.Text) {
				return
			}
		}
	}
}

// FindVar locates the first definition of name and its token index.
func (e *Editor) FindVar(name string) (int, *lst.VariableDefinition, bool) {
	for i, v := range e.Variables() {
		if v.Name == name {
			return i, v, true
		}
	}

	return 0, nil, false
}

// EnsureEndNewline appends a newline unless the document is empty or
// already ends with one.
func (e *Editor) EnsureEndNewline() {
	tokens := e.tree.Tokens
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind == lst.TokenNewline {
		return
	}

	e.tree.Tokens = append(tokens, lst.Newline())
}

// AppendVar appends a new assignment of value to name. When after
// names an existing variable, the new definition is inserted on its
// own line directly below that variable's line; otherwise (or when
// after is empty) it is appended at the end of the document.
func (e *Editor) AppendVar(name string, value ast.VariableValue, after string) {
	token := lst.Variable(&lst.VariableDefinition{
		Name:  name,
		Op:    lst.OpAssign,
		Value: value.Lower(),
	})

	if after != "" {
		if index, _, ok := e.FindVar(after); ok {
			// Skip past the rest of that line, then past its newline.
			rest := 0
			for index+rest < len(e.tree.Tokens) &&
				e.tree.Tokens[index+rest].Kind != lst.TokenNewline {
				rest++
			}

			at := index + rest + 1

			if at <= len(e.tree.Tokens) {
				e.insert(at, token, lst.Newline())

				return
			}
		}
	}

	e.EnsureEndNewline()
	e.tree.Tokens = append(e.tree.Tokens, token, lst.Newline())
}

// ReplaceVar rewrites the first definition of name in place, keeping
// everything around it untouched. When name is not defined, the new
// definition is appended at the end of the document.
func (e *Editor) ReplaceVar(name string, value ast.VariableValue) {
	token := lst.Variable(&lst.VariableDefinition{
		Name:  name,
		Op:    lst.OpAssign,
		Value: value.Lower(),
	})

	if index, _, ok := e.FindVar(name); ok {
		e.tree.Tokens[index] = token

		return
	}

	e.EnsureEndNewline()
	e.tree.Tokens = append(e.tree.Tokens, token, lst.Newline())
}

// RemoveVar removes the definition at the given token index, which
// must point at a variable token. All indexes are invalidated after a
// removal.
//
// Everything from the definition through the next newline is removed.
// When the definition's line is directly preceded by comment lines and
// the line after it holds no definition, that run of preceding
// comments is removed as well. A comment line qualifies only when it
// itself follows a newline, so a comment opening the document is
// always kept.
func (e *Editor) RemoveVar(index int) {
	tokens := e.tree.Tokens

	// Tokens from the definition to (not including) its newline.
	rest := 0
	for index+rest < len(tokens) &&
		tokens[index+rest].Kind != lst.TokenNewline {
		rest++
	}

	start := index

	if index >= 2 && tokens[index-2].Kind == lst.TokenComment &&
		!lineAfterHasVariable(tokens, index) {
		for start >= 3 &&
			tokens[start-1].Kind == lst.TokenNewline &&
			tokens[start-2].Kind == lst.TokenComment &&
			tokens[start-3].Kind == lst.TokenNewline {
			start -= 2
		}
	}

	end := index + rest // the newline, or one past the last token
	if end >= len(tokens) {
		end = len(tokens) - 1
	}

	e.tree.Tokens = append(tokens[:start], tokens[end+1:]...)
}

// lineAfterHasVariable reports whether the line following the one
// containing tokens[index] holds a variable definition.
func lineAfterHasVariable(tokens []lst.Token, index int) bool {
	i := index
	for i < len(tokens) && tokens[i].Kind != lst.TokenNewline {
		i++
	}

	i++ // the newline

	for ; i < len(tokens) && tokens[i].Kind != lst.TokenNewline; i++ {
		if tokens[i].Kind == lst.TokenVariable {
			return true
		}
	}

	return false
}

// insert places the given tokens at position at, shifting the rest.
func (e *Editor) insert(at int, tokens ...lst.Token) {
	e.tree.Tokens = append(
		e.tree.Tokens[:at],
		append(tokens, e.tree.Tokens[at:]...)...)
}
