package lst

import "strings"

// LST is a lossless syntax tree: an ordered sequence of tokens whose
// concatenated rendering reproduces the source text byte-for-byte.
// That round-trip property is the defining invariant of the type and
// holds for every tree produced by [Parse].
type LST struct {
	Tokens []Token
}

// String renders the tree back to source text.
func (t *LST) String() string {
	var sb strings.Builder
	for _, tok := range t.Tokens {
		sb.WriteString(tok.String())
	}

	return sb.String()
}

// Equal reports whether two trees are structurally identical.
func (t *LST) Equal(o *LST) bool {
	if len(t.Tokens) != len(o.Tokens) {
		return false
	}

	for i := range t.Tokens {
		if !t.Tokens[i].Equal(o.Tokens[i]) {
			return false
		}
	}

	return true
}

// TokenKind identifies the variant of a [Token].
type TokenKind int

const (
	// TokenSpace is a single space character (' ', ASCII 0x20).
	TokenSpace TokenKind = iota

	// TokenNewline is a single newline character ('\n', ASCII 0x0A).
	TokenNewline

	// TokenComment is a comment line ("#<text>").
	TokenComment

	// TokenVariable is a variable definition ("<name>=<value>").
	TokenVariable
)

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenSpace:
		return "Space"

	case TokenNewline:
		return "Newline"

	case TokenComment:
		return "Comment"

	case TokenVariable:
		return "Variable"

	default:
		return "Unknown"
	}
}

// Token is one structural unit of the source text.
// Exactly one payload field is meaningful based on Kind.
type Token struct {
	Kind TokenKind
	Text string              // comment text after '#' (TokenComment)
	Var  *VariableDefinition // definition (TokenVariable)
}

// Space returns a space token.
func Space() Token { return Token{Kind: TokenSpace} }

// Newline returns a newline token.
func Newline() Token { return Token{Kind: TokenNewline} }

// Comment returns a comment token holding everything after '#'.
func Comment(text string) Token {
	return Token{Kind: TokenComment, Text: text}
}

// Variable returns a variable definition token.
func Variable(def *VariableDefinition) Token {
	return Token{Kind: TokenVariable, Var: def}
}

// String renders the token as source text.
func (t Token) String() string {
	switch t.Kind {
	case TokenSpace:
		return " "

	case TokenNewline:
		return "\n"

	case TokenComment:
		return "#" + t.Text

	case TokenVariable:
		return t.Var.String()

	default:
		return ""
	}
}

// Equal reports whether two tokens are structurally identical.
func (t Token) Equal(o Token) bool {
	if t.Kind != o.Kind || t.Text != o.Text {
		return false
	}

	if (t.Var == nil) != (o.Var == nil) {
		return false
	}

	if t.Var != nil && !t.Var.Equal(o.Var) {
		return false
	}

	return true
}

// VariableOp is the assignment operator of a variable definition.
// Only plain assignment exists today; the enum keeps room for
// shell-style append or conditional forms without reshaping
// [VariableDefinition].
type VariableOp int

// OpAssign is plain assignment ("=").
const OpAssign VariableOp = iota

// String renders the operator as source text.
func (op VariableOp) String() string {
	switch op {
	case OpAssign:
		return "="

	default:
		return ""
	}
}

// VariableDefinition is a "<name><op><value>" line.
type VariableDefinition struct {
	Name  string
	Op    VariableOp
	Value Value
}

// String renders the definition as source text.
func (d *VariableDefinition) String() string {
	return d.Name + d.Op.String() + d.Value.String()
}

// Equal reports whether two definitions are structurally identical.
func (d *VariableDefinition) Equal(o *VariableDefinition) bool {
	return d.Name == o.Name && d.Op == o.Op && d.Value.Equal(o.Value)
}

// UnitKind identifies the quoting context of a [Unit].
type UnitKind int

const (
	// UnitUnquoted is a bare run of value text.
	UnitUnquoted UnitKind = iota

	// UnitSingleQuoted is a run enclosed in single quotes.
	UnitSingleQuoted

	// UnitDoubleQuoted is a run enclosed in double quotes.
	UnitDoubleQuoted
)

// String returns a string representation of the unit kind.
func (k UnitKind) String() string {
	switch k {
	case UnitUnquoted:
		return "Unquoted"

	case UnitSingleQuoted:
		return "SingleQuoted"

	case UnitDoubleQuoted:
		return "DoubleQuoted"

	default:
		return "Unknown"
	}
}

// Unit is one quoting segment of a variable value. Raw holds the text
// between the quote delimiters exactly as written; expansion syntax
// inside it is not interpreted at this layer.
type Unit struct {
	Kind UnitKind
	Raw  string
}

// String renders the unit as source text, quotes included.
func (u Unit) String() string {
	switch u.Kind {
	case UnitUnquoted:
		return u.Raw

	case UnitSingleQuoted:
		return "'" + u.Raw + "'"

	case UnitDoubleQuoted:
		return `"` + u.Raw + `"`

	default:
		return ""
	}
}

// Value is the raw value of a variable definition: a lossless sequence
// of quoting units. An empty value has no units.
type Value struct {
	Units []Unit
}

// String renders the value as source text.
func (v Value) String() string {
	var sb strings.Builder
	for _, u := range v.Units {
		sb.WriteString(u.String())
	}

	return sb.String()
}

// Equal reports whether two values are structurally identical.
func (v Value) Equal(o Value) bool {
	if len(v.Units) != len(o.Units) {
		return false
	}

	for i := range v.Units {
		if v.Units[i] != o.Units[i] {
			return false
		}
	}

	return true
}
