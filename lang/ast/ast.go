package ast

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/ardnew/apml/lang/lst"
)

// VariableValueKind identifies the variant of a [VariableValue].
type VariableValueKind int

// ValueString is a string value. It is the only value kind today; the
// enum keeps room for array values without reshaping callers.
const ValueString VariableValueKind = iota

// VariableValue is the typed value of a variable definition.
type VariableValue struct {
	Kind VariableValueKind
	Text *Text
}

// StringValue builds the conventional form of a plain string value:
// a single double-quoted unit with every character that is special in
// that context escaped. Lowering it renders `"<s>"`.
func StringValue(s string) VariableValue {
	var (
		parts []LiteralPart
		run   strings.Builder
	)

	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, LiteralPart{
				Kind: PartString,
				Text: run.String(),
			})
			run.Reset()
		}
	}

	for _, r := range s {
		switch r {
		case '"', '\\', '$', '`':
			flush()

			parts = append(parts, LiteralPart{Kind: PartEscaped, Char: r})

		default:
			run.WriteRune(r)
		}
	}

	flush()

	words := []Word{{Kind: WordLiteral, Parts: parts}}

	return VariableValue{
		Kind: ValueString,
		Text: &Text{Units: []TextUnit{
			{Kind: UnitDoubleQuote, Words: words},
		}},
	}
}

// String renders the value in canonical form.
func (v VariableValue) String() string {
	switch v.Kind {
	case ValueString:
		return v.Text.String()

	default:
		return ""
	}
}

// Equal reports whether two values are structurally equal.
func (v VariableValue) Equal(o VariableValue) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case ValueString:
		return v.Text.Equal(o.Text)

	default:
		return false
	}
}

// Hash returns a structural hash of the value. Structurally equal
// values hash identically; the canonical rendering is itself a
// structural serialization, so hashing it suffices.
func (v VariableValue) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(v.String()))

	return h.Sum64()
}

// VariableDefinition is the semantic form of an LST definition.
type VariableDefinition struct {
	Name  string
	Op    lst.VariableOp
	Value VariableValue
}

// String renders the definition in canonical form.
func (d VariableDefinition) String() string {
	return d.Name + d.Op.String() + d.Value.String()
}

// Equal reports whether two definitions are structurally equal.
func (d VariableDefinition) Equal(o VariableDefinition) bool {
	return d.Name == o.Name && d.Op == o.Op && d.Value.Equal(o.Value)
}

// Text is a section of value text, made up of quoting units.
// For example, `abc'123'` is an unquoted unit followed by a
// single-quoted unit; `"abc$0"` is one double-quoted unit.
type Text struct {
	Units []TextUnit
}

// String renders the text in canonical form.
func (t *Text) String() string {
	var sb strings.Builder
	for _, u := range t.Units {
		sb.WriteString(u.String())
	}

	return sb.String()
}

// Equal reports whether two texts are structurally equal.
func (t *Text) Equal(o *Text) bool {
	if t == nil || o == nil {
		return t == o
	}

	if len(t.Units) != len(o.Units) {
		return false
	}

	for i := range t.Units {
		if !t.Units[i].Equal(o.Units[i]) {
			return false
		}
	}

	return true
}

// TextUnitKind identifies the variant of a [TextUnit].
type TextUnitKind int

const (
	// UnitUnquoted is a bare sequence of words; expansions are active.
	UnitUnquoted TextUnitKind = iota

	// UnitSingleQuote is a raw literal; nothing inside is interpreted.
	UnitSingleQuote

	// UnitDoubleQuote is a quoted sequence of words; expansions are
	// active, spaces are literal.
	UnitDoubleQuote
)

// TextUnit is one quoting segment of semantic text.
// Words is meaningful for UnitUnquoted and UnitDoubleQuote;
// Raw for UnitSingleQuote.
type TextUnit struct {
	Kind  TextUnitKind
	Raw   string
	Words []Word
}

// String renders the unit in canonical form, quotes included.
func (u TextUnit) String() string {
	switch u.Kind {
	case UnitUnquoted:
		return renderWords(u.Words)

	case UnitSingleQuote:
		return "'" + u.Raw + "'"

	case UnitDoubleQuote:
		return `"` + renderWords(u.Words) + `"`

	default:
		return ""
	}
}

// Equal reports whether two units are structurally equal.
func (u TextUnit) Equal(o TextUnit) bool {
	if u.Kind != o.Kind || u.Raw != o.Raw {
		return false
	}

	return equalWords(u.Words, o.Words)
}

func renderWords(words []Word) string {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(w.String())
	}

	return sb.String()
}

func equalWords(a, b []Word) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

// WordKind identifies the variant of a [Word].
type WordKind int

const (
	// WordLiteral is a run of literal parts.
	WordLiteral WordKind = iota

	// WordUnbracedVariable is a "$name" expansion.
	WordUnbracedVariable

	// WordBracedVariable is a "${...}" expansion.
	WordBracedVariable
)

// Word is a part of a text unit: literal text or a variable expansion.
// Parts is meaningful for WordLiteral, Name for WordUnbracedVariable,
// and Expansion for WordBracedVariable.
type Word struct {
	Kind      WordKind
	Parts     []LiteralPart
	Name      string
	Expansion *BracedExpansion
}

// String renders the word in canonical form.
func (w Word) String() string {
	switch w.Kind {
	case WordLiteral:
		var sb strings.Builder
		for _, p := range w.Parts {
			sb.WriteString(p.String())
		}

		return sb.String()

	case WordUnbracedVariable:
		return "$" + w.Name

	case WordBracedVariable:
		return "${" + w.Expansion.String() + "}"

	default:
		return ""
	}
}

// Equal reports whether two words are structurally equal.
func (w Word) Equal(o Word) bool {
	if w.Kind != o.Kind || w.Name != o.Name {
		return false
	}

	if len(w.Parts) != len(o.Parts) {
		return false
	}

	for i := range w.Parts {
		if w.Parts[i] != o.Parts[i] {
			return false
		}
	}

	if (w.Expansion == nil) != (o.Expansion == nil) {
		return false
	}

	if w.Expansion != nil && !w.Expansion.Equal(o.Expansion) {
		return false
	}

	return true
}

// LiteralPartKind identifies the variant of a [LiteralPart].
type LiteralPartKind int

const (
	// PartString is a plain run of characters.
	PartString LiteralPartKind = iota

	// PartEscaped is a backslash-escaped character.
	PartEscaped

	// PartLineContinuation is a backslash-newline pair, consumed as
	// whitespace by evaluators.
	PartLineContinuation
)

// LiteralPart is one element of a literal word.
// Text is meaningful for PartString, Char for PartEscaped.
type LiteralPart struct {
	Kind LiteralPartKind
	Text string
	Char rune
}

// String renders the part in canonical form.
func (p LiteralPart) String() string {
	switch p.Kind {
	case PartString:
		return p.Text

	case PartEscaped:
		return "\\" + string(p.Char)

	case PartLineContinuation:
		return "\\\n"

	default:
		return ""
	}
}

// BracedExpansion is the body of a "${...}" expansion: a variable name
// and an optional modifier. The Length modifier renders as "#name";
// every other form renders as "name<modifier>".
type BracedExpansion struct {
	Name     string
	Modifier *ExpansionModifier
}

// String renders the expansion body (without the surrounding braces).
func (e *BracedExpansion) String() string {
	switch {
	case e.Modifier == nil:
		return e.Name

	case e.Modifier.Kind == ModLength:
		return "#" + e.Name

	default:
		return e.Name + e.Modifier.String()
	}
}

// Equal reports whether two expansions are structurally equal.
func (e *BracedExpansion) Equal(o *BracedExpansion) bool {
	if e.Name != o.Name {
		return false
	}

	if (e.Modifier == nil) != (o.Modifier == nil) {
		return false
	}

	return e.Modifier == nil || e.Modifier.Equal(o.Modifier)
}

// ModifierKind identifies the variant of an [ExpansionModifier].
type ModifierKind int

const (
	// ModSubstring selects [offset, offset+length) (":o" / ":o:l").
	ModSubstring ModifierKind = iota

	// ModStripShortestPrefix strips the shortest matching prefix ("#pat").
	ModStripShortestPrefix

	// ModStripLongestPrefix strips the longest matching prefix ("##pat").
	ModStripLongestPrefix

	// ModStripShortestSuffix strips the shortest matching suffix ("%pat").
	ModStripShortestSuffix

	// ModStripLongestSuffix strips the longest matching suffix ("%%pat").
	ModStripLongestSuffix

	// ModReplaceOnce replaces the first match ("/pat/str").
	ModReplaceOnce

	// ModReplaceAll replaces all matches ("//pat/str").
	ModReplaceAll

	// ModReplacePrefix replaces a match anchored at the start ("/#pat/str").
	ModReplacePrefix

	// ModReplaceSuffix replaces a match anchored at the end ("/%pat/str").
	ModReplaceSuffix

	// ModUpperOnce upper-cases the first match ("^pat").
	ModUpperOnce

	// ModUpperAll upper-cases all matches ("^^pat").
	ModUpperAll

	// ModLowerOnce lower-cases the first match (",pat").
	ModLowerOnce

	// ModLowerAll lower-cases all matches (",,pat").
	ModLowerAll

	// ModErrorOnUnset errors with a message when unset or null (":?str").
	ModErrorOnUnset

	// ModLength yields the length of the value ("${#name}").
	ModLength

	// ModWhenUnset substitutes a text when unset or null (":-str").
	ModWhenUnset

	// ModWhenSet substitutes a text when set and non-null (":+str").
	ModWhenSet
)

// ExpansionModifier is a parsed expansion operator. Which fields are
// meaningful depends on Kind: Offset/Length/HasLength for ModSubstring,
// Pattern for the strip/case kinds, Pattern+Text for the replace kinds,
// and Text alone for the default-value kinds.
//
// Pattern and Text subtrees are shared by pointer: copying a modifier
// never deep-copies them.
type ExpansionModifier struct {
	Kind      ModifierKind
	Offset    int
	Length    int
	HasLength bool
	Pattern   *GlobPattern
	Text      *Text
}

// String renders the modifier with its textual operator.
func (m *ExpansionModifier) String() string {
	switch m.Kind {
	case ModSubstring:
		if m.HasLength {
			return ":" + strconv.Itoa(m.Offset) + ":" + strconv.Itoa(m.Length)
		}

		return ":" + strconv.Itoa(m.Offset)

	case ModStripShortestPrefix:
		return "#" + m.Pattern.String()

	case ModStripLongestPrefix:
		return "##" + m.Pattern.String()

	case ModStripShortestSuffix:
		return "%" + m.Pattern.String()

	case ModStripLongestSuffix:
		return "%%" + m.Pattern.String()

	case ModReplaceOnce:
		return "/" + m.Pattern.String() + "/" + m.Text.String()

	case ModReplaceAll:
		return "//" + m.Pattern.String() + "/" + m.Text.String()

	case ModReplacePrefix:
		return "/#" + m.Pattern.String() + "/" + m.Text.String()

	case ModReplaceSuffix:
		return "/%" + m.Pattern.String() + "/" + m.Text.String()

	case ModUpperOnce:
		return "^" + m.Pattern.String()

	case ModUpperAll:
		return "^^" + m.Pattern.String()

	case ModLowerOnce:
		return "," + m.Pattern.String()

	case ModLowerAll:
		return ",," + m.Pattern.String()

	case ModErrorOnUnset:
		return ":?" + m.Text.String()

	case ModLength:
		// Rendered by BracedExpansion as "#name"; never inline.
		return ""

	case ModWhenUnset:
		return ":-" + m.Text.String()

	case ModWhenSet:
		return ":+" + m.Text.String()

	default:
		return ""
	}
}

// Equal reports whether two modifiers are structurally equal.
func (m *ExpansionModifier) Equal(o *ExpansionModifier) bool {
	if m.Kind != o.Kind ||
		m.Offset != o.Offset ||
		m.Length != o.Length ||
		m.HasLength != o.HasLength {
		return false
	}

	if (m.Pattern == nil) != (o.Pattern == nil) {
		return false
	}

	if m.Pattern != nil && !m.Pattern.Equal(o.Pattern) {
		return false
	}

	if (m.Text == nil) != (o.Text == nil) {
		return false
	}

	if m.Text != nil && !m.Text.Equal(o.Text) {
		return false
	}

	return true
}

// GlobPattern is an ordered sequence of glob parts.
type GlobPattern struct {
	Parts []GlobPart
}

// String renders the pattern as written.
func (p *GlobPattern) String() string {
	var sb strings.Builder
	for _, part := range p.Parts {
		sb.WriteString(part.String())
	}

	return sb.String()
}

// Equal reports whether two patterns are structurally equal.
func (p *GlobPattern) Equal(o *GlobPattern) bool {
	if len(p.Parts) != len(o.Parts) {
		return false
	}

	for i := range p.Parts {
		if p.Parts[i] != o.Parts[i] {
			return false
		}
	}

	return true
}

// GlobPartKind identifies the variant of a [GlobPart].
type GlobPartKind int

const (
	// GlobString matches a fixed string.
	GlobString GlobPartKind = iota

	// GlobEscaped matches one escaped character verbatim.
	GlobEscaped

	// GlobAnyString matches any run of characters ('*').
	GlobAnyString

	// GlobAnyChar matches exactly one character ('?').
	GlobAnyChar

	// GlobRange matches one character in a bracket class ("[...]").
	GlobRange
)

// GlobPart is one element of a glob pattern.
// Text is meaningful for GlobString and GlobRange (the raw class body),
// Char for GlobEscaped.
type GlobPart struct {
	Kind GlobPartKind
	Text string
	Char rune
}

// String renders the part as written.
func (p GlobPart) String() string {
	switch p.Kind {
	case GlobString:
		return p.Text

	case GlobEscaped:
		return "\\" + string(p.Char)

	case GlobAnyString:
		return "*"

	case GlobAnyChar:
		return "?"

	case GlobRange:
		return "[" + p.Text + "]"

	default:
		return ""
	}
}
