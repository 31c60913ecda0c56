package ast

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/apml/lang"
	"github.com/ardnew/apml/lang/lst"
)

// EmitDefinition interprets an LST definition into its semantic form.
func EmitDefinition(def *lst.VariableDefinition) (VariableDefinition, error) {
	value, err := EmitValue(def.Value)
	if err != nil {
		return VariableDefinition{}, lang.WrapError(err).
			With(slog.String("variable", def.Name))
	}

	return VariableDefinition{
		Name:  def.Name,
		Op:    def.Op,
		Value: value,
	}, nil
}

// EmitValue interprets a raw LST value, parsing the expansion and glob
// syntax its units carry as uninterpreted text. It is total over
// well-formed LST input: every legally-parsed value maps to exactly one
// semantic value or one error.
func EmitValue(v lst.Value) (VariableValue, error) {
	text, err := emitText(v)
	if err != nil {
		return VariableValue{}, err
	}

	return VariableValue{Kind: ValueString, Text: text}, nil
}

// emitText converts LST quoting units into semantic text units.
func emitText(v lst.Value) (*Text, error) {
	text := new(Text)

	for _, unit := range v.Units {
		switch unit.Kind {
		case lst.UnitSingleQuoted:
			// No expansion, no escapes: the raw text is the literal.
			text.Units = append(text.Units, TextUnit{
				Kind: UnitSingleQuote,
				Raw:  unit.Raw,
			})

		case lst.UnitUnquoted, lst.UnitDoubleQuoted:
			words, err := emitWords(unit.Raw)
			if err != nil {
				return nil, err
			}

			kind := UnitUnquoted
			if unit.Kind == lst.UnitDoubleQuoted {
				kind = UnitDoubleQuote
			}

			text.Units = append(text.Units, TextUnit{
				Kind:  kind,
				Words: words,
			})
		}
	}

	return text, nil
}

// cursor is a byte cursor over one unit of raw text.
type cursor struct {
	src string
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) peek() byte { return c.src[c.pos] }

// emitWords splits raw unit text into literal and expansion words.
func emitWords(src string) ([]Word, error) {
	var words []Word

	c := &cursor{src: src}

	for !c.eof() {
		var (
			word Word
			err  error
		)

		if c.peek() == '$' {
			word, err = c.emitVariable()
		} else {
			word, err = c.emitLiteral()
		}

		if err != nil {
			return nil, err
		}

		words = append(words, word)
	}

	return words, nil
}

// emitLiteral scans one literal word: everything up to the next '$'.
func (c *cursor) emitLiteral() (Word, error) {
	var (
		parts []LiteralPart
		start = c.pos
	)

	flush := func() {
		if c.pos > start {
			parts = append(parts, LiteralPart{
				Kind: PartString,
				Text: c.src[start:c.pos],
			})
		}
	}

	for !c.eof() && c.peek() != '$' {
		if c.peek() != '\\' {
			c.pos++

			continue
		}

		flush()
		c.pos++ // backslash

		if c.eof() {
			return Word{}, lang.ErrBadEscape.
				With(slog.String("text", c.src))
		}

		if c.peek() == '\n' {
			parts = append(parts, LiteralPart{Kind: PartLineContinuation})
			c.pos++
		} else {
			r, size := utf8.DecodeRuneInString(c.src[c.pos:])
			parts = append(parts, LiteralPart{Kind: PartEscaped, Char: r})
			c.pos += size
		}

		start = c.pos
	}

	flush()

	return Word{Kind: WordLiteral, Parts: parts}, nil
}

// emitVariable scans one "$name" or "${...}" word.
func (c *cursor) emitVariable() (Word, error) {
	c.pos++ // '$'

	if c.eof() {
		return Word{}, lang.ErrBadSubstitution.
			With(slog.String("text", c.src))
	}

	if c.peek() == '{' {
		c.pos++

		body, err := c.takeBraced()
		if err != nil {
			return Word{}, err
		}

		exp, err := emitExpansion(body)
		if err != nil {
			return Word{}, err
		}

		return Word{Kind: WordBracedVariable, Expansion: exp}, nil
	}

	name := c.takeName()
	if name == "" {
		return Word{}, lang.ErrBadSubstitution.
			With(slog.String("text", c.src))
	}

	return Word{Kind: WordUnbracedVariable, Name: name}, nil
}

// takeBraced scans to the '}' matching an already-consumed "${",
// honoring nesting and escapes, and returns the body between them.
func (c *cursor) takeBraced() (string, error) {
	start := c.pos
	depth := 1

	for !c.eof() {
		switch c.peek() {
		case '\\':
			c.pos++

		case '{':
			depth++

		case '}':
			depth--

			if depth == 0 {
				body := c.src[start:c.pos]
				c.pos++

				return body, nil
			}
		}

		c.pos++
	}

	return "", lang.ErrUnterminatedExpansion.
		With(slog.String("text", c.src))
}

// takeName scans a variable name: one or more of [A-Za-z0-9_].
func (c *cursor) takeName() string {
	start := c.pos

	for !c.eof() && isNameByte(c.peek()) {
		c.pos++
	}

	return c.src[start:c.pos]
}

// emitExpansion parses the body of a "${...}" expansion.
func emitExpansion(body string) (*BracedExpansion, error) {
	if body == "" {
		return nil, lang.ErrBadSubstitution.
			With(slog.String("expansion", body))
	}

	// "${#name}" is the whole-body length form: same glyph as prefix
	// stripping, distinguished by having no pattern argument.
	if body[0] == '#' {
		name := body[1:]
		if name == "" || !isName(name) {
			return nil, lang.ErrBadSubstitution.
				With(slog.String("expansion", body))
		}

		return &BracedExpansion{
			Name:     name,
			Modifier: &ExpansionModifier{Kind: ModLength},
		}, nil
	}

	i := 0
	for i < len(body) && isNameByte(body[i]) {
		i++
	}

	if i == 0 {
		return nil, lang.ErrBadSubstitution.
			With(slog.String("expansion", body))
	}

	exp := &BracedExpansion{Name: body[:i]}

	if i == len(body) {
		return exp, nil
	}

	mod, err := emitModifier(body[i:])
	if err != nil {
		return nil, err
	}

	exp.Modifier = mod

	return exp, nil
}

// emitModifier parses an expansion modifier, dispatching on its
// operator prefix.
func emitModifier(s string) (*ExpansionModifier, error) {
	switch s[0] {
	case ':':
		return emitColonModifier(s[1:])

	case '#':
		if strings.HasPrefix(s, "##") {
			return emitPatternModifier(ModStripLongestPrefix, s[2:])
		}

		return emitPatternModifier(ModStripShortestPrefix, s[1:])

	case '%':
		if strings.HasPrefix(s, "%%") {
			return emitPatternModifier(ModStripLongestSuffix, s[2:])
		}

		return emitPatternModifier(ModStripShortestSuffix, s[1:])

	case '/':
		return emitReplaceModifier(s[1:])

	case '^':
		if strings.HasPrefix(s, "^^") {
			return emitPatternModifier(ModUpperAll, s[2:])
		}

		return emitPatternModifier(ModUpperOnce, s[1:])

	case ',':
		if strings.HasPrefix(s, ",,") {
			return emitPatternModifier(ModLowerAll, s[2:])
		}

		return emitPatternModifier(ModLowerOnce, s[1:])

	default:
		return nil, lang.ErrUnknownModifier.
			With(slog.String("modifier", s))
	}
}

// emitColonModifier parses the ":"-prefixed forms: default-value
// substitutions and numeric substrings.
func emitColonModifier(s string) (*ExpansionModifier, error) {
	if s == "" {
		return nil, lang.ErrUnknownModifier.
			With(slog.String("modifier", ":"))
	}

	switch s[0] {
	case '-':
		return emitTextModifier(ModWhenUnset, s[1:])

	case '+':
		return emitTextModifier(ModWhenSet, s[1:])

	case '?':
		return emitTextModifier(ModErrorOnUnset, s[1:])
	}

	// ":offset" or ":offset:length". Bounds must be non-negative
	// integers; anything else (including a '-' sign) is rejected.
	offset, rest, err := takeNumber(s)
	if err != nil {
		return nil, err
	}

	mod := &ExpansionModifier{Kind: ModSubstring, Offset: offset}

	if rest == "" {
		return mod, nil
	}

	if rest[0] != ':' {
		return nil, lang.ErrBadOffset.With(slog.String("bounds", s))
	}

	length, rest, err := takeNumber(rest[1:])
	if err != nil {
		return nil, err
	}

	if rest != "" {
		return nil, lang.ErrBadOffset.With(slog.String("bounds", s))
	}

	mod.Length = length
	mod.HasLength = true

	return mod, nil
}

// emitTextModifier parses the forms carrying a text argument.
func emitTextModifier(
	kind ModifierKind,
	arg string,
) (*ExpansionModifier, error) {
	text, err := emitModText(arg)
	if err != nil {
		return nil, err
	}

	return &ExpansionModifier{Kind: kind, Text: text}, nil
}

// emitPatternModifier parses the forms carrying a pattern argument.
// An empty pattern is legal (bash allows "${v^^}").
func emitPatternModifier(
	kind ModifierKind,
	arg string,
) (*ExpansionModifier, error) {
	pattern, err := emitPattern(arg)
	if err != nil {
		return nil, err
	}

	return &ExpansionModifier{Kind: kind, Pattern: pattern}, nil
}

// emitReplaceModifier parses the "/"-family: the anchor glyph, then
// pattern and replacement split at the first unescaped '/'. A missing
// separator is the deletion form: the replacement is empty text.
func emitReplaceModifier(s string) (*ExpansionModifier, error) {
	kind := ModReplaceOnce

	if s != "" {
		switch s[0] {
		case '/':
			kind = ModReplaceAll
			s = s[1:]

		case '#':
			kind = ModReplacePrefix
			s = s[1:]

		case '%':
			kind = ModReplaceSuffix
			s = s[1:]
		}
	}

	rawPat, rawRepl := splitReplace(s)

	pattern, err := emitPattern(rawPat)
	if err != nil {
		return nil, err
	}

	text, err := emitModText(rawRepl)
	if err != nil {
		return nil, err
	}

	return &ExpansionModifier{
		Kind:    kind,
		Pattern: pattern,
		Text:    text,
	}, nil
}

// splitReplace splits "pat/repl" at the first unescaped '/' outside a
// bracket range.
func splitReplace(s string) (pat, repl string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++

		case '[':
			if end, ok := rangeEnd(s, i); ok {
				i = end
			}

		case '/':
			return s[:i], s[i+1:]
		}
	}

	return s, ""
}

// emitModText parses a modifier text argument: quoting units are
// active inside it, exactly as in a value.
func emitModText(src string) (*Text, error) {
	text := new(Text)
	pos := 0

	emitRun := func(kind TextUnitKind, raw string) error {
		words, err := emitWords(raw)
		if err != nil {
			return err
		}

		text.Units = append(text.Units, TextUnit{Kind: kind, Words: words})

		return nil
	}

	for pos < len(src) {
		switch src[pos] {
		case '\'':
			end := strings.IndexByte(src[pos+1:], '\'')
			if end < 0 {
				return nil, lang.ErrUnterminatedQuote.
					With(slog.String("text", src))
			}

			text.Units = append(text.Units, TextUnit{
				Kind: UnitSingleQuote,
				Raw:  src[pos+1 : pos+1+end],
			})
			pos += end + 2

		case '"':
			i := pos + 1

			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' {
					i++
				}

				i++
			}

			if i >= len(src) {
				return nil, lang.ErrUnterminatedQuote.
					With(slog.String("text", src))
			}

			if err := emitRun(UnitDoubleQuote, src[pos+1:i]); err != nil {
				return nil, err
			}

			pos = i + 1

		default:
			i := pos

			for i < len(src) && src[i] != '\'' && src[i] != '"' {
				if src[i] == '\\' {
					i++
				}

				i++
			}

			if i > len(src) {
				i = len(src)
			}

			if err := emitRun(UnitUnquoted, src[pos:i]); err != nil {
				return nil, err
			}

			pos = i
		}
	}

	return text, nil
}

// emitPattern parses glob syntax into matchable parts.
func emitPattern(src string) (*GlobPattern, error) {
	pattern := new(GlobPattern)
	pos := 0
	start := 0

	flush := func() {
		if pos > start {
			pattern.Parts = append(pattern.Parts, GlobPart{
				Kind: GlobString,
				Text: src[start:pos],
			})
		}
	}

	for pos < len(src) {
		switch src[pos] {
		case '*':
			flush()

			pattern.Parts = append(pattern.Parts, GlobPart{Kind: GlobAnyString})
			pos++
			start = pos

		case '?':
			flush()

			pattern.Parts = append(pattern.Parts, GlobPart{Kind: GlobAnyChar})
			pos++
			start = pos

		case '\\':
			flush()
			pos++

			if pos >= len(src) {
				return nil, lang.ErrBadEscape.
					With(slog.String("pattern", src))
			}

			r, size := utf8.DecodeRuneInString(src[pos:])
			pattern.Parts = append(pattern.Parts, GlobPart{
				Kind: GlobEscaped,
				Char: r,
			})
			pos += size
			start = pos

		case '[':
			end, ok := rangeEnd(src, pos)
			if !ok {
				return nil, lang.ErrUnterminatedRange.
					With(slog.String("pattern", src))
			}

			flush()

			pattern.Parts = append(pattern.Parts, GlobPart{
				Kind: GlobRange,
				Text: src[pos+1 : end],
			})
			pos = end + 1
			start = pos

		default:
			pos++
		}
	}

	flush()

	return pattern, nil
}

// rangeEnd locates the ']' closing a bracket range opened at src[open].
// A ']' directly after the opening bracket (or after a leading '!' or
// '^' negation) is a class member, not the terminator.
func rangeEnd(src string, open int) (int, bool) {
	i := open + 1

	if i < len(src) && (src[i] == '!' || src[i] == '^') {
		i++
	}

	if i < len(src) && src[i] == ']' {
		i++
	}

	for ; i < len(src); i++ {
		if src[i] == ']' {
			return i, true
		}
	}

	return 0, false
}

// takeNumber parses a leading run of digits.
func takeNumber(s string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	if i == 0 {
		return 0, "", lang.ErrBadOffset.With(slog.String("bounds", s))
	}

	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", lang.ErrBadOffset.Wrap(err)
	}

	return n, s[i:], nil
}

func isName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}

	return s != ""
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
