package lst

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/apml/lang"
	"github.com/ardnew/apml/log"
)

// Option configures parsing behavior.
type Option func(*parser)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

// ParseReader parses an LST from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*LST, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, lang.WrapError(err)
	}

	return Parse(ctx, string(data), opts...)
}

// Parse parses source text into a lossless syntax tree.
//
// Parsing fails at the first offending line; no partial tree is
// returned. Rendering a successful result reproduces the input
// byte-for-byte.
func Parse(ctx context.Context, src string, opts ...Option) (*LST, error) {
	p := &parser{
		src:  src,
		line: 1,
		col:  1,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(src)))

	tree, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(tree.Tokens)))

	return tree, nil
}

// parser holds the parser state. It scans bytes: every structural
// delimiter of the grammar is ASCII, and raw text between delimiters
// is carried verbatim.
type parser struct {
	src    string
	pos    int
	line   int
	col    int
	logger log.Logger
}

// parseDocument scans the whole input into a token sequence.
func (p *parser) parseDocument() (*LST, error) {
	tree := new(LST)

	for !p.eof() {
		switch p.peek() {
		case ' ':
			p.advance()
			tree.Tokens = append(tree.Tokens, Space())

		case '\n':
			p.advance()
			tree.Tokens = append(tree.Tokens, Newline())

		case '#':
			p.advance()
			tree.Tokens = append(tree.Tokens, Comment(p.takeLine()))

		default:
			def, err := p.parseVariable()
			if err != nil {
				return nil, err
			}

			tree.Tokens = append(tree.Tokens, Variable(def))
		}
	}

	return tree, nil
}

// parseVariable parses one "<name>=<value>" definition.
func (p *parser) parseVariable() (*VariableDefinition, error) {
	name := p.takeName()
	if name == "" || p.eof() || p.peek() != '=' {
		return nil, p.fail(lang.ErrMalformedLine)
	}

	p.advance() // '='

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &VariableDefinition{
		Name:  name,
		Op:    OpAssign,
		Value: value,
	}, nil
}

// parseValue splits the raw value into quoting units. Expansion syntax
// is not interpreted here; it stays as raw text inside the units.
func (p *parser) parseValue() (Value, error) {
	var value Value

	for !p.eof() {
		switch p.peek() {
		case ' ', '\n':
			return value, nil

		case '\'':
			unit, err := p.parseSingleQuoted()
			if err != nil {
				return Value{}, err
			}

			value.Units = append(value.Units, unit)

		case '"':
			unit, err := p.parseDoubleQuoted()
			if err != nil {
				return Value{}, err
			}

			value.Units = append(value.Units, unit)

		default:
			value.Units = append(value.Units, p.parseUnquoted())
		}
	}

	return value, nil
}

// parseSingleQuoted scans a '...' unit. Single quotes have no escape
// mechanism; the unit ends at the next quote and may span newlines.
func (p *parser) parseSingleQuoted() (Unit, error) {
	line, col := p.line, p.col

	p.advance() // opening quote
	start := p.pos

	for !p.eof() {
		if p.peek() == '\'' {
			raw := p.src[start:p.pos]
			p.advance() // closing quote

			return Unit{Kind: UnitSingleQuoted, Raw: raw}, nil
		}

		p.advance()
	}

	return Unit{}, p.failAt(lang.ErrUnterminatedQuote, line, col)
}

// parseDoubleQuoted scans a "..." unit. A backslash escapes the next
// byte, so an escaped quote does not close the unit. The unit may span
// newlines.
func (p *parser) parseDoubleQuoted() (Unit, error) {
	line, col := p.line, p.col

	p.advance() // opening quote
	start := p.pos

	for !p.eof() {
		switch p.peek() {
		case '\\':
			p.advance()

			if !p.eof() {
				p.advance()
			}

		case '"':
			raw := p.src[start:p.pos]
			p.advance() // closing quote

			return Unit{Kind: UnitDoubleQuoted, Raw: raw}, nil

		default:
			p.advance()
		}
	}

	return Unit{}, p.failAt(lang.ErrUnterminatedQuote, line, col)
}

// parseUnquoted scans a bare run. The run ends at a space, newline, or
// quote. A backslash consumes the following byte even when it is a
// newline (line continuation). A "${" sequence consumes everything up
// to its matching '}' on the same line, so spaces inside a braced
// expansion do not terminate the run; a brace left open falls back to
// the ordinary rules and is diagnosed later by the AST layer.
func (p *parser) parseUnquoted() Unit {
	start := p.pos

scan:
	for !p.eof() {
		switch p.peek() {
		case ' ', '\n', '\'', '"':
			break scan

		case '\\':
			p.advance()

			if !p.eof() {
				p.advance()
			}

		case '$':
			if end, ok := p.bracedEnd(); ok {
				p.advanceTo(end)

				continue
			}

			p.advance()

		default:
			p.advance()
		}
	}

	return Unit{Kind: UnitUnquoted, Raw: p.src[start:p.pos]}
}

// bracedEnd reports the position just past the '}' matching a "${" at
// the current position, scanning within the current line only.
func (p *parser) bracedEnd() (int, bool) {
	return bracedEndAt(p.src, p.pos)
}

// bracedEndAt implements [parser.bracedEnd] over a bare offset so the
// count-only scanner can share it.
func bracedEndAt(src string, pos int) (int, bool) {
	if pos+1 >= len(src) || src[pos+1] != '{' {
		return 0, false
	}

	depth := 0

	for i := pos; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++

		case '\n':
			return 0, false

		case '{':
			depth++

		case '}':
			depth--

			if depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}

// takeName scans a variable name: one or more of [A-Za-z0-9_].
func (p *parser) takeName() string {
	start := p.pos

	for !p.eof() && isNameByte(p.peek()) {
		p.advance()
	}

	return p.src[start:p.pos]
}

// takeLine scans to (not including) the next newline.
func (p *parser) takeLine() string {
	start := p.pos

	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}

	return p.src[start:p.pos]
}

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) advance() {
	if p.eof() {
		return
	}

	if p.src[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}

	p.pos++
}

func (p *parser) advanceTo(end int) {
	for p.pos < end {
		p.advance()
	}
}

func (p *parser) fail(err error) error {
	return p.failAt(err, p.line, p.col)
}

func (p *parser) failAt(err error, line, col int) error {
	return lang.NewParseError(err, p.src, line, col)
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
