package lst

import "github.com/ardnew/apml/lang"

// Scan performs a count-only pass over the same grammar as [Parse]
// without building a tree. It exists for throughput measurement: the
// bench harness uses it to separate raw tokenization cost from tree
// construction cost. It returns the number of tokens the full parser
// would produce.
func Scan(src string) (int, error) {
	var (
		count int
		pos   int
	)

	skipQuoted := func(quote byte, escapes bool) error {
		open := pos
		pos++

		for pos < len(src) {
			c := src[pos]

			if escapes && c == '\\' {
				pos += 2

				continue
			}

			if c == quote {
				pos++

				return nil
			}

			pos++
		}

		line, col := position(src, open)

		return lang.NewParseError(lang.ErrUnterminatedQuote, src, line, col)
	}

	for pos < len(src) {
		switch src[pos] {
		case ' ', '\n':
			pos++
			count++

		case '#':
			for pos < len(src) && src[pos] != '\n' {
				pos++
			}

			count++

		default:
			nameStart := pos
			for pos < len(src) && isNameByte(src[pos]) {
				pos++
			}

			if pos == nameStart || pos >= len(src) || src[pos] != '=' {
				line, col := position(src, nameStart)

				return 0, lang.NewParseError(
					lang.ErrMalformedLine, src, line, col)
			}

			pos++ // '='

		value:
			for pos < len(src) {
				switch src[pos] {
				case ' ', '\n':
					break value

				case '\'':
					if err := skipQuoted('\'', false); err != nil {
						return 0, err
					}

				case '"':
					if err := skipQuoted('"', true); err != nil {
						return 0, err
					}

				case '\\':
					pos += 2

				case '$':
					if end, ok := bracedEndAt(src, pos); ok {
						pos = end
					} else {
						pos++
					}

				default:
					pos++
				}
			}

			count++
		}
	}

	return count, nil
}

// position computes the 1-based line and column of a byte offset.
func position(src string, offset int) (line, col int) {
	line, col = 1, 1

	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}
