package ast

import (
	"strings"
	"unicode/utf8"
)

// Match reports whether the pattern matches all of s.
func (p *GlobPattern) Match(s string) bool {
	return matchParts(p.Parts, s)
}

// MatchPrefix reports the byte length of the shortest (or longest)
// prefix of s the pattern matches. Candidate prefixes end only on rune
// boundaries.
func (p *GlobPattern) MatchPrefix(s string, longest bool) (int, bool) {
	bounds := boundaries(s)

	if longest {
		for i := len(bounds) - 1; i >= 0; i-- {
			if p.Match(s[:bounds[i]]) {
				return bounds[i], true
			}
		}
	} else {
		for _, n := range bounds {
			if p.Match(s[:n]) {
				return n, true
			}
		}
	}

	return 0, false
}

// MatchSuffix reports the byte offset where the shortest (or longest)
// matching suffix of s begins. Candidate suffixes start only on rune
// boundaries.
func (p *GlobPattern) MatchSuffix(s string, longest bool) (int, bool) {
	bounds := boundaries(s)

	if longest {
		for _, n := range bounds {
			if p.Match(s[n:]) {
				return n, true
			}
		}
	} else {
		for i := len(bounds) - 1; i >= 0; i-- {
			if p.Match(s[bounds[i]:]) {
				return bounds[i], true
			}
		}
	}

	return 0, false
}

// Find locates the leftmost match in s, preferring the longest match
// at that position. It returns the byte range [start, end).
func (p *GlobPattern) Find(s string) (start, end int, ok bool) {
	for _, from := range boundaries(s) {
		bounds := boundaries(s[from:])

		for i := len(bounds) - 1; i >= 0; i-- {
			if p.Match(s[from : from+bounds[i]]) {
				return from, from + bounds[i], true
			}
		}
	}

	return 0, 0, false
}

// StripPrefix removes the shortest (or longest) matching prefix,
// returning s unchanged when nothing matches.
func (p *GlobPattern) StripPrefix(s string, longest bool) string {
	if n, ok := p.MatchPrefix(s, longest); ok {
		return s[n:]
	}

	return s
}

// StripSuffix removes the shortest (or longest) matching suffix,
// returning s unchanged when nothing matches.
func (p *GlobPattern) StripSuffix(s string, longest bool) string {
	if n, ok := p.MatchSuffix(s, longest); ok {
		return s[:n]
	}

	return s
}

// ReplaceOnce replaces the leftmost-longest match with repl.
func (p *GlobPattern) ReplaceOnce(s, repl string) string {
	start, end, ok := p.Find(s)
	if !ok {
		return s
	}

	return s[:start] + repl + s[end:]
}

// ReplaceAll replaces every non-overlapping leftmost-longest match
// with repl, scanning left to right.
func (p *GlobPattern) ReplaceAll(s, repl string) string {
	var sb strings.Builder

	pos := 0
	consumed := false

	for pos <= len(s) {
		start, end, ok := p.Find(s[pos:])
		if !ok {
			break
		}

		if end > start {
			sb.WriteString(s[pos : pos+start])
			sb.WriteString(repl)

			pos += end
			consumed = true

			continue
		}

		// An empty match flush against a non-empty one lies inside the
		// span just replaced and is not counted again (${v//*/x} on
		// "abc" is "x", not "xx").
		if !consumed {
			sb.WriteString(s[pos : pos+start])
			sb.WriteString(repl)
		}

		// Carry one rune forward so the scan advances.
		if pos+start >= len(s) {
			pos += start

			break
		}

		_, size := utf8.DecodeRuneInString(s[pos+start:])
		sb.WriteString(s[pos+start : pos+start+size])
		pos += start + size
		consumed = false
	}

	sb.WriteString(s[pos:])

	return sb.String()
}

// ReplacePrefix replaces the longest matching prefix with repl.
func (p *GlobPattern) ReplacePrefix(s, repl string) string {
	if n, ok := p.MatchPrefix(s, true); ok {
		return repl + s[n:]
	}

	return s
}

// ReplaceSuffix replaces the longest matching suffix with repl.
func (p *GlobPattern) ReplaceSuffix(s, repl string) string {
	if n, ok := p.MatchSuffix(s, true); ok {
		return s[:n] + repl
	}

	return s
}

// matchParts matches a part sequence against all of s, backtracking
// at each GlobAnyString.
func matchParts(parts []GlobPart, s string) bool {
	if len(parts) == 0 {
		return s == ""
	}

	head, rest := parts[0], parts[1:]

	switch head.Kind {
	case GlobString:
		return strings.HasPrefix(s, head.Text) &&
			matchParts(rest, s[len(head.Text):])

	case GlobEscaped:
		if s == "" {
			return false
		}

		r, size := utf8.DecodeRuneInString(s)

		return r == head.Char && matchParts(rest, s[size:])

	case GlobAnyChar:
		if s == "" {
			return false
		}

		_, size := utf8.DecodeRuneInString(s)

		return matchParts(rest, s[size:])

	case GlobAnyString:
		for i := 0; ; {
			if matchParts(rest, s[i:]) {
				return true
			}

			if i >= len(s) {
				return false
			}

			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}

	case GlobRange:
		if s == "" {
			return false
		}

		r, size := utf8.DecodeRuneInString(s)

		return rangeMatch(head.Text, r) && matchParts(rest, s[size:])

	default:
		return false
	}
}

// rangeMatch matches one rune against a bracket class body. A leading
// '!' or '^' negates the class; "a-b" spans are inclusive.
func rangeMatch(class string, r rune) bool {
	runes := []rune(class)

	negate := false
	if len(runes) > 0 && (runes[0] == '!' || runes[0] == '^') {
		negate = true
		runes = runes[1:]
	}

	match := false

	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && runes[i+1] == '-' {
			if runes[i] <= r && r <= runes[i+2] {
				match = true
			}

			i += 2

			continue
		}

		if runes[i] == r {
			match = true
		}
	}

	return match != negate
}

// boundaries returns every rune boundary of s, including 0 and len(s).
func boundaries(s string) []int {
	bounds := make([]int, 0, len(s)+1)

	for i := range s {
		bounds = append(bounds, i)
	}

	return append(bounds, len(s))
}
