package lst_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/apml/lang"
	"github.com/ardnew/apml/lang/lst"
)

func mustParse(t *testing.T, src string) *lst.LST {
	t.Helper()

	tree, err := lst.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}

	return tree
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"",
		"\n",
		"a=b",
		"a=b\n",
		"a=b\nb=c\nc=\"$1\"",
		"# comment only\n",
		"#no space\n#  indented text\n",
		"a=b # trailing comment\n",
		"  \n \n",
		"PKGNAME=hello\nPKGVER=1.2.3\n",
		`a='single quoted'` + "\n",
		`a="double quoted"` + "\n",
		`a="escaped \" quote"` + "\n",
		`a='spans` + "\n" + `lines'` + "\n",
		`a=pre'mid'post`,
		`a="a"'b'c`,
		"a=${V}\n",
		"a=${V:-fallback}\n",
		"a=${V:-with space}\n",
		"a=${V/#pre/sub}${W}tail\n",
		"a=back\\\nslash continued\n",
		"a=esc\\ aped\\'quote\n",
		"a=\nb=\n",
		"SRCS=\"git::commit=tags/v1.0::https://example.com/repo.git\"\n",
	} {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			tree := mustParse(t, src)

			if got := tree.String(); got != src {
				t.Errorf("round trip mismatch:\n got: %q\nwant: %q", got, src)
			}
		})
	}
}

func TestParseTokens(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "a=b\nb=c\nc=\"$1\"")

	if got, want := len(tree.Tokens), 5; got != want {
		t.Fatalf("token count = %d, want %d", got, want)
	}

	wantKinds := []lst.TokenKind{
		lst.TokenVariable,
		lst.TokenNewline,
		lst.TokenVariable,
		lst.TokenNewline,
		lst.TokenVariable,
	}

	for i, kind := range wantKinds {
		if tree.Tokens[i].Kind != kind {
			t.Errorf("token %d kind = %v, want %v",
				i, tree.Tokens[i].Kind, kind)
		}
	}

	if name := tree.Tokens[4].Var.Name; name != "c" {
		t.Errorf("third variable name = %q, want %q", name, "c")
	}

	units := tree.Tokens[4].Var.Value.Units
	if len(units) != 1 || units[0].Kind != lst.UnitDoubleQuoted {
		t.Fatalf("unexpected units: %+v", units)
	}

	if units[0].Raw != "$1" {
		t.Errorf("unit raw = %q, want %q", units[0].Raw, "$1")
	}
}

func TestParseValueUnits(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		src  string
		want []lst.Unit
	}{
		{
			src: `a=pre'mid'"post"`,
			want: []lst.Unit{
				{Kind: lst.UnitUnquoted, Raw: "pre"},
				{Kind: lst.UnitSingleQuoted, Raw: "mid"},
				{Kind: lst.UnitDoubleQuoted, Raw: "post"},
			},
		},
		{
			src:  "a=${V:-x y}",
			want: []lst.Unit{{Kind: lst.UnitUnquoted, Raw: "${V:-x y}"}},
		},
		{
			src:  "a=",
			want: nil,
		},
		{
			src: `a="\""`,
			want: []lst.Unit{
				{Kind: lst.UnitDoubleQuoted, Raw: `\"`},
			},
		},
	} {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			tree := mustParse(t, tt.src)

			units := tree.Tokens[0].Var.Value.Units
			if len(units) != len(tt.want) {
				t.Fatalf("unit count = %d, want %d: %+v",
					len(units), len(tt.want), units)
			}

			for i, want := range tt.want {
				if units[i] != want {
					t.Errorf("unit %d = %+v, want %+v", i, units[i], want)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		src  string
		want error
		line int
		col  int
	}{
		{
			name: "unterminated single quote",
			src:  "a='x",
			want: lang.ErrUnterminatedQuote,
			line: 1, col: 3,
		},
		{
			name: "unterminated double quote",
			src:  "a=\"x\nb=c",
			want: lang.ErrUnterminatedQuote,
			line: 1, col: 3,
		},
		{
			name: "escaped closing quote",
			src:  `a="x\"`,
			want: lang.ErrUnterminatedQuote,
			line: 1, col: 3,
		},
		{
			name: "missing assignment",
			src:  "justtext",
			want: lang.ErrMalformedLine,
			line: 1, col: 9,
		},
		{
			name: "leading equals",
			src:  "=value",
			want: lang.ErrMalformedLine,
			line: 1, col: 1,
		},
		{
			name: "space before equals",
			src:  "a =b",
			want: lang.ErrMalformedLine,
			line: 1, col: 2,
		},
		{
			name: "malformed second line",
			src:  "a=b\n!bad",
			want: lang.ErrMalformedLine,
			line: 2, col: 1,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := lst.Parse(context.Background(), tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			var perr *lang.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T does not carry a position", err)
			}

			if perr.Line != tt.line || perr.Column != tt.col {
				t.Errorf("position = %d:%d, want %d:%d",
					perr.Line, perr.Column, tt.line, tt.col)
			}
		})
	}
}

func TestParseErrorSnippet(t *testing.T) {
	t.Parallel()

	_, err := lst.Parse(context.Background(), "a=b\n!bad")
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}

	msg := err.Error()
	for _, want := range []string{"line 2", "column 1", "!bad", "^"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	src := "a=b\n# c\nd=e f=g\n"

	tree, err := lst.ParseReader(context.Background(), strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if got := tree.String(); got != src {
		t.Errorf("round trip mismatch: got %q, want %q", got, src)
	}
}

func TestScanMatchesParse(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"",
		"a=b\nb=c\nc=\"$1\"",
		"# comment\n\na=b # inline\n",
		"a=${V:-x y}tail b=c\n",
		`a='one two' b="three four"` + "\n",
		"a=back\\\nslash\n",
	} {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			tree := mustParse(t, src)

			count, err := lst.Scan(src)
			if err != nil {
				t.Fatalf("Scan(%q) failed: %v", src, err)
			}

			if count != len(tree.Tokens) {
				t.Errorf("Scan = %d tokens, Parse = %d",
					count, len(tree.Tokens))
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"a='x", `a="x`, "!bad", "=v"} {
		if _, err := lst.Scan(src); err == nil {
			t.Errorf("Scan(%q) succeeded, want error", src)
		}
	}
}
