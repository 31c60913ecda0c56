package ast_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/apml/lang"
	"github.com/ardnew/apml/lang/ast"
	"github.com/ardnew/apml/lang/lst"
)

func parseValue(t *testing.T, value string) lst.Value {
	t.Helper()

	tree, err := lst.Parse(context.Background(), "v="+value)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", value, err)
	}

	return tree.Tokens[0].Var.Value
}

func emitValue(t *testing.T, value string) ast.VariableValue {
	t.Helper()

	v, err := ast.EmitValue(parseValue(t, value))
	if err != nil {
		t.Fatalf("EmitValue(%q) failed: %v", value, err)
	}

	return v
}

func firstExpansion(t *testing.T, v ast.VariableValue) *ast.BracedExpansion {
	t.Helper()

	for _, unit := range v.Text.Units {
		for _, word := range unit.Words {
			if word.Kind == ast.WordBracedVariable {
				return word.Expansion
			}
		}
	}

	t.Fatal("value carries no braced expansion")

	return nil
}

func TestEmitModifiers(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		src       string
		kind      ast.ModifierKind
		canonical string
	}{
		{"${V:2}", ast.ModSubstring, "${V:2}"},
		{"${V:2:5}", ast.ModSubstring, "${V:2:5}"},
		{"${V#pre*}", ast.ModStripShortestPrefix, "${V#pre*}"},
		{"${V##pre*}", ast.ModStripLongestPrefix, "${V##pre*}"},
		{"${V%*.o}", ast.ModStripShortestSuffix, "${V%*.o}"},
		{"${V%%*.o}", ast.ModStripLongestSuffix, "${V%%*.o}"},
		{"${V/foo/bar}", ast.ModReplaceOnce, "${V/foo/bar}"},
		{"${V//foo/bar}", ast.ModReplaceAll, "${V//foo/bar}"},
		{"${V/#foo/bar}", ast.ModReplacePrefix, "${V/#foo/bar}"},
		{"${V/%foo/bar}", ast.ModReplaceSuffix, "${V/%foo/bar}"},
		{"${V/foo}", ast.ModReplaceOnce, "${V/foo/}"},
		{"${V^p?}", ast.ModUpperOnce, "${V^p?}"},
		{"${V^^p?}", ast.ModUpperAll, "${V^^p?}"},
		{"${V,p?}", ast.ModLowerOnce, "${V,p?}"},
		{"${V,,p?}", ast.ModLowerAll, "${V,,p?}"},
		{"${V^^}", ast.ModUpperAll, "${V^^}"},
		{"${V:?msg}", ast.ModErrorOnUnset, "${V:?msg}"},
		{"${V:-def}", ast.ModWhenUnset, "${V:-def}"},
		{"${V:+alt}", ast.ModWhenSet, "${V:+alt}"},
		{"${#V}", ast.ModLength, "${#V}"},
	} {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			v := emitValue(t, tt.src)

			exp := firstExpansion(t, v)
			if exp.Modifier == nil {
				t.Fatal("expansion has no modifier")
			}

			if exp.Modifier.Kind != tt.kind {
				t.Errorf("modifier kind = %v, want %v",
					exp.Modifier.Kind, tt.kind)
			}

			if got := v.String(); got != tt.canonical {
				t.Errorf("canonical form = %q, want %q", got, tt.canonical)
			}
		})
	}
}

func TestEmitSubstringBounds(t *testing.T) {
	t.Parallel()

	mod := firstExpansion(t, emitValue(t, "${V:2:5}")).Modifier
	if mod.Offset != 2 || mod.Length != 5 || !mod.HasLength {
		t.Errorf("bounds = (%d, %d, %v), want (2, 5, true)",
			mod.Offset, mod.Length, mod.HasLength)
	}

	mod = firstExpansion(t, emitValue(t, "${V:7}")).Modifier
	if mod.Offset != 7 || mod.HasLength {
		t.Errorf("bounds = (%d, %v), want (7, false)",
			mod.Offset, mod.HasLength)
	}
}

func TestEmitWords(t *testing.T) {
	t.Parallel()

	v := emitValue(t, `"pre${V}post"`)

	want := ast.VariableValue{
		Kind: ast.ValueString,
		Text: &ast.Text{Units: []ast.TextUnit{{
			Kind: ast.UnitDoubleQuote,
			Words: []ast.Word{
				{Kind: ast.WordLiteral, Parts: []ast.LiteralPart{
					{Kind: ast.PartString, Text: "pre"},
				}},
				{
					Kind:      ast.WordBracedVariable,
					Expansion: &ast.BracedExpansion{Name: "V"},
				},
				{Kind: ast.WordLiteral, Parts: []ast.LiteralPart{
					{Kind: ast.PartString, Text: "post"},
				}},
			},
		}}},
	}

	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitLiteralParts(t *testing.T) {
	t.Parallel()

	v := emitValue(t, `"a\"b"`)

	words := v.Text.Units[0].Words
	want := []ast.LiteralPart{
		{Kind: ast.PartString, Text: "a"},
		{Kind: ast.PartEscaped, Char: '"'},
		{Kind: ast.PartString, Text: "b"},
	}

	if diff := cmp.Diff(want, words[0].Parts); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}

	v = emitValue(t, "a\\\nb")

	words = v.Text.Units[0].Words
	want = []ast.LiteralPart{
		{Kind: ast.PartString, Text: "a"},
		{Kind: ast.PartLineContinuation},
		{Kind: ast.PartString, Text: "b"},
	}

	if diff := cmp.Diff(want, words[0].Parts); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitUnbracedVariable(t *testing.T) {
	t.Parallel()

	v := emitValue(t, `"$1"`)

	word := v.Text.Units[0].Words[0]
	if word.Kind != ast.WordUnbracedVariable || word.Name != "1" {
		t.Errorf("word = %+v, want unbraced $1", word)
	}

	// A name run is maximal, so the literal must start a new word.
	v = emitValue(t, "$PKGVER-rc1")

	words := v.Text.Units[0].Words
	if len(words) != 2 || words[0].Name != "PKGVER" {
		t.Fatalf("unexpected words: %+v", words)
	}

	if words[1].String() != "-rc1" {
		t.Errorf("literal tail = %q, want %q", words[1].String(), "-rc1")
	}
}

func TestEmitModifierTexts(t *testing.T) {
	t.Parallel()

	// Quoting units stay active inside modifier arguments.
	mod := firstExpansion(t, emitValue(t, "${V:-'a b'}")).Modifier

	if len(mod.Text.Units) != 1 ||
		mod.Text.Units[0].Kind != ast.UnitSingleQuote ||
		mod.Text.Units[0].Raw != "a b" {
		t.Errorf("unexpected text units: %+v", mod.Text.Units)
	}

	// Nested expansions inside a default value.
	mod = firstExpansion(t, emitValue(t, "${V:-${W}}")).Modifier

	word := mod.Text.Units[0].Words[0]
	if word.Kind != ast.WordBracedVariable || word.Expansion.Name != "W" {
		t.Errorf("nested word = %+v, want ${W}", word)
	}
}

func TestEmitReplaceSeparator(t *testing.T) {
	t.Parallel()

	// An escaped '/' belongs to the pattern, not the separator.
	mod := firstExpansion(t, emitValue(t, `${V/a\/b/c}`)).Modifier

	wantPat := &ast.GlobPattern{Parts: []ast.GlobPart{
		{Kind: ast.GlobString, Text: "a"},
		{Kind: ast.GlobEscaped, Char: '/'},
		{Kind: ast.GlobString, Text: "b"},
	}}

	if diff := cmp.Diff(wantPat, mod.Pattern); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}

	if got := mod.Text.String(); got != "c" {
		t.Errorf("replacement = %q, want %q", got, "c")
	}

	// A '/' inside a bracket range does not split either.
	mod = firstExpansion(t, emitValue(t, "${V/[a/b]/x}")).Modifier

	wantPat = &ast.GlobPattern{Parts: []ast.GlobPart{
		{Kind: ast.GlobRange, Text: "a/b"},
	}}

	if diff := cmp.Diff(wantPat, mod.Pattern); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitGlobParts(t *testing.T) {
	t.Parallel()

	mod := firstExpansion(t, emitValue(t, `${V#a*b?[!0-9]\*}`)).Modifier

	want := &ast.GlobPattern{Parts: []ast.GlobPart{
		{Kind: ast.GlobString, Text: "a"},
		{Kind: ast.GlobAnyString},
		{Kind: ast.GlobString, Text: "b"},
		{Kind: ast.GlobAnyChar},
		{Kind: ast.GlobRange, Text: "!0-9"},
		{Kind: ast.GlobEscaped, Char: '*'},
	}}

	if diff := cmp.Diff(want, mod.Pattern); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitErrors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		src  string
		want error
	}{
		{"$", lang.ErrBadSubstitution},
		{"$-", lang.ErrBadSubstitution},
		{"${}", lang.ErrBadSubstitution},
		{"${#}", lang.ErrBadSubstitution},
		{"${#V:2}", lang.ErrBadSubstitution},
		{"${V@x}", lang.ErrUnknownModifier},
		{"${V:}", lang.ErrUnknownModifier},
		{"${V:x}", lang.ErrBadOffset},
		{"${V:0:-1}", lang.ErrBadOffset},
		{"${V:1:x}", lang.ErrBadOffset},
		{"${V:1:2:3}", lang.ErrBadOffset},
		{"${V", lang.ErrUnterminatedExpansion},
		{"${V#[ab}", lang.ErrUnterminatedRange},
		{`abc\`, lang.ErrBadEscape},
	} {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			_, err := ast.EmitValue(parseValue(t, tt.src))
			if err == nil {
				t.Fatalf("EmitValue(%q) succeeded, want error", tt.src)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEmitDefinition(t *testing.T) {
	t.Parallel()

	tree, err := lst.Parse(context.Background(), "PKGVER=1.0\nbad=${\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	def, err := ast.EmitDefinition(tree.Tokens[0].Var)
	if err != nil {
		t.Fatalf("EmitDefinition failed: %v", err)
	}

	if def.Name != "PKGVER" || def.String() != "PKGVER=1.0" {
		t.Errorf("definition = %q, want %q", def.String(), "PKGVER=1.0")
	}

	if _, err := ast.EmitDefinition(tree.Tokens[2].Var); err == nil {
		t.Error("EmitDefinition succeeded on a malformed expansion")
	}
}
