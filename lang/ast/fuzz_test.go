package ast_test

import (
	"context"
	"testing"

	"github.com/ardnew/apml/lang/ast"
	"github.com/ardnew/apml/lang/lst"
)

// FuzzEmitValue checks that emit is total over parsed input (errors,
// never panics) and that every accepted value survives lowering:
// EmitValue(v.Lower()) is structurally equal to v.
func FuzzEmitValue(f *testing.F) {
	for _, seed := range []string{
		"v=plain",
		`v="${PKGNAME:-pkg}-$1"`,
		"v='raw $notavar'\n",
		`v=${V/#*.tar/.tgz}`,
		`v=${V:1:2}${W^^[a-z]}`,
		`v="${V:?msg with \"quotes\"}"`,
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tree, err := lst.Parse(context.Background(), src)
		if err != nil {
			return
		}

		for _, token := range tree.Tokens {
			if token.Kind != lst.TokenVariable {
				continue
			}

			value, err := ast.EmitValue(token.Var.Value)
			if err != nil {
				continue
			}

			again, err := ast.EmitValue(value.Lower())
			if err != nil {
				t.Fatalf("lowered form of %q failed to emit: %v", src, err)
			}

			if !value.Equal(again) {
				t.Errorf("emit/lower not idempotent for %q:\n got: %s\nwant: %s",
					src, again.String(), value.String())
			}
		}
	})
}
