package cmd

import (
	"context"
	"io"
	"os"

	"github.com/ardnew/apml/lang"
	"github.com/ardnew/apml/lang/ast"
	"github.com/ardnew/apml/lang/editor"
	"github.com/ardnew/apml/lang/lst"
)

// Fmt rewrites a document in canonical form: every definition is
// interpreted and rendered back, normalizing redundant escapes while
// keeping comments and spacing untouched. With --json or --yaml the
// variables are dumped as a flat mapping instead.
type Fmt struct {
	JSON bool `help:"Print a JSON object of the variables" xor:"format"`
	YAML bool `help:"Print a YAML mapping of the variables" xor:"format"`

	Source string `arg:"" default:"-" help:"Source file or '-' for stdin" name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) error {
	tree, err := parseSource(ctx, f.Source)
	if err != nil {
		return err
	}

	ed := editor.Wrap(tree)

	switch {
	case f.JSON:
		return ed.FormatJSON(os.Stdout)

	case f.YAML:
		return ed.FormatYAML(os.Stdout)
	}

	for i, tok := range tree.Tokens {
		if tok.Kind != lst.TokenVariable {
			continue
		}

		def, err := ast.EmitDefinition(tok.Var)
		if err != nil {
			return err
		}

		tree.Tokens[i] = lst.Variable(def.Lower())
	}

	if _, err := io.WriteString(os.Stdout, tree.String()); err != nil {
		return lang.WrapError(err)
	}

	return nil
}
