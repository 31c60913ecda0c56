package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/apml/lang/ast"
	"github.com/ardnew/apml/lang/editor"
)

// maxSuggestions bounds the "did you mean" hints on a failed lookup.
const maxSuggestions = 3

// Get prints the value of one variable.
type Get struct {
	Raw bool `help:"Print the value as written instead of canonical form"`

	Name   string `arg:""              help:"Variable name"                name:"name"`
	Source string `arg:"" default:"-"  help:"Source file or '-' for stdin" name:"source"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	tree, err := parseSource(ctx, g.Source)
	if err != nil {
		return err
	}

	ed := editor.Wrap(tree)

	_, def, ok := ed.FindVar(g.Name)
	if !ok {
		return g.notDefined(ed)
	}

	if g.Raw {
		fmt.Println(def.Value.String())

		return nil
	}

	value, err := ast.EmitValue(def.Value)
	if err != nil {
		return err
	}

	fmt.Println(value.String())

	return nil
}

// notDefined builds the lookup failure, fuzzy-matching the requested
// name against the document's keys for suggestions.
func (g *Get) notDefined(ed *editor.Editor) error {
	attrs := []slog.Attr{slog.String("variable", g.Name)}

	keys := slices.Collect(ed.Keys())
	if matches := fuzzy.Find(g.Name, keys); len(matches) > 0 {
		hints := make([]string, 0, maxSuggestions)
		for _, m := range matches[:min(maxSuggestions, len(matches))] {
			hints = append(hints, m.Str)
		}

		attrs = append(attrs,
			slog.String("did_you_mean", strings.Join(hints, ", ")))
	}

	return ErrNotDefined.With(attrs...)
}
