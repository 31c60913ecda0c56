package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/apml/lang/editor"
)

// Unset removes a variable definition along with the comment lines
// attached to it.
type Unset struct {
	Write bool `help:"Rewrite the source file in place" short:"w"`

	Name   string `arg:""             help:"Variable name"                name:"name"`
	Source string `arg:"" default:"-" help:"Source file or '-' for stdin" name:"source"`
}

// Run executes the unset command.
func (u *Unset) Run(ctx context.Context) error {
	tree, err := parseSource(ctx, u.Source)
	if err != nil {
		return err
	}

	ed := editor.Wrap(tree)

	index, _, ok := ed.FindVar(u.Name)
	if !ok {
		return ErrNotDefined.With(slog.String("variable", u.Name))
	}

	ed.RemoveVar(index)

	return writeResult(u.Source, u.Write, ed.String())
}
