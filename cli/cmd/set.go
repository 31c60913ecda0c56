package cmd

import (
	"context"

	"github.com/ardnew/apml/lang/ast"
	"github.com/ardnew/apml/lang/editor"
)

// Set adds or rewrites a variable definition. The new value is stored
// as a conventional double-quoted string; an existing definition is
// rewritten in place, keeping everything around it untouched.
type Set struct {
	After string `help:"Insert a new definition after this variable instead of rewriting"`
	Write bool   `help:"Rewrite the source file in place" short:"w"`

	Name   string `arg:""             help:"Variable name"                name:"name"`
	Value  string `arg:""             help:"New value"                    name:"value"`
	Source string `arg:"" default:"-" help:"Source file or '-' for stdin" name:"source"`
}

// Run executes the set command.
func (s *Set) Run(ctx context.Context) error {
	tree, err := parseSource(ctx, s.Source)
	if err != nil {
		return err
	}

	ed := editor.Wrap(tree)
	value := ast.StringValue(s.Value)

	if s.After != "" {
		ed.AppendVar(s.Name, value, s.After)
	} else {
		ed.ReplaceVar(s.Name, value)
	}

	return writeResult(s.Source, s.Write, ed.String())
}
