package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/ardnew/apml/lang/editor"
)

// List prints the variable definitions of a document.
type List struct {
	Filter   string `help:"Keep only definitions matching an expression (fields: Name, Value, Index)" short:"f"`
	Keys     bool   `help:"Print names only"                                                          short:"k"`
	Comments bool   `help:"Print comment lines instead of definitions"                               short:"c"`

	Source string `arg:"" default:"-" help:"Source file or '-' for stdin" name:"source"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	tree, err := parseSource(ctx, l.Source)
	if err != nil {
		return err
	}

	ed := editor.Wrap(tree)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if l.Comments {
		for text := range ed.Comments() {
			fmt.Fprintln(out, text)
		}

		return nil
	}

	if l.Filter != "" {
		rows, err := ed.Filter(l.Filter)
		if err != nil {
			return err
		}

		for _, row := range rows {
			if l.Keys {
				fmt.Fprintln(out, row.Name)
			} else {
				fmt.Fprintf(out, "%s=%s\n", row.Name, row.Value)
			}
		}

		return nil
	}

	for _, v := range ed.Variables() {
		if l.Keys {
			fmt.Fprintln(out, v.Name)
		} else {
			fmt.Fprintln(out, v.String())
		}
	}

	return nil
}
