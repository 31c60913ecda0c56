package editor

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/apml/lang"
)

// Row is one variable definition as seen by a filter expression.
type Row struct {
	// Name is the variable name.
	Name string
	// Value is the raw source text of the value, quotes included.
	Value string
	// Index is the zero-based position among the document's
	// definitions.
	Index int
}

// Filter evaluates a boolean expression against every definition and
// returns the rows it selects, in document order.
//
// The expression sees the fields of [Row], e.g.:
//
//	Name startsWith "PKG" && Value contains "$"
func (e *Editor) Filter(query string) ([]Row, error) {
	program, err := expr.Compile(query, expr.Env(Row{}), expr.AsBool())
	if err != nil {
		return nil, lang.WrapError(err).
			With(slog.String("query", query))
	}

	var (
		rows  []Row
		index int
	)

	for _, v := range e.Variables() {
		row := Row{
			Name:  v.Name,
			Value: v.Value.String(),
			Index: index,
		}
		index++

		keep, err := runFilter(program, row)
		if err != nil {
			return nil, lang.WrapError(err).
				With(slog.String("query", query),
					slog.String("variable", row.Name))
		}

		if keep {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

func runFilter(program *vm.Program, row Row) (bool, error) {
	out, err := expr.Run(program, row)
	if err != nil {
		return false, err
	}

	keep, ok := out.(bool)
	if !ok {
		return false, lang.NewError("filter did not yield a boolean")
	}

	return keep, nil
}
