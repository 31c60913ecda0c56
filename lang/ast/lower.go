package ast

import "github.com/ardnew/apml/lang/lst"

// Lower renders the definition back into its lossless form.
func (d VariableDefinition) Lower() *lst.VariableDefinition {
	return &lst.VariableDefinition{
		Name:  d.Name,
		Op:    d.Op,
		Value: d.Value.Lower(),
	}
}

// Lower renders the value back into its lossless form. Lowering is
// total and preserves unit kinds, so a value produced by [EmitValue]
// lowers to an LST value that emits back to an equal tree.
func (v VariableValue) Lower() lst.Value {
	switch v.Kind {
	case ValueString:
		return lst.Value{Units: lowerUnits(v.Text)}

	default:
		return lst.Value{}
	}
}

func lowerUnits(t *Text) []lst.Unit {
	if t == nil || len(t.Units) == 0 {
		return nil
	}

	units := make([]lst.Unit, 0, len(t.Units))

	for _, u := range t.Units {
		switch u.Kind {
		case UnitSingleQuote:
			units = append(units, lst.Unit{
				Kind: lst.UnitSingleQuoted,
				Raw:  u.Raw,
			})

		case UnitDoubleQuote:
			units = append(units, lst.Unit{
				Kind: lst.UnitDoubleQuoted,
				Raw:  renderWords(u.Words),
			})

		case UnitUnquoted:
			units = append(units, lst.Unit{
				Kind: lst.UnitUnquoted,
				Raw:  renderWords(u.Words),
			})
		}
	}

	return units
}
