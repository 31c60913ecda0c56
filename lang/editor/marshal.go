package editor

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/apml/lang"
)

// ToMap flattens the document into a name-to-value map. Values are the
// raw source text of each definition's value, quotes included. When a
// name is defined more than once, the last definition wins.
func (e *Editor) ToMap() map[string]string {
	m := make(map[string]string)

	for _, v := range e.Variables() {
		m[v.Name] = v.Value.String()
	}

	return m
}

// MarshalJSON implements json.Marshaler over the flattened map.
func (e *Editor) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToMap())
}

// FormatJSON writes the flattened map as indented JSON. Keys are
// sorted, which makes the output stable across runs.
func (e *Editor) FormatJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(e.ToMap()); err != nil {
		return lang.WrapError(err)
	}

	return nil
}

// FormatYAML writes the variables as a YAML mapping in document order.
// Repeated definitions of a name each produce an entry, preserving the
// order a shell would evaluate them in.
func (e *Editor) FormatYAML(w io.Writer) error {
	var doc yaml.MapSlice

	for _, v := range e.Variables() {
		doc = append(doc, yaml.MapItem{
			Key:   v.Name,
			Value: v.Value.String(),
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return lang.WrapError(err)
	}

	if _, err := w.Write(data); err != nil {
		return lang.WrapError(err)
	}

	return nil
}
