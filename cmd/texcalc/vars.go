package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// loadVars reads a YAML mapping of variable names to numbers into vars.
func loadVars(r io.Reader, vars map[string]float64) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: variables must be a mapping of names to values", m.Line)
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if !validName(k.Value) {
			return fmt.Errorf("line %d: variable name %q is not a single letter", k.Line, k.Value)
		}
		var x float64
		if err := v.Decode(&x); err != nil {
			return fmt.Errorf("line %d: value of %s: %w", v.Line, k.Value, err)
		}
		vars[k.Value] = x
	}
	return nil
}
