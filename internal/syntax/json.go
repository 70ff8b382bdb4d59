package syntax

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the tree rooted at node to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToMap(node))
}

// FprintYAML writes a YAML representation of the tree rooted at node to w.
// It has the same shape as the JSON output.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToMap(node)); err != nil {
		return err
	}
	return enc.Close()
}

// ToMap converts the tree rooted at node into nested maps and slices
// suitable for generic encoders.
func ToMap(node Node) map[string]interface{} {
	switch n := node.(type) {
	case *Program:
		if n == nil {
			return nil
		}
		instrs := make([]interface{}, 0, n.context.Len())
		for _, name := range n.context.Names() {
			instrs = append(instrs, map[string]interface{}{
				"name": name,
				"body": ToMap(n.context.Lookup(name)),
			})
		}
		return map[string]interface{}{
			"type":         "Program",
			"name":         n.name,
			"instructions": instrs,
			"body":         ToMap(n.body),
		}

	case *Statement:
		if n == nil {
			return nil
		}
		m := map[string]interface{}{
			"kind": n.kind.String(),
		}
		switch n.kind {
		case Block:
			m["stmts"] = mapSlice(n.kids, func(s *Statement) interface{} { return ToMap(s) })
		case If, While:
			m["cond"] = n.cond.String()
			m["body"] = ToMap(n.kids[0])
		case IfElse:
			m["cond"] = n.cond.String()
			m["then"] = ToMap(n.kids[0])
			m["else"] = ToMap(n.kids[1])
		case Call:
			m["name"] = n.name
		}
		return m
	}
	return nil
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
