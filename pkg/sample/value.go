// Package sample provides the tagged JSON value type consumed by the type
// synthesis engine. Values are built once at the ingestion boundary, so the
// engine can match exhaustively over variants instead of type-switching on
// raw decoded data. Values are linked by pointer, which gives the classifier
// a usable object identity for cycle detection.
package sample

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies the JSON variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is one named member of an Object value. Names are unique within a
// single Object.
type Field struct {
	Name  string
	Value *Value
}

// Value is an immutable JSON-like value. Exactly one payload field is
// meaningful, selected by Kind. Items and Fields hold pointers so a caller
// can build self-referential graphs; Decode never produces cycles.
type Value struct {
	Kind   Kind
	Bool   bool
	Num    float64
	Str    string
	Items  []*Value
	Fields []Field
}

// Decode parses raw JSON bytes into a Value tree. Object fields are ordered
// lexicographically by name, which keeps everything downstream deterministic
// regardless of how the producer ordered its keys.
func Decode(data []byte) (*Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding sample: %w", err)
	}
	return FromAny(raw)
}

// FromAny converts an already-decoded JSON value (the encoding/json
// any-representation) into a Value tree.
func FromAny(raw any) (*Value, error) {
	switch v := raw.(type) {
	case nil:
		return &Value{Kind: Null}, nil
	case bool:
		return &Value{Kind: Bool, Bool: v}, nil
	case float64:
		return &Value{Kind: Number, Num: v}, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("sample number %q: %w", v.String(), err)
		}
		return &Value{Kind: Number, Num: f}, nil
	case string:
		return &Value{Kind: String, Str: v}, nil
	case []any:
		items := make([]*Value, 0, len(v))
		for _, item := range v {
			converted, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			items = append(items, converted)
		}
		return &Value{Kind: Array, Items: items}, nil
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]Field, 0, len(names))
		for _, name := range names {
			converted, err := FromAny(v[name])
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: name, Value: converted})
		}
		return &Value{Kind: Object, Fields: fields}, nil
	default:
		return nil, fmt.Errorf("sample value has unsupported type %T", raw)
	}
}

// Lookup returns the field with the given name, or nil.
func (v *Value) Lookup(name string) *Value {
	if v == nil || v.Kind != Object {
		return nil
	}
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Interface converts the Value tree back into the encoding/json
// any-representation, for handing to tooling that runs on untyped JSON
// (jq queries, tool results). Revisiting a value already on the active path
// yields nil instead of recursing forever.
func (v *Value) Interface() any {
	return toInterface(v, make(map[*Value]struct{}))
}

func toInterface(v *Value, active map[*Value]struct{}) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case Null:
		return nil
	case Bool:
		return v.Bool
	case Number:
		return v.Num
	case String:
		return v.Str
	case Array:
		if _, seen := active[v]; seen {
			return nil
		}
		active[v] = struct{}{}
		defer delete(active, v)

		out := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			out = append(out, toInterface(item, active))
		}
		return out
	case Object:
		if _, seen := active[v]; seen {
			return nil
		}
		active[v] = struct{}{}
		defer delete(active, v)

		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name] = toInterface(f.Value, active)
		}
		return out
	default:
		return nil
	}
}
