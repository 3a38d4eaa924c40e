// Package typegen synthesizes structural type declarations from observed
// JSON response samples. Samples for one logical route are bucketed by
// status-code outcome class, each bucket is aggregated into a per-field type
// union, and the result is rendered as TypeScript-like interface text. A
// stable content signature over the bucketed samples lets callers skip
// re-synthesis when nothing changed.
package typegen

import "strings"

// TokenKind identifies the structural type of a classified value.
type TokenKind int

const (
	KindUnknown TokenKind = iota
	KindBoolean
	KindNumber
	KindString
	KindDate
	KindArray
	KindRecord
	KindCircular
	KindNull
	KindUndefined
)

// Token is a pure structural type description. Array tokens carry the
// normalized union of their element types; record tokens carry a field list
// sorted by name. Tokens have no identity beyond their shape: two tokens
// that render identically are the same type.
type Token struct {
	Kind   TokenKind
	Elem   Union   // element union for KindArray
	Fields []Field // name-sorted fields for KindRecord
}

// Field is one named member of a record token.
type Field struct {
	Name string
	Type Union
}

// Union is a deduplicated, canonically ordered set of tokens describing the
// alternative types observed at one position. Construct unions through
// Normalize; a hand-built Union has no ordering guarantees.
type Union []Token

// Render produces the canonical textual form of a token.
func (t Token) Render() string {
	switch t.Kind {
	case KindUnknown:
		return "unknown"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "Date"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindCircular:
		return "circular"
	case KindArray:
		// Multi-type element unions stay grouped: (A | B)[] rather than
		// A[] | B[], preserving that each sampled array held elements of
		// these types, not arbitrary per-array splits.
		if len(t.Elem) > 1 {
			return "(" + t.Elem.Render() + ")[]"
		}
		return t.Elem.Render() + "[]"
	case KindRecord:
		if len(t.Fields) == 0 {
			return "{}"
		}
		var b strings.Builder
		b.WriteString("{ ")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(quoteFieldName(f.Name))
			b.WriteString(": ")
			b.WriteString(f.Type.Render())
		}
		b.WriteString(" }")
		return b.String()
	default:
		return "unknown"
	}
}

// Render joins the union's tokens with " | ". An empty union renders as the
// no-information marker.
func (u Union) Render() string {
	switch len(u) {
	case 0:
		return "unknown"
	case 1:
		return u[0].Render()
	}
	parts := make([]string, 0, len(u))
	for _, t := range u {
		parts = append(parts, t.Render())
	}
	return strings.Join(parts, " | ")
}
