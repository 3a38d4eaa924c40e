package typegen

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/usestring/wiretype-mcp/pkg/sample"
)

// Signature computes an 8-hex-digit content hash over the bucketed sample
// data. Object keys are serialized in sorted order and array elements in
// original order, so the same logical content always hashes identically
// regardless of construction order. The hash is FNV-1a, a fast
// multiply/xor fold: it only needs change-detection fidelity for one
// route's history, not collision resistance.
func Signature(routeID string, groups []Group) (string, error) {
	var b strings.Builder
	b.WriteString(routeID)
	b.WriteByte(0)

	for _, g := range groups {
		fmt.Fprintf(&b, "%s|%t|%d", g.Class, g.IsError, g.Count)
		b.WriteByte(0)
		for _, s := range g.Samples {
			if err := writeCanonical(&b, s, make(map[*sample.Value]struct{})); err != nil {
				return "", err
			}
			b.WriteByte(0)
		}
	}

	h := fnv.New32a()
	h.Write([]byte(b.String()))
	return fmt.Sprintf("%08x", h.Sum32()), nil
}

// writeCanonical serializes a value deterministically. Decode already sorts
// object fields; the explicit re-check here keeps hand-built values honest.
func writeCanonical(b *strings.Builder, v *sample.Value, active map[*sample.Value]struct{}) error {
	if v == nil {
		b.WriteString("undefined")
		return nil
	}
	switch v.Kind {
	case sample.Null:
		b.WriteString("null")
	case sample.Bool:
		b.WriteString(strconv.FormatBool(v.Bool))
	case sample.Number:
		b.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	case sample.String:
		b.WriteString(strconv.Quote(v.Str))
	case sample.Array:
		if _, seen := active[v]; seen {
			b.WriteString("<circular>")
			return nil
		}
		active[v] = struct{}{}
		defer delete(active, v)

		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeCanonical(b, item, active); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case sample.Object:
		if _, seen := active[v]; seen {
			b.WriteString("<circular>")
			return nil
		}
		active[v] = struct{}{}
		defer delete(active, v)

		fields := v.Fields
		if !fieldsSorted(fields) {
			fields = sortedFields(fields)
		}
		b.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(f.Name))
			b.WriteByte(':')
			if err := writeCanonical(b, f.Value, active); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return &MalformedSampleError{Reason: "cannot serialize value kind " + v.Kind.String()}
	}
	return nil
}

func fieldsSorted(fields []sample.Field) bool {
	for i := 1; i < len(fields); i++ {
		if fields[i-1].Name > fields[i].Name {
			return false
		}
	}
	return true
}

func sortedFields(fields []sample.Field) []sample.Field {
	out := make([]sample.Field, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
