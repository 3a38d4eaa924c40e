package typegen

import (
	"regexp"
	"sort"
	"time"

	"github.com/usestring/wiretype-mcp/pkg/sample"
)

// Options controls classification and synthesis behavior.
type Options struct {
	// DetectDates classifies ISO-8601-shaped strings as Date instead of
	// string.
	DetectDates bool
	// ArraySampleCap bounds how many array elements are classified per
	// array unless AnalyzeAllElements is set. Default 100.
	ArraySampleCap int
	// AnalyzeAllElements classifies every array element regardless of
	// ArraySampleCap.
	AnalyzeAllElements bool
	// MaxDepth bounds recursion depth during classification; 0 means
	// unbounded. Exceeding it fails with ResourceExceededError.
	MaxDepth int
	// RouteWindow bounds how many of the most recent observations per
	// route feed synthesis. Default 10.
	RouteWindow int
}

// DefaultArraySampleCap is the per-array element classification cap.
const DefaultArraySampleCap = 100

// DefaultRouteWindow is the per-route recent-observation window.
const DefaultRouteWindow = 10

func (o Options) withDefaults() Options {
	if o.ArraySampleCap <= 0 {
		o.ArraySampleCap = DefaultArraySampleCap
	}
	if o.RouteWindow <= 0 {
		o.RouteWindow = DefaultRouteWindow
	}
	return o
}

// isoDatePattern matches YYYY-MM-DD optionally followed by
// THH:MM:SS[.mmm][Z]. Matching strings must additionally parse to a valid
// calendar instant before being classified as Date.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d{1,3})?Z?)?$`)

var isoDateLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func isDateLike(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	for _, layout := range isoDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	// Shaped like a date but not a real instant (e.g. 2024-13-45).
	return false
}

// Classify returns the structural type token for one sample value. A nil
// value classifies as undefined. The cycle guard is scoped to this call: the
// same nested value appearing twice as siblings is analyzed fully, while a
// value revisited on the active recursion path yields the circular sentinel.
func Classify(v *sample.Value, opts Options) (Token, error) {
	return classify(v, opts.withDefaults(), make(map[*sample.Value]struct{}), 0)
}

func classify(v *sample.Value, opts Options, active map[*sample.Value]struct{}, depth int) (Token, error) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return Token{}, &ResourceExceededError{Depth: depth, Limit: opts.MaxDepth}
	}
	if v == nil {
		return Token{Kind: KindUndefined}, nil
	}

	switch v.Kind {
	case sample.Null:
		return Token{Kind: KindNull}, nil
	case sample.Bool:
		return Token{Kind: KindBoolean}, nil
	case sample.Number:
		return Token{Kind: KindNumber}, nil
	case sample.String:
		if opts.DetectDates && isDateLike(v.Str) {
			return Token{Kind: KindDate}, nil
		}
		return Token{Kind: KindString}, nil
	case sample.Array:
		if _, onPath := active[v]; onPath {
			return Token{Kind: KindCircular}, nil
		}
		active[v] = struct{}{}
		defer delete(active, v)

		limit := len(v.Items)
		if !opts.AnalyzeAllElements && limit > opts.ArraySampleCap {
			limit = opts.ArraySampleCap
		}
		elems := make([]Token, 0, limit)
		for _, item := range v.Items[:limit] {
			tok, err := classify(item, opts, active, depth+1)
			if err != nil {
				return Token{}, err
			}
			elems = append(elems, tok)
		}
		// An empty array carries no element information; the empty union
		// renders as unknown[].
		return Token{Kind: KindArray, Elem: Normalize(elems)}, nil
	case sample.Object:
		if _, onPath := active[v]; onPath {
			return Token{Kind: KindCircular}, nil
		}
		active[v] = struct{}{}
		defer delete(active, v)

		fields := make([]Field, 0, len(v.Fields))
		for _, f := range v.Fields {
			tok, err := classify(f.Value, opts, active, depth+1)
			if err != nil {
				return Token{}, err
			}
			fields = append(fields, Field{Name: f.Name, Type: Union{tok}})
		}
		// Decode already sorts fields, but hand-built values may not be
		// sorted and record rendering must be order-independent.
		sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
		return Token{Kind: KindRecord, Fields: fields}, nil
	default:
		return Token{}, &MalformedSampleError{Reason: "unrecognized value kind " + v.Kind.String()}
	}
}
