package typegen

import (
	"sort"

	"github.com/usestring/wiretype-mcp/pkg/sample"
)

// FieldType is one aggregated field: its name and the rendered union of
// every type observed for it across the sample group.
type FieldType struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// fieldStat accumulates per-field evidence across a sample group.
type fieldStat struct {
	tokens  []Token
	present int
	sawNull bool
}

// Aggregate computes the per-field type union across a group of samples
// believed to share one logical shape. Only object-shaped samples contribute
// fields; arrays, primitives, and nulls are skipped without poisoning the
// field map. A field observed as null gains "| null"; a field absent from
// some object samples gains "| undefined". The result is sorted by field
// name, so output never depends on sample arrival order.
func Aggregate(samples []*sample.Value, opts Options) ([]FieldType, error) {
	opts = opts.withDefaults()

	objects := make([]*sample.Value, 0, len(samples))
	for _, s := range samples {
		if s != nil && s.Kind == sample.Object {
			objects = append(objects, s)
		}
	}

	stats := make(map[string]*fieldStat)
	for _, obj := range objects {
		for _, f := range obj.Fields {
			st := stats[f.Name]
			if st == nil {
				st = &fieldStat{}
				stats[f.Name] = st
			}
			st.present++

			if f.Value == nil || f.Value.Kind == sample.Null {
				st.sawNull = true
				continue
			}
			tok, err := Classify(f.Value, opts)
			if err != nil {
				return nil, err
			}
			st.tokens = append(st.tokens, tok)
		}
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FieldType, 0, len(names))
	for _, name := range names {
		st := stats[name]
		tokens := st.tokens
		if st.sawNull {
			tokens = append(tokens, Token{Kind: KindNull})
		}
		// Optionality is judged against the object-shaped samples of the
		// current window only; it is never carried across windows.
		if st.present < len(objects) {
			tokens = append(tokens, Token{Kind: KindUndefined})
		}
		out = append(out, FieldType{Name: name, Type: Normalize(tokens).Render()})
	}
	return out, nil
}
