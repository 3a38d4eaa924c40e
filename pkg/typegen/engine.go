package typegen

import "time"

// GeneratedDeclaration is the output of one synthesis run: the declaration
// text for every outcome bucket of a route, plus the metadata the caller
// persists alongside it.
type GeneratedDeclaration struct {
	RouteID     string    `json:"route_id"`
	TypeName    string    `json:"type_name"`
	Text        string    `json:"text"`
	SampleCount int       `json:"sample_count"`
	Signature   string    `json:"signature"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Engine runs the synthesis pipeline for one route at a time. It is
// synchronous, performs no I/O, and holds no state across invocations;
// callers own the previous-signature bookkeeping and any serialization
// against shared storage.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Synthesize buckets the observations by outcome class, computes the content
// signature, and renders one declaration per bucket. It returns (nil, false)
// without rendering when the signature matches prevSignature or when the
// window yields no usable groups, making repeated runs on unchanged data
// no-ops downstream. Pass an empty prevSignature on first synthesis.
func (e *Engine) Synthesize(routeID, baseName string, observations []Observation, prevSignature string) (*GeneratedDeclaration, bool, error) {
	groups := Bucket(observations, e.opts.RouteWindow)
	if len(groups) == 0 {
		return nil, false, nil
	}

	sig, err := Signature(routeID, groups)
	if err != nil {
		return nil, false, err
	}
	if prevSignature != "" && sig == prevSignature {
		return nil, false, nil
	}

	rendered := make([]RenderedGroup, 0, len(groups))
	sampleCount := 0
	for _, g := range groups {
		fields, err := Aggregate(g.Samples, e.opts)
		if err != nil {
			return nil, false, err
		}
		rendered = append(rendered, RenderedGroup{Class: g.Class, IsError: g.IsError, Fields: fields})
		sampleCount += g.Count
	}

	text, ok := RenderDeclarations(baseName, rendered)
	if !ok {
		return nil, false, nil
	}

	return &GeneratedDeclaration{
		RouteID:     routeID,
		TypeName:    baseName + "Response",
		Text:        text,
		SampleCount: sampleCount,
		Signature:   sig,
		GeneratedAt: time.Now().UTC(),
	}, true, nil
}
