package typegen

import (
	"time"

	"github.com/usestring/wiretype-mcp/pkg/sample"
)

// Observation is one decoded response sample with its outcome metadata.
// ReceivedAt is used only for upstream windowing and reporting; the engine
// itself never inspects it.
type Observation struct {
	Value      *sample.Value
	StatusCode int
	ReceivedAt time.Time
}

// Group is one outcome bucket: the samples of a route that share a
// status-code class and error flag.
type Group struct {
	Class   string
	IsError bool
	Samples []*sample.Value
	Count   int
}

// classOrder fixes bucket iteration order. Rendering and signature
// computation iterate groups in this order (non-error before error within a
// class), never in arrival order.
var classOrder = []string{"2xx", "3xx", "4xx", "5xx", "other"}

// StatusClass maps an HTTP status code to its outcome class. Missing (zero)
// and out-of-range codes map to "other".
func StatusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "other"
	}
}

// IsErrorStatus reports whether a status code is an error outcome. It is
// computed directly from the code rather than from class membership, so a
// future change in class granularity cannot silently change error semantics.
// A missing (zero) status is not an error.
func IsErrorStatus(code int) bool {
	return code >= 400
}

// Bucket groups observations by outcome class and error flag. Only the most
// recent `window` observations are considered (observations are expected
// oldest-first); the cap is applied before bucketing. Observations with a
// nil value still count toward their bucket but contribute no sample.
func Bucket(observations []Observation, window int) []Group {
	if window <= 0 {
		window = DefaultRouteWindow
	}
	if len(observations) > window {
		observations = observations[len(observations)-window:]
	}

	type key struct {
		class   string
		isError bool
	}
	buckets := make(map[key]*Group)
	for _, obs := range observations {
		k := key{class: StatusClass(obs.StatusCode), isError: IsErrorStatus(obs.StatusCode)}
		g := buckets[k]
		if g == nil {
			g = &Group{Class: k.class, IsError: k.isError}
			buckets[k] = g
		}
		g.Count++
		if obs.Value != nil {
			g.Samples = append(g.Samples, obs.Value)
		}
	}

	out := make([]Group, 0, len(buckets))
	for _, class := range classOrder {
		for _, isError := range []bool{false, true} {
			if g, ok := buckets[key{class: class, isError: isError}]; ok {
				out = append(out, *g)
			}
		}
	}
	return out
}
