package routes

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/usestring/wiretype-mcp/pkg/typegen"
)

// Route identifies one logical route.
type Route struct {
	ID       string `json:"id"`
	Host     string `json:"host"`
	Method   string `json:"method"`
	Template string `json:"template"`
	BaseName string `json:"base_name"`
}

// Summary is the listing form of a route.
type Summary struct {
	Route
	Count         int            `json:"count"`
	StatusProfile map[string]int `json:"status_profile"`
	HasTypes      bool           `json:"has_types"`
	Signature     string         `json:"signature,omitempty"`
	LastSeen      time.Time      `json:"last_seen"`
}

type routeState struct {
	route        Route
	observations []typegen.Observation // oldest first, bounded by obsCap
	decl         *typegen.GeneratedDeclaration
	signature    string
	statusCounts map[string]int
	lastSeen     time.Time
}

// Store holds every known route with its observation window and the last
// synthesized declaration. Synthesis for a given route is serialized by the
// store's lock, which satisfies the engine's at-most-one-writer requirement
// for the persisted signature.
type Store struct {
	mu     sync.RWMutex
	engine *typegen.Engine
	obsCap int
	routes map[string]*routeState
	index  *Index
}

// NewStore creates a route store. obsCap bounds how many observations are
// retained per route; it should be at least the engine's route window.
func NewStore(engine *typegen.Engine, obsCap int) *Store {
	if obsCap <= 0 {
		obsCap = 50
	}
	return &Store{
		engine: engine,
		obsCap: obsCap,
		routes: make(map[string]*routeState),
		index:  NewIndex(),
	}
}

// Record registers the route if new and appends one observation to its
// window, trimming the oldest observation beyond the retention cap.
func (s *Store) Record(route Route, obs typegen.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.routes[route.ID]
	if st == nil {
		st = &routeState{route: route, statusCounts: make(map[string]int)}
		s.routes[route.ID] = st
	}

	st.observations = append(st.observations, obs)
	if len(st.observations) > s.obsCap {
		st.observations = st.observations[len(st.observations)-s.obsCap:]
	}
	st.statusCounts[typegen.StatusClass(obs.StatusCode)]++
	if obs.ReceivedAt.After(st.lastSeen) {
		st.lastSeen = obs.ReceivedAt
	}

	s.index.Add(route.ID, route.Host, route.Method, typegen.StatusClass(obs.StatusCode))
}

// Get returns a route by ID.
func (s *Store) Get(routeID string) (Route, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.routes[routeID]
	if !ok {
		return Route{}, false
	}
	return st.route, true
}

// Observations returns a copy of the route's current observation window.
func (s *Store) Observations(routeID string) ([]typegen.Observation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.routes[routeID]
	if !ok {
		return nil, false
	}
	out := make([]typegen.Observation, len(st.observations))
	copy(out, st.observations)
	return out, true
}

// List returns route summaries matching the filter, most observed first,
// ties broken by route ID for a stable order.
func (s *Store) List(f Filter) []Summary {
	scoped := s.index.RouteIDs(f)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.routes))
	for id, st := range s.routes {
		if scoped != nil {
			if _, ok := scoped[id]; !ok {
				continue
			}
		}
		profile := make(map[string]int, len(st.statusCounts))
		total := 0
		for class, n := range st.statusCounts {
			profile[class] = n
			total += n
		}
		sum := Summary{
			Route:         st.route,
			Count:         total,
			StatusProfile: profile,
			HasTypes:      st.decl != nil,
			LastSeen:      st.lastSeen,
		}
		if st.decl != nil {
			sum.Signature = st.decl.Signature
		}
		out = append(out, sum)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Synthesize runs the engine over the route's observation window. When the
// content signature differs from the stored one, the stored declaration is
// replaced and (decl, true) is returned; otherwise the previously stored
// declaration is returned unchanged with changed=false.
func (s *Store) Synthesize(routeID string) (*typegen.GeneratedDeclaration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.routes[routeID]
	if !ok {
		return nil, false, fmt.Errorf("route not found: %s", routeID)
	}

	decl, changed, err := s.engine.Synthesize(routeID, st.route.BaseName, st.observations, st.signature)
	if err != nil {
		return nil, false, fmt.Errorf("synthesizing route %s: %w", routeID, err)
	}
	if !changed {
		return st.decl, false, nil
	}

	st.decl = decl
	st.signature = decl.Signature
	return decl, true, nil
}

// Declaration returns the stored declaration for a route, if any.
func (s *Store) Declaration(routeID string) (*typegen.GeneratedDeclaration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.routes[routeID]
	if !ok || st.decl == nil {
		return nil, false
	}
	return st.decl, true
}
