package routes

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Index is an inverted index over observations: roaring bitmaps of
// observation doc IDs keyed by host, method, and status class, mapping back
// to route IDs. Listing tools use it to scope routes without scanning every
// stored observation.
type Index struct {
	mu       sync.RWMutex
	nextDoc  uint32
	byHost   map[string]*roaring.Bitmap
	byMethod map[string]*roaring.Bitmap
	byClass  map[string]*roaring.Bitmap
	docRoute map[uint32]string
}

// NewIndex creates an empty observation index.
func NewIndex() *Index {
	return &Index{
		byHost:   make(map[string]*roaring.Bitmap),
		byMethod: make(map[string]*roaring.Bitmap),
		byClass:  make(map[string]*roaring.Bitmap),
		docRoute: make(map[uint32]string),
	}
}

// Add records one observation for a route under its host, method, and
// status class.
func (ix *Index) Add(routeID, host, method, statusClass string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	doc := ix.nextDoc
	ix.nextDoc++
	ix.docRoute[doc] = routeID

	ix.addTo(ix.byHost, host, doc)
	ix.addTo(ix.byMethod, method, doc)
	ix.addTo(ix.byClass, statusClass, doc)
}

func (ix *Index) addTo(m map[string]*roaring.Bitmap, key string, doc uint32) {
	bm := m[key]
	if bm == nil {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(doc)
}

// Filter scopes a route listing. Empty fields match everything.
type Filter struct {
	Host        string
	Method      string
	StatusClass string
}

// RouteIDs returns the set of route IDs with at least one observation
// matching the filter. A nil map means "no filtering requested" and is
// distinct from an empty result.
func (ix *Index) RouteIDs(f Filter) map[string]struct{} {
	if f.Host == "" && f.Method == "" && f.StatusClass == "" {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var result *roaring.Bitmap
	intersect := func(bm *roaring.Bitmap) {
		if bm == nil {
			result = roaring.New()
			return
		}
		if result == nil {
			result = bm.Clone()
			return
		}
		result.And(bm)
	}

	if f.Host != "" {
		intersect(ix.byHost[f.Host])
	}
	if f.Method != "" {
		intersect(ix.byMethod[f.Method])
	}
	if f.StatusClass != "" {
		intersect(ix.byClass[f.StatusClass])
	}

	out := make(map[string]struct{})
	if result == nil {
		return out
	}
	iter := result.Iterator()
	for iter.HasNext() {
		if routeID, ok := ix.docRoute[iter.Next()]; ok {
			out[routeID] = struct{}{}
		}
	}
	return out
}
