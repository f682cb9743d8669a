package pts

import (
	"github.com/sirupsen/logrus"

	"github.com/april1989/ptastore/internal/ptlog"
)

// getNested returns the ID stored for (loc, key) in a per-location map,
// or the empty ID if either level is absent.
func getNested[L comparable, K comparable](m map[L]map[K]PointsToID, loc L, key K) PointsToID {
	inner, ok := m[loc]
	if !ok {
		return emptyID
	}
	return inner[key]
}

// unionNested unions srcID into m[loc][key], creating the inner map on
// demand, and reports whether the union changed the value.
func unionNested[L comparable, K comparable, D comparable, S any](cache *Cache[S, D], m map[L]map[K]PointsToID, loc L, key K, srcID PointsToID) bool {
	if srcID == emptyID {
		return false
	}

	inner, ok := m[loc]
	if !ok {
		inner = make(map[K]PointsToID)
		m[loc] = inner
	}

	cur := inner[key]
	newID := cache.Union(cur, srcID)
	if newID == cur {
		return false
	}
	inner[key] = newID
	return true
}

// DFStore holds per-(location, key) IN and OUT points-to maps, updating
// them via identifier-level unions through a shared Cache. Top-level
// pointer points-to sets are not duplicated here: DFStore shares a
// BaseStore so flow-insensitive and flow-sensitive state cooperate
// through the same interning namespace.
type DFStore[L comparable, K comparable, D comparable, S any] struct {
	cache *Cache[S, D]
	base  *BaseStore[K, D, S]

	dfIn  map[L]map[K]PointsToID
	dfOut map[L]map[K]PointsToID
}

// NewDFStore constructs a DFStore sharing cache with base.
func NewDFStore[L comparable, K comparable, D comparable, S any](cache *Cache[S, D], base *BaseStore[K, D, S]) *DFStore[L, K, D, S] {
	return &DFStore[L, K, D, S]{
		cache: cache,
		base:  base,
		dfIn:  make(map[L]map[K]PointsToID),
		dfOut: make(map[L]map[K]PointsToID),
	}
}

// Kind reports this store's discriminator tag.
func (df *DFStore[L, K, D, S]) Kind() Kind { return KindDataFlow }

// Base exposes the shared top-level store.
func (df *DFStore[L, K, D, S]) Base() *BaseStore[K, D, S] { return df.base }

// GetDFIn / GetDFOut materialise the IN / OUT set at (loc, key). Absence
// of either level is equivalent to empty.
func (df *DFStore[L, K, D, S]) GetDFIn(loc L, key K) S {
	return df.cache.Actual(getNested(df.dfIn, loc, key))
}

func (df *DFStore[L, K, D, S]) GetDFOut(loc L, key K) S {
	return df.cache.Actual(getNested(df.dfOut, loc, key))
}

func (df *DFStore[L, K, D, S]) GetDFInID(loc L, key K) PointsToID {
	return getNested(df.dfIn, loc, key)
}

func (df *DFStore[L, K, D, S]) GetDFOutID(loc L, key K) PointsToID {
	return getNested(df.dfOut, loc, key)
}

// GetRevPts is not supported by the DF store; the solver never asks,
// and asking is a precondition violation, not a silent fallback.
func (df *DFStore[L, K, D, S]) GetRevPts(d D) map[K]struct{} {
	ptlog.Precondition(df.Kind().String(), "GetRevPts", logrus.Fields{"reason": "DF store does not track reverse points-to"})
	return nil
}

// UpdateDFInFromIn: dfIn[dL][dV] ∪= dfIn[sL][sV].
func (df *DFStore[L, K, D, S]) UpdateDFInFromIn(sL L, sV K, dL L, dV K) bool {
	return unionNested(df.cache, df.dfIn, dL, dV, getNested(df.dfIn, sL, sV))
}

// UpdateDFInFromOut: dfIn[dL][dV] ∪= dfOut[sL][sV].
func (df *DFStore[L, K, D, S]) UpdateDFInFromOut(sL L, sV K, dL L, dV K) bool {
	return unionNested(df.cache, df.dfIn, dL, dV, getNested(df.dfOut, sL, sV))
}

// UpdateDFOutFromIn: dfOut[dL][dV] ∪= dfIn[sL][sV].
func (df *DFStore[L, K, D, S]) UpdateDFOutFromIn(sL L, sV K, dL L, dV K) bool {
	return unionNested(df.cache, df.dfOut, dL, dV, getNested(df.dfIn, sL, sV))
}

// UnionDFInFromSet unions a raw set value into dfIn[loc][key] directly,
// for seeding IN from a points-to set computed outside this store (the
// raw-set analogue of BaseStore.UnionPtsSet).
func (df *DFStore[L, K, D, S]) UnionDFInFromSet(loc L, key K, raw S) bool {
	return unionNested(df.cache, df.dfIn, loc, key, df.cache.Emplace(raw))
}

// UnionDFOutFromSet is UnionDFInFromSet's OUT-side analogue.
func (df *DFStore[L, K, D, S]) UnionDFOutFromSet(loc L, key K, raw S) bool {
	return unionNested(df.cache, df.dfOut, loc, key, df.cache.Emplace(raw))
}

// UpdateAllDFOutFromIn publishes every key's IN state at loc to its OUT
// state, skipping singleton when strong is true (a proven strong update
// has already killed singleton's prior IN-state, so it must not be
// republished). Returns whether anything changed.
func (df *DFStore[L, K, D, S]) UpdateAllDFOutFromIn(loc L, strong bool, singleton K) bool {
	changed := false
	for v := range df.dfIn[loc] {
		if strong && v == singleton {
			continue
		}
		if df.UpdateDFOutFromIn(loc, v, loc, v) {
			changed = true
		}
	}
	return changed
}

// UpdateTLVPts publishes dfIn[sL][sV] into the shared top-level store's
// points-to set for dV.
func (df *DFStore[L, K, D, S]) UpdateTLVPts(sL L, sV K, dV K) bool {
	return df.base.unionFromID(dV, getNested(df.dfIn, sL, sV))
}

// UpdateATVPts publishes the top-level store's points-to set for sV into
// dfOut[dL][dV].
func (df *DFStore[L, K, D, S]) UpdateATVPts(sV K, dL L, dV K) bool {
	return unionNested(df.cache, df.dfOut, dL, dV, df.base.GetPtsID(sV))
}

// Clear empties dfIn, dfOut and the shared base store's maps, restoring
// full initial state. The cache is untouched.
func (df *DFStore[L, K, D, S]) Clear() {
	df.base.Clear()
	df.dfIn = make(map[L]map[K]PointsToID)
	df.dfOut = make(map[L]map[K]PointsToID)
	ptlog.L.WithField("store", df.Kind().String()).Debug("store cleared")
}

// idMaps returns every inner map of dfIn and dfOut, plus the shared
// base store's ptsMap, for Stats accounting.
func (df *DFStore[L, K, D, S]) idMaps() []map[K]PointsToID {
	maps := df.base.idMaps()
	for _, inner := range df.dfIn {
		maps = append(maps, inner)
	}
	for _, inner := range df.dfOut {
		maps = append(maps, inner)
	}
	return maps
}
