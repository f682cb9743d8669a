package pts

import "github.com/april1989/ptastore/internal/ptlog"

// IncDFStore extends DFStore with per-location updated-variable sets,
// letting a solver skip re-visiting a (location, key) whose IN/OUT state
// has not changed since it was last consumed.
type IncDFStore[L comparable, K comparable, D comparable, S any] struct {
	*DFStore[L, K, D, S]

	inUpdatedVar  map[L]map[K]struct{}
	outUpdatedVar map[L]map[K]struct{}
}

// NewIncDFStore constructs an IncDFStore sharing cache with base.
func NewIncDFStore[L comparable, K comparable, D comparable, S any](cache *Cache[S, D], base *BaseStore[K, D, S]) *IncDFStore[L, K, D, S] {
	return &IncDFStore[L, K, D, S]{
		DFStore:       NewDFStore[L, K, D, S](cache, base),
		inUpdatedVar:  make(map[L]map[K]struct{}),
		outUpdatedVar: make(map[L]map[K]struct{}),
	}
}

// Kind reports this store's discriminator tag.
func (ids *IncDFStore[L, K, D, S]) Kind() Kind { return KindIncDataFlow }

func markDirty[L comparable, K comparable](m map[L]map[K]struct{}, loc L, key K) {
	s, ok := m[loc]
	if !ok {
		s = make(map[K]struct{})
		m[loc] = s
	}
	s[key] = struct{}{}
}

func clearDirty[L comparable, K comparable](m map[L]map[K]struct{}, loc L, key K) {
	if s, ok := m[loc]; ok {
		delete(s, key)
	}
}

func isDirty[L comparable, K comparable](m map[L]map[K]struct{}, loc L, key K) bool {
	s, ok := m[loc]
	if !ok {
		return false
	}
	_, dirty := s[key]
	return dirty
}

// IsInDirty / IsOutDirty expose the dirty state for a (loc, key) pair.
func (ids *IncDFStore[L, K, D, S]) IsInDirty(loc L, key K) bool {
	return isDirty(ids.inUpdatedVar, loc, key)
}

func (ids *IncDFStore[L, K, D, S]) IsOutDirty(loc L, key K) bool {
	return isDirty(ids.outUpdatedVar, loc, key)
}

// InUpdatedVars returns a snapshot (copy) of the IN-dirty keys at loc,
// safe to range over while dirty bits are cleared mid-iteration.
func (ids *IncDFStore[L, K, D, S]) InUpdatedVars(loc L) []K {
	s := ids.inUpdatedVar[loc]
	keys := make([]K, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// UpdateDFInFromIn is skipped unless sV is IN-dirty at sL. A change
// marks (dL, dV) IN-dirty.
func (ids *IncDFStore[L, K, D, S]) UpdateDFInFromIn(sL L, sV K, dL L, dV K) bool {
	if !ids.IsInDirty(sL, sV) {
		return false
	}
	changed := ids.DFStore.UpdateDFInFromIn(sL, sV, dL, dV)
	if changed {
		markDirty(ids.inUpdatedVar, dL, dV)
	}
	return changed
}

// UpdateDFInFromOut is skipped unless sV is OUT-dirty at sL. A change
// marks (dL, dV) IN-dirty.
func (ids *IncDFStore[L, K, D, S]) UpdateDFInFromOut(sL L, sV K, dL L, dV K) bool {
	if !ids.IsOutDirty(sL, sV) {
		return false
	}
	changed := ids.DFStore.UpdateDFInFromOut(sL, sV, dL, dV)
	if changed {
		markDirty(ids.inUpdatedVar, dL, dV)
	}
	return changed
}

// UpdateDFOutFromIn is skipped unless sV is IN-dirty at sL. The dirty
// flag of (sL, sV) is cleared unconditionally before the union, since
// the solver is about to act on it; a change marks (dL, dV) OUT-dirty.
func (ids *IncDFStore[L, K, D, S]) UpdateDFOutFromIn(sL L, sV K, dL L, dV K) bool {
	if !ids.IsInDirty(sL, sV) {
		return false
	}
	clearDirty(ids.inUpdatedVar, sL, sV)

	changed := ids.DFStore.UpdateDFOutFromIn(sL, sV, dL, dV)
	if changed {
		markDirty(ids.outUpdatedVar, dL, dV)
	}
	return changed
}

// UpdateAllDFOutFromIn iterates a snapshot of inUpdatedVar[loc] (dirty
// bits are cleared by UpdateDFOutFromIn during iteration, so iterating
// the live map would be unsafe) and publishes each to OUT, honouring the
// same strong-update skip as the non-incremental store.
func (ids *IncDFStore[L, K, D, S]) UpdateAllDFOutFromIn(loc L, strong bool, singleton K) bool {
	changed := false
	for _, v := range ids.InUpdatedVars(loc) {
		if strong && v == singleton {
			continue
		}
		if ids.UpdateDFOutFromIn(loc, v, loc, v) {
			changed = true
		}
	}
	return changed
}

// UpdateAllDFInFromIn unconditionally unions every key in dfIn[sL] into
// dfIn[dL], for callers that already know propagation is required.
// Changed destination keys are marked IN-dirty.
func (ids *IncDFStore[L, K, D, S]) UpdateAllDFInFromIn(sL, dL L) bool {
	changed := false
	for v := range ids.dfIn[sL] {
		if ids.DFStore.UpdateDFInFromIn(sL, v, dL, v) {
			markDirty(ids.inUpdatedVar, dL, v)
			changed = true
		}
	}
	return changed
}

// UpdateAllDFInFromOut is UpdateAllDFInFromIn's OUT-sourced analogue.
func (ids *IncDFStore[L, K, D, S]) UpdateAllDFInFromOut(sL, dL L) bool {
	changed := false
	for v := range ids.dfOut[sL] {
		if ids.DFStore.UpdateDFInFromOut(sL, v, dL, v) {
			markDirty(ids.inUpdatedVar, dL, v)
			changed = true
		}
	}
	return changed
}

// UpdateTLVPts is gated on (sL, sV) being IN-dirty, clears that flag,
// then performs the union.
func (ids *IncDFStore[L, K, D, S]) UpdateTLVPts(sL L, sV K, dV K) bool {
	if !ids.IsInDirty(sL, sV) {
		return false
	}
	clearDirty(ids.inUpdatedVar, sL, sV)
	return ids.DFStore.UpdateTLVPts(sL, sV, dV)
}

// UpdateATVPts is unconditional; a change marks (dL, dV) OUT-dirty.
func (ids *IncDFStore[L, K, D, S]) UpdateATVPts(sV K, dL L, dV K) bool {
	changed := ids.DFStore.UpdateATVPts(sV, dL, dV)
	if changed {
		markDirty(ids.outUpdatedVar, dL, dV)
	}
	return changed
}

// ClearAllDFOutUpdatedVar clears every OUT-dirty bit at loc.
func (ids *IncDFStore[L, K, D, S]) ClearAllDFOutUpdatedVar(loc L) {
	delete(ids.outUpdatedVar, loc)
}

// Clear empties dfIn, dfOut, and both updated-variable maps.
func (ids *IncDFStore[L, K, D, S]) Clear() {
	ids.DFStore.Clear()
	ids.inUpdatedVar = make(map[L]map[K]struct{})
	ids.outUpdatedVar = make(map[L]map[K]struct{})
	ptlog.L.WithField("store", ids.Kind().String()).Debug("store cleared")
}
