package pts

import (
	"github.com/sirupsen/logrus"

	"github.com/april1989/ptastore/internal/ptlog"
)

// BaseStore maps each key to a points-to ID, maintaining an optional
// reverse map from element to keys. It borrows a Cache rather than
// owning one, so several stores can share the same interning namespace
// (the versioned store below is built from exactly two of these).
type BaseStore[K comparable, D comparable, S any] struct {
	cache     *Cache[S, D]
	reversePT bool
	ptsLimit  int // 0 = unlimited

	ptsMap    map[K]PointsToID
	revPtsMap map[D]map[K]struct{}

	skipped map[K]struct{} // keys that hit ptsLimit and stopped growing
}

// NewBaseStore constructs a BaseStore over cache. ptsLimit of 0 means no
// cap on any single points-to set's cardinality.
func NewBaseStore[K comparable, D comparable, S any](cache *Cache[S, D], reversePT bool, ptsLimit int) *BaseStore[K, D, S] {
	bs := &BaseStore[K, D, S]{
		cache:     cache,
		reversePT: reversePT,
		ptsLimit:  ptsLimit,
		ptsMap:    make(map[K]PointsToID),
	}
	if reversePT {
		bs.revPtsMap = make(map[D]map[K]struct{})
	}
	return bs
}

// Kind reports this store's discriminator tag.
func (bs *BaseStore[K, D, S]) Kind() Kind { return KindBase }

// GetPts materialises the current points-to set of k. A missing key is
// equivalent to the empty set.
func (bs *BaseStore[K, D, S]) GetPts(k K) S {
	return bs.cache.Actual(bs.ptsMap[k])
}

// GetPtsID returns the current ID of k without materialising the set.
func (bs *BaseStore[K, D, S]) GetPtsID(k K) PointsToID {
	return bs.ptsMap[k]
}

// GetRevPts returns the keys whose points-to set currently contains d.
// Fatal (precondition violation) if reverse tracking was not enabled.
func (bs *BaseStore[K, D, S]) GetRevPts(d D) map[K]struct{} {
	if !bs.reversePT {
		ptlog.Precondition(bs.Kind().String(), "GetRevPts", logrus.Fields{"reason": "reverse tracking disabled"})
	}
	return bs.revPtsMap[d]
}

// AddPts interns {elem} and unions it into k's points-to set, returning
// whether that grew the set.
func (bs *BaseStore[K, D, S]) AddPts(k K, elem D) bool {
	return bs.unionFromID(k, bs.cache.Singleton(elem))
}

// UnionPts unions src's current set into dst's, returning whether dst
// grew.
func (bs *BaseStore[K, D, S]) UnionPts(dst, src K) bool {
	return bs.unionFromID(dst, bs.ptsMap[src])
}

// UnionPtsSet unions a raw set value (not yet tracked by any key) into
// dst's points-to set.
func (bs *BaseStore[K, D, S]) UnionPtsSet(dst K, raw S) bool {
	return bs.unionFromID(dst, bs.cache.Emplace(raw))
}

// unionFromID is the single internal primitive every union-shaped
// operation reduces to. Reverse bookkeeping is updated from
// the *source* ID's elements, not the destination's: elements already in
// dst are already recorded, so only the new contribution can introduce a
// new (d, dst) relation. Spurious re-insertion when srcId overlaps dst is
// harmless because revPtsMap entries are sets.
func (bs *BaseStore[K, D, S]) unionFromID(dst K, srcID PointsToID) bool {
	if srcID == emptyID {
		return false
	}

	if bs.ptsLimit > 0 {
		if _, skip := bs.skipped[dst]; skip {
			return false
		}
	}

	cur := bs.ptsMap[dst]
	newID := bs.cache.Union(cur, srcID)
	if newID == cur {
		return false
	}

	if bs.ptsLimit > 0 && bs.cache.Len(newID) > bs.ptsLimit {
		if bs.skipped == nil {
			bs.skipped = make(map[K]struct{})
		}
		bs.skipped[dst] = struct{}{}
		ptlog.L.WithFields(logrus.Fields{"store": bs.Kind().String(), "size": bs.cache.Len(newID), "limit": bs.ptsLimit}).
			Debug("points-to set exceeded configured limit, skipping further growth")
		return false
	}

	bs.ptsMap[dst] = newID

	if bs.reversePT {
		bs.cache.ForEach(srcID, func(d D) {
			ks, ok := bs.revPtsMap[d]
			if !ok {
				ks = make(map[K]struct{})
				bs.revPtsMap[d] = ks
			}
			ks[dst] = struct{}{}
		})
	}

	return true
}

// ClearPts removes elem from k's points-to set.
func (bs *BaseStore[K, D, S]) ClearPts(k K, elem D) {
	cur := bs.ptsMap[k]
	if cur == emptyID {
		return
	}

	newID := bs.cache.Complement(cur, bs.cache.Singleton(elem))
	if newID == cur {
		return
	}
	bs.ptsMap[k] = newID

	if bs.reversePT {
		if ks, ok := bs.revPtsMap[elem]; ok {
			delete(ks, k)
		}
	}
}

// ClearFullPts empties k's points-to set entirely.
func (bs *BaseStore[K, D, S]) ClearFullPts(k K) {
	cur := bs.ptsMap[k]
	if cur == emptyID {
		return
	}

	if bs.reversePT {
		bs.cache.ForEach(cur, func(d D) {
			if ks, ok := bs.revPtsMap[d]; ok {
				delete(ks, k)
			}
		})
	}

	bs.ptsMap[k] = emptyID
}

// Clear empties both maps. The cache is untouched: other stores may
// still reference the sets it owns.
func (bs *BaseStore[K, D, S]) Clear() {
	bs.ptsMap = make(map[K]PointsToID)
	if bs.reversePT {
		bs.revPtsMap = make(map[D]map[K]struct{})
	}
	bs.skipped = nil
	ptlog.L.WithField("store", bs.Kind().String()).Debug("store cleared")
}

// Keys enumerates the keys with a current entry (including those mapped
// to the empty set, matching ptsMap's literal domain).
func (bs *BaseStore[K, D, S]) Keys() []K {
	keys := make([]K, 0, len(bs.ptsMap))
	for k := range bs.ptsMap {
		keys = append(keys, k)
	}
	return keys
}

// idMaps returns the single key->ID map this store contributes to stats
// accounting.
func (bs *BaseStore[K, D, S]) idMaps() []map[K]PointsToID {
	return []map[K]PointsToID{bs.ptsMap}
}
