package pts

// DiffStore layers propagated-vs-new bookkeeping on top of a BaseStore:
// for each key, propaPtsMap holds what has already been sent outward and
// diffPtsMap holds the most recently computed remainder.
type DiffStore[K comparable, D comparable, S any] struct {
	*BaseStore[K, D, S]

	propaPtsMap map[K]PointsToID
	diffPtsMap  map[K]PointsToID
}

// NewDiffStore constructs a DiffStore over cache.
func NewDiffStore[K comparable, D comparable, S any](cache *Cache[S, D], reversePT bool, ptsLimit int) *DiffStore[K, D, S] {
	return &DiffStore[K, D, S]{
		BaseStore:   NewBaseStore[K, D, S](cache, reversePT, ptsLimit),
		propaPtsMap: make(map[K]PointsToID),
		diffPtsMap:  make(map[K]PointsToID),
	}
}

// Kind reports this store's discriminator tag.
func (ds *DiffStore[K, D, S]) Kind() Kind { return KindDiff }

// GetDiffPts materialises the most recently computed diff set for k.
func (ds *DiffStore[K, D, S]) GetDiffPts(k K) S {
	return ds.cache.Actual(ds.diffPtsMap[k])
}

// ComputeDiffPts sets diffPtsMap[k] to all ∖ propaPtsMap[k] (what hasn't
// yet been propagated), then advances propaPtsMap[k] to all. Returns
// whether the diff is non-empty.
func (ds *DiffStore[K, D, S]) ComputeDiffPts(k K, all S) bool {
	allID := ds.cache.Emplace(all)
	diffID := ds.cache.Complement(allID, ds.propaPtsMap[k])
	ds.diffPtsMap[k] = diffID
	ds.propaPtsMap[k] = allID
	return diffID != emptyID
}

// UpdatePropaPtsMap intersects dst's propagated set with src's: when a
// transfer merges src's information into dst, only the portion already
// propagated by *both* endpoints can be considered already propagated
// at dst.
func (ds *DiffStore[K, D, S]) UpdatePropaPtsMap(src, dst K) {
	ds.propaPtsMap[dst] = ds.cache.Intersection(ds.propaPtsMap[dst], ds.propaPtsMap[src])
}

// ClearPropaPts resets k's propagated set to empty.
func (ds *DiffStore[K, D, S]) ClearPropaPts(k K) {
	ds.propaPtsMap[k] = emptyID
}

// Clear empties the base maps plus the diff-layer maps.
func (ds *DiffStore[K, D, S]) Clear() {
	ds.BaseStore.Clear()
	ds.propaPtsMap = make(map[K]PointsToID)
	ds.diffPtsMap = make(map[K]PointsToID)
}

func (ds *DiffStore[K, D, S]) idMaps() []map[K]PointsToID {
	return append(ds.BaseStore.idMaps(), ds.propaPtsMap, ds.diffPtsMap)
}
