package pts

// VersionedStore partitions keys into two namespaces sharing one cache:
// tl, keyed by a plain Key (top-level pointers), and at, keyed by a
// VersionedKey (address-taken pointers SSA-renamed by version). Because
// both draw IDs from the same Cache, a union across namespaces is just
// a cache union on the counterparty's current ID.
type VersionedStore[K comparable, VK comparable, D comparable, S any] struct {
	cache *Cache[S, D]
	tl    *BaseStore[K, D, S]
	at    *BaseStore[VK, D, S]
}

// NewVersionedStore constructs a VersionedStore over cache.
func NewVersionedStore[K comparable, VK comparable, D comparable, S any](cache *Cache[S, D], reversePT bool, ptsLimit int) *VersionedStore[K, VK, D, S] {
	return &VersionedStore[K, VK, D, S]{
		cache: cache,
		tl:    NewBaseStore[K, D, S](cache, reversePT, ptsLimit),
		at:    NewBaseStore[VK, D, S](cache, reversePT, ptsLimit),
	}
}

// Kind reports this store's discriminator tag.
func (vs *VersionedStore[K, VK, D, S]) Kind() Kind { return KindVersioned }

// TL / AT expose the two inner namespaces for direct single-namespace
// operations (GetPts, AddPts, ClearPts, ...).
func (vs *VersionedStore[K, VK, D, S]) TL() *BaseStore[K, D, S]   { return vs.tl }
func (vs *VersionedStore[K, VK, D, S]) AT() *BaseStore[VK, D, S] { return vs.at }

// UnionTLFromAT unions at's current set for src into tl's set for dst,
// reading src's ID directly out of the AT namespace: both namespaces
// share one cache, so no conversion is needed.
func (vs *VersionedStore[K, VK, D, S]) UnionTLFromAT(dst K, src VK) bool {
	return vs.tl.unionFromID(dst, vs.at.GetPtsID(src))
}

// UnionATFromTL is UnionTLFromAT's counterpart: unions tl's set for src
// into at's set for dst.
func (vs *VersionedStore[K, VK, D, S]) UnionATFromTL(dst VK, src K) bool {
	return vs.at.unionFromID(dst, vs.tl.GetPtsID(src))
}

// Clear empties both inner namespaces.
func (vs *VersionedStore[K, VK, D, S]) Clear() {
	vs.tl.Clear()
	vs.at.Clear()
}

func (vs *VersionedStore[K, VK, D, S]) idMapsTL() []map[K]PointsToID {
	return vs.tl.idMaps()
}

func (vs *VersionedStore[K, VK, D, S]) idMapsAT() []map[VK]PointsToID {
	return vs.at.idMaps()
}
