package pts

import "sort"

// collectIDs flattens every non-empty ID out of a set of key->ID maps.
// Duplicates are kept: they are what topN counts.
func collectIDs[K comparable](maps []map[K]PointsToID) []PointsToID {
	var ids []PointsToID
	for _, m := range maps {
		for _, id := range m {
			if id != emptyID {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// TopN counts occurrences of each distinct ID in ids, and returns the
// sum of the n largest counts plus the total number of non-empty keys.
// n is clamped to the number of distinct IDs present.
func TopN(ids []PointsToID, n int) (sumTopN int, liveKeyCount int) {
	counts := make(map[PointsToID]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}

	liveKeyCount = len(ids)

	freq := make([]int, 0, len(counts))
	for _, c := range counts {
		freq = append(freq, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(freq)))

	if n > len(freq) {
		n = len(freq)
	}
	for i := 0; i < n; i++ {
		sumTopN += freq[i]
	}
	return
}

// InUse returns the cardinality of the set of distinct IDs in ids.
func InUse(ids []PointsToID) int {
	seen := make(map[PointsToID]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// Stats reports (sumOfTopN, liveKeyCount) across this store's ptsMap.
func (bs *BaseStore[K, D, S]) Stats(n int) (int, int) {
	return TopN(collectIDs(bs.idMaps()), n)
}

// InUsePointsToSets reports how many distinct sets are referenced from
// ptsMap.
func (bs *BaseStore[K, D, S]) InUsePointsToSets() int {
	return InUse(collectIDs(bs.idMaps()))
}

// Stats reports (sumOfTopN, liveKeyCount) across ptsMap, propaPtsMap and
// diffPtsMap.
func (ds *DiffStore[K, D, S]) Stats(n int) (int, int) {
	return TopN(collectIDs(ds.idMaps()), n)
}

func (ds *DiffStore[K, D, S]) InUsePointsToSets() int {
	return InUse(collectIDs(ds.idMaps()))
}

// Stats reports (sumOfTopN, liveKeyCount) across the shared base
// ptsMap plus every inner map of dfIn and dfOut.
func (df *DFStore[L, K, D, S]) Stats(n int) (int, int) {
	return TopN(collectIDs(df.idMaps()), n)
}

func (df *DFStore[L, K, D, S]) InUsePointsToSets() int {
	return InUse(collectIDs(df.idMaps()))
}

// Stats reports (sumOfTopN, liveKeyCount) across both tl.ptsMap and
// at.ptsMap.
func (vs *VersionedStore[K, VK, D, S]) Stats(n int) (int, int) {
	ids := collectIDs(vs.idMapsTL())
	ids = append(ids, collectIDs(vs.idMapsAT())...)
	return TopN(ids, n)
}

func (vs *VersionedStore[K, VK, D, S]) InUsePointsToSets() int {
	ids := collectIDs(vs.idMapsTL())
	ids = append(ids, collectIDs(vs.idMapsAT())...)
	return InUse(ids)
}
