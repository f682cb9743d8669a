package pts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntCache() *Cache[intSparse, int] {
	return NewCache[intSparse, int](intAlgebra{}, intHasher{})
}

func TestCacheDeterminismAndUniqueness(t *testing.T) {
	c := newIntCache()

	a1 := c.Emplace(mkSet(1, 2, 3))
	a2 := c.Emplace(mkSet(1, 2, 3))
	require.Equal(t, a1, a2, "emplace should be deterministic for equal sets")

	b := c.Emplace(mkSet(1, 2))
	assert.NotEqual(t, a1, b, "distinct sets must get distinct IDs")
}

func TestCacheUnionCorrectnessAndCommutativity(t *testing.T) {
	c := newIntCache()
	a := c.Emplace(mkSet(1, 2))
	b := c.Emplace(mkSet(2, 3))

	u1 := c.Union(a, b)
	u2 := c.Union(b, a)
	assert.Equal(t, u1, u2, "union must be commutative")
	assert.ElementsMatch(t, []int{1, 2, 3}, toSlice(c.Actual(u1)))
}

func TestCacheIntersectionCorrectnessAndCommutativity(t *testing.T) {
	c := newIntCache()
	a := c.Emplace(mkSet(1, 2, 3))
	b := c.Emplace(mkSet(2, 3, 4))

	i1 := c.Intersection(a, b)
	i2 := c.Intersection(b, a)
	assert.Equal(t, i1, i2)
	assert.ElementsMatch(t, []int{2, 3}, toSlice(c.Actual(i1)))
}

func TestCacheComplement(t *testing.T) {
	c := newIntCache()
	a := c.Emplace(mkSet(1, 2, 3))
	b := c.Emplace(mkSet(2, 3))

	comp := c.Complement(a, b)
	assert.ElementsMatch(t, []int{1}, toSlice(c.Actual(comp)))

	assert.Equal(t, emptyID, c.Complement(a, a), "complement(a,a) = 0")
	assert.Equal(t, a, c.Complement(a, emptyID), "complement(a,0) = a")
	assert.Equal(t, emptyID, c.Complement(emptyID, a), "complement(0,a) = 0")
}

func TestCacheEmptyAndIdentityShortcuts(t *testing.T) {
	c := newIntCache()
	a := c.Emplace(mkSet(1, 2))

	assert.Equal(t, a, c.Union(a, emptyID))
	assert.Equal(t, a, c.Union(emptyID, a))
	assert.Equal(t, emptyID, c.Intersection(a, emptyID))
	assert.Equal(t, emptyID, c.Intersection(emptyID, a))
	assert.Equal(t, a, c.Complement(a, emptyID))
	assert.Equal(t, emptyID, c.Complement(emptyID, a))

	assert.Equal(t, a, c.Union(a, a), "union(a,a) = a")
	assert.Equal(t, a, c.Intersection(a, a), "intersection(a,a) = a")

	before := c.Stats()
	c.Union(a, emptyID)
	c.Intersection(a, emptyID)
	after := c.Stats()
	assert.Equal(t, before, after, "identity/empty shortcuts must not touch the memo")
}

func TestCacheMemoHitsDoNotRecompute(t *testing.T) {
	c := newIntCache()
	a := c.Emplace(mkSet(1, 2))
	b := c.Emplace(mkSet(3, 4))

	c.Union(a, b)
	statsAfterFirst := c.Stats()
	assert.Equal(t, 1, statsAfterFirst.UnionMisses)

	c.Union(a, b)
	c.Union(b, a) // canonicalised to the same memo entry
	statsAfterRepeat := c.Stats()
	assert.Equal(t, statsAfterFirst.UnionMisses, statsAfterRepeat.UnionMisses)
	assert.Equal(t, 2, statsAfterRepeat.UnionHits)
}

// --- test fixtures: a tiny int-set algebra independent of the
// intsetpts plug-in, so cache tests don't depend on x/tools. ---

type intSparse map[int]struct{}

func mkSet(xs ...int) intSparse {
	s := make(intSparse, len(xs))
	for _, x := range xs {
		s[x] = struct{}{}
	}
	return s
}

func toSlice(s intSparse) []int {
	out := make([]int, 0, len(s))
	for x := range s {
		out = append(out, x)
	}
	return out
}

type intAlgebra struct{}

func (intAlgebra) Empty() intSparse       { return nil }
func (intAlgebra) Singleton(d int) intSparse { return mkSet(d) }
func (intAlgebra) Len(s intSparse) int    { return len(s) }
func (intAlgebra) ForEach(s intSparse, f func(int)) {
	for x := range s {
		f(x)
	}
}
func (intAlgebra) Union(a, b intSparse) intSparse {
	out := make(intSparse, len(a)+len(b))
	for x := range a {
		out[x] = struct{}{}
	}
	for x := range b {
		out[x] = struct{}{}
	}
	return out
}
func (intAlgebra) Intersection(a, b intSparse) intSparse {
	out := make(intSparse)
	for x := range a {
		if _, ok := b[x]; ok {
			out[x] = struct{}{}
		}
	}
	return out
}
func (intAlgebra) Difference(a, b intSparse) intSparse {
	out := make(intSparse)
	for x := range a {
		if _, ok := b[x]; !ok {
			out[x] = struct{}{}
		}
	}
	return out
}

type intHasher struct{}

// Hash folds elements in with a commutative sum: map iteration order is
// random, and equal sets must always land in the same bucket.
func (intHasher) Hash(s intSparse) uint64 {
	var h uint64
	for x := range s {
		e := uint64(uint32(x)) * 1099511628211
		h += e ^ (e >> 31)
	}
	return h
}

func (intHasher) Equal(a, b intSparse) bool {
	if len(a) != len(b) {
		return false
	}
	for x := range a {
		if _, ok := b[x]; !ok {
			return false
		}
	}
	return true
}
