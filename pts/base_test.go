package pts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStringBase(reversePT bool) *BaseStore[string, int, intSparse] {
	cache := NewCache[intSparse, int](intAlgebra{}, intHasher{})
	return NewBaseStore[string, int, intSparse](cache, reversePT, 0)
}

// scenario 1: addPts(p,x); addPts(p,y); addPts(q,x); addPts(q,y)
func TestBaseScenarioSharedSet(t *testing.T) {
	bs := newStringBase(true)

	bs.AddPts("p", 100) // x
	bs.AddPts("p", 200) // y
	bs.AddPts("q", 100)
	bs.AddPts("q", 200)

	assert.Equal(t, bs.GetPtsID("p"), bs.GetPtsID("q"), "p and q intern to the same ID")
	assert.ElementsMatch(t, []int{100, 200}, toSlice(bs.GetPts("p")))

	rev := bs.GetRevPts(100)
	_, pIn := rev["p"]
	_, qIn := rev["q"]
	assert.True(t, pIn)
	assert.True(t, qIn)
	assert.Len(t, rev, 2)
}

// scenario 2: addPts(p,x); clearPts(p,x)
func TestBaseScenarioClearElement(t *testing.T) {
	bs := newStringBase(true)

	bs.AddPts("p", 100)
	bs.ClearPts("p", 100)

	assert.Equal(t, emptyID, bs.GetPtsID("p"))
	assert.Empty(t, bs.GetRevPts(100))
}

// scenario 3: addPts(p,x); addPts(p,y); unionPts(q,p); clearFullPts(p)
func TestBaseScenarioClearFull(t *testing.T) {
	bs := newStringBase(true)

	bs.AddPts("p", 100)
	bs.AddPts("p", 200)
	bs.UnionPts("q", "p")
	bs.ClearFullPts("p")

	assert.Empty(t, toSlice(bs.GetPts("p")))
	assert.ElementsMatch(t, []int{100, 200}, toSlice(bs.GetPts("q")))

	rev100 := bs.GetRevPts(100)
	rev200 := bs.GetRevPts(200)
	_, has100 := rev100["q"]
	_, has200 := rev200["q"]
	assert.True(t, has100)
	assert.True(t, has200)
	assert.Len(t, rev100, 1)
	assert.Len(t, rev200, 1)
}

func TestUnionPtsReturnsChanged(t *testing.T) {
	bs := newStringBase(false)

	bs.AddPts("p", 1)
	changed := bs.UnionPts("q", "p")
	assert.True(t, changed, "q grew")

	changed = bs.UnionPts("q", "p")
	assert.False(t, changed, "second union is a no-op")
}

func TestGetRevPtsFatalWhenDisabled(t *testing.T) {
	bs := newStringBase(false)
	assert.Panics(t, func() { bs.GetRevPts(1) })
}

func TestPtsLimitSkipsFurtherGrowth(t *testing.T) {
	cache := NewCache[intSparse, int](intAlgebra{}, intHasher{})
	bs := NewBaseStore[string, int, intSparse](cache, false, 2)

	require.True(t, bs.AddPts("p", 1))
	require.True(t, bs.AddPts("p", 2))
	assert.False(t, bs.AddPts("p", 3), "third element would exceed the cap")
	assert.Len(t, toSlice(bs.GetPts("p")), 2)
}

func TestClearResetsButKeepsCache(t *testing.T) {
	bs := newStringBase(true)
	bs.AddPts("p", 1)
	numSetsBefore := bs.cache.NumSets()

	bs.Clear()

	assert.Equal(t, emptyID, bs.GetPtsID("p"))
	assert.Equal(t, numSetsBefore, bs.cache.NumSets(), "clear must not touch the cache")
}
