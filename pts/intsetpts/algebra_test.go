package intsetpts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/container/intsets"

	"github.com/april1989/ptastore/pts"
)

func build(xs ...int) intsets.Sparse {
	a := Algebra{}
	s := a.Empty()
	for _, x := range xs {
		s = a.Union(s, a.Singleton(x))
	}
	return s
}

func elems(s intsets.Sparse) []int {
	var out []int
	Algebra{}.ForEach(s, func(x int) { out = append(out, x) })
	return out
}

func TestAlgebraUnionIntersectionDifference(t *testing.T) {
	a := Algebra{}
	x := build(1, 2, 3)
	y := build(2, 3, 4)

	assert.ElementsMatch(t, []int{1, 2, 3, 4}, elems(a.Union(x, y)))
	assert.ElementsMatch(t, []int{2, 3}, elems(a.Intersection(x, y)))
	assert.ElementsMatch(t, []int{1}, elems(a.Difference(x, y)))
}

func TestHasherEqualAndHash(t *testing.T) {
	h := Hasher{}
	x := build(1, 2, 3)
	y := build(3, 2, 1)

	assert.True(t, h.Equal(x, y))
	assert.Equal(t, h.Hash(x), h.Hash(y))
}

func TestAlgebraSatisfiesCacheInterfaces(t *testing.T) {
	var _ pts.SetAlgebra[intsets.Sparse, int] = Algebra{}
	var _ pts.Hasher[intsets.Sparse] = Hasher{}
}

func TestAlgebraThroughRealCache(t *testing.T) {
	cache := pts.NewCache[intsets.Sparse, int](Algebra{}, Hasher{})
	base := pts.NewBaseStore[string, int, intsets.Sparse](cache, true, 0)

	base.AddPts("p", 1)
	base.AddPts("p", 2)
	base.AddPts("q", 1)
	base.AddPts("q", 2)

	assert.Equal(t, base.GetPtsID("p"), base.GetPtsID("q"))
	assert.ElementsMatch(t, []int{1, 2}, elems(base.GetPts("p")))
}
