// Package intsetpts plugs golang.org/x/tools/container/intsets.Sparse in
// as the concrete points-to set encoding, the same sparse bitset used for
// pts(n) by SSA-based Andersen solvers built on this toolchain. The core
// package never depends on this directly: it is wired in only by callers
// that pick a concrete set representation.
package intsetpts

import (
	"golang.org/x/tools/container/intsets"
)

// Algebra implements pts.SetAlgebra[intsets.Sparse, int].
type Algebra struct{}

func (Algebra) Empty() intsets.Sparse { return intsets.Sparse{} }

func (Algebra) Singleton(d int) intsets.Sparse {
	var s intsets.Sparse
	s.Insert(d)
	return s
}

func (Algebra) Len(s intsets.Sparse) int { return s.Len() }

func (Algebra) ForEach(s intsets.Sparse, f func(int)) {
	var space [32]int
	for _, x := range s.AppendTo(space[:0]) {
		f(x)
	}
}

func (Algebra) Union(a, b intsets.Sparse) intsets.Sparse {
	var out intsets.Sparse
	out.Union(&a, &b)
	return out
}

func (Algebra) Intersection(a, b intsets.Sparse) intsets.Sparse {
	var out intsets.Sparse
	out.Intersection(&a, &b)
	return out
}

func (Algebra) Difference(a, b intsets.Sparse) intsets.Sparse {
	var out intsets.Sparse
	out.Difference(&a, &b)
	return out
}

// Hasher implements pts.Hasher[intsets.Sparse] over the sorted element
// sequence AppendTo already gives us, FNV-1a folded into a uint64.
type Hasher struct{}

func (Hasher) Hash(s intsets.Sparse) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211

	h := uint64(offset64)
	var space [32]int
	for _, x := range s.AppendTo(space[:0]) {
		h ^= uint64(uint32(x))
		h *= prime64
	}
	return h
}

func (Hasher) Equal(a, b intsets.Sparse) bool {
	return a.Equals(&b)
}
