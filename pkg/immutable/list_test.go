package immutable

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewList(t *testing.T) {
	l := New[int]()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Slice())
}

func TestList_From(t *testing.T) {
	l := From([]string{"a", "b", "c"})

	require.Equal(t, 3, l.Len())
	assert.Equal(t, "a", l.Get(0))
	assert.Equal(t, "b", l.Get(1))
	assert.Equal(t, "c", l.Get(2))
}

func TestList_Insert(t *testing.T) {
	t.Run("insert at front, middle and back", func(t *testing.T) {
		l := From([]int{1, 3})

		l = l.Insert(1, 2)  // middle
		l = l.Insert(0, 0)  // front
		l = l.Insert(4, 4)  // back

		assert.Equal(t, []int{0, 1, 2, 3, 4}, l.Slice())
	})

	t.Run("insert does not touch the previous version", func(t *testing.T) {
		v1 := From([]int{10, 20, 30})
		v2 := v1.Insert(1, 15)

		assert.Equal(t, []int{10, 20, 30}, v1.Slice())
		assert.Equal(t, []int{10, 15, 20, 30}, v2.Slice())
	})

	t.Run("out of range panics", func(t *testing.T) {
		l := From([]int{1})
		assert.Panics(t, func() { l.Insert(-1, 0) })
		assert.Panics(t, func() { l.Insert(2, 0) })
	})
}

func TestList_Remove(t *testing.T) {
	t.Run("remove each position", func(t *testing.T) {
		base := From([]int{0, 1, 2, 3, 4})

		for i := 0; i < base.Len(); i++ {
			got := base.Remove(i)

			want := make([]int, 0, 4)
			for j := 0; j < 5; j++ {
				if j != i {
					want = append(want, j)
				}
			}
			assert.Equal(t, want, got.Slice())
			// every removal leaves the base version intact
			assert.Equal(t, []int{0, 1, 2, 3, 4}, base.Slice())
		}
	})

	t.Run("out of range panics", func(t *testing.T) {
		l := New[int]()
		assert.Panics(t, func() { l.Remove(0) })
	})
}

func TestList_Get_OutOfRange(t *testing.T) {
	l := From([]int{1, 2})

	assert.Panics(t, func() { l.Get(-1) })
	assert.Panics(t, func() { l.Get(2) })
}

func TestList_StructuralSharing(t *testing.T) {
	v1 := From(seq(1024))
	v2 := v1.Insert(512, -1)

	// An insert touches one root-to-leaf spine; the sibling of the new root
	// must be reused wholesale from the previous version.
	shared := v1.root.left == v2.root.left || v1.root.right == v2.root.right
	assert.True(t, shared, "expected one root subtree to be shared between versions")
}

func TestList_Search(t *testing.T) {
	l := From([]int{2, 4, 4, 8})

	assert.Equal(t, 0, l.Search(func(v int) bool { return v >= 1 }))
	assert.Equal(t, 1, l.Search(func(v int) bool { return v >= 3 }))
	assert.Equal(t, 1, l.Search(func(v int) bool { return v >= 4 }))
	assert.Equal(t, 3, l.Search(func(v int) bool { return v > 4 }))
	assert.Equal(t, 4, l.Search(func(v int) bool { return v > 8 }))

	empty := New[int]()
	assert.Equal(t, 0, empty.Search(func(int) bool { return true }))
}

func TestList_ForEach_EarlyStop(t *testing.T) {
	l := From([]int{0, 1, 2, 3})

	var visited []int
	l.ForEach(func(i int, v int) bool {
		visited = append(visited, v)
		return v < 1
	})

	assert.Equal(t, []int{0, 1}, visited)
}

// Randomized cross-check of the tree against a plain slice model, including
// the weight-balance invariant after every operation.
func TestList_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := New[int]()
	var model []int

	for step := 0; step < 3000; step++ {
		if len(model) == 0 || rng.Intn(3) != 0 {
			i := rng.Intn(len(model) + 1)
			v := rng.Int()
			l = l.Insert(i, v)
			model = append(model[:i:i], append([]int{v}, model[i:]...)...)
		} else {
			i := rng.Intn(len(model))
			l = l.Remove(i)
			model = append(model[:i:i], model[i+1:]...)
		}

		require.Equal(t, len(model), l.Len())
		require.NoError(t, checkBalanced(l.root))
	}

	require.Equal(t, model, l.Slice())
	for i, want := range model {
		require.Equal(t, want, l.Get(i))
	}
}

func TestBuilder(t *testing.T) {
	t.Run("append then build", func(t *testing.T) {
		b := NewBuilder[int]()
		b.Append(3, 1)
		b.Append(2)

		require.Equal(t, 3, b.Len())
		l := b.Build()
		assert.Equal(t, []int{3, 1, 2}, l.Slice())
		assert.NoError(t, checkBalanced(l.root))
	})

	t.Run("stable sort before build", func(t *testing.T) {
		type keyed struct {
			key int
			tag string
		}
		b := NewBuilder[keyed]()
		b.Append(keyed{2, "a"}, keyed{1, "b"}, keyed{2, "c"}, keyed{1, "d"})
		b.Sort(func(x, y keyed) bool { return x.key < y.key })

		l := b.Build()
		assert.Equal(t, []keyed{{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}}, l.Slice())
	})

	t.Run("builder is consumed by Build", func(t *testing.T) {
		b := NewBuilder[int]()
		b.Append(1)
		_ = b.Build()

		assert.Panics(t, func() { b.Append(2) })
		assert.Panics(t, func() { b.Build() })
	})
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func checkBalanced[T any](n *node[T]) error {
	if n == nil {
		return nil
	}
	if size(n) != 1+size(n.left)+size(n.right) {
		return errSizeMismatch
	}
	if weight(n.left)+weight(n.right) > 2 {
		if weight(n.left) > wbDelta*weight(n.right) || weight(n.right) > wbDelta*weight(n.left) {
			return errImbalance
		}
	}
	if err := checkBalanced(n.left); err != nil {
		return err
	}
	return checkBalanced(n.right)
}

var (
	errSizeMismatch = errors.New("cached subtree size does not match recount")
	errImbalance    = errors.New("weight-balance invariant violated")
)
