// Package immutable provides a persistent positional list with structural
// sharing. Every mutating operation returns a new list that shares all
// unaffected subtrees with the previous version, so any number of readers can
// keep using older versions while writers derive new ones.
package immutable

import "fmt"

// List is an immutable sequence backed by a weight-balanced binary tree.
// Get, Insert and Remove run in O(log n); Insert and Remove allocate only the
// spine from the root to the touched position.
//
// The zero value is an empty list.
type List[T any] struct {
	root *node[T]
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// From builds a list holding the given items in order.
func From[T any](items []T) *List[T] {
	return &List[T]{root: buildBalanced(items)}
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return size(l.root)
}

// Get returns the element at index i. It panics if i is out of range.
func (l *List[T]) Get(i int) T {
	if i < 0 || i >= size(l.root) {
		panic(fmt.Sprintf("immutable: index %d out of range [0,%d)", i, size(l.root)))
	}
	n := l.root
	for {
		ls := size(n.left)
		switch {
		case i < ls:
			n = n.left
		case i > ls:
			i -= ls + 1
			n = n.right
		default:
			return n.value
		}
	}
}

// Insert returns a new list with v inserted at index i, shifting later
// elements right. Valid indexes are 0 through Len inclusive; anything else
// panics.
func (l *List[T]) Insert(i int, v T) *List[T] {
	if i < 0 || i > size(l.root) {
		panic(fmt.Sprintf("immutable: insert index %d out of range [0,%d]", i, size(l.root)))
	}
	return &List[T]{root: insert(l.root, i, v)}
}

// Append returns a new list with v added after the last element.
func (l *List[T]) Append(v T) *List[T] {
	return &List[T]{root: insert(l.root, size(l.root), v)}
}

// Remove returns a new list with the element at index i removed. It panics if
// i is out of range.
func (l *List[T]) Remove(i int) *List[T] {
	if i < 0 || i >= size(l.root) {
		panic(fmt.Sprintf("immutable: remove index %d out of range [0,%d)", i, size(l.root)))
	}
	return &List[T]{root: remove(l.root, i)}
}

// ForEach walks the list in order, calling fn with each index and element.
// The walk stops early when fn returns false.
func (l *List[T]) ForEach(fn func(i int, v T) bool) {
	i := 0
	walk(l.root, &i, fn)
}

// Slice copies the elements into a fresh slice in list order.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, size(l.root))
	l.ForEach(func(_ int, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Search returns the smallest index at which f reports true, or Len when f is
// false everywhere. f must be monotonic over the sequence: false for a prefix,
// true for the rest. The search is a single O(log n) tree descent.
func (l *List[T]) Search(f func(v T) bool) int {
	idx := size(l.root)
	offset := 0
	for n := l.root; n != nil; {
		if f(n.value) {
			idx = offset + size(n.left)
			n = n.left
		} else {
			offset += size(n.left) + 1
			n = n.right
		}
	}
	return idx
}

type node[T any] struct {
	value T
	left  *node[T]
	right *node[T]
	size  int
}

func size[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.size
}

func newNode[T any](v T, l, r *node[T]) *node[T] {
	return &node[T]{value: v, left: l, right: r, size: 1 + size(l) + size(r)}
}

// Weight-balanced tree parameters. A node is balanced when neither subtree
// weighs more than wbDelta times the other; wbGamma picks between single and
// double rotations. Weights are sizes plus one so leaves never divide by zero.
const (
	wbDelta = 3
	wbGamma = 2
)

func weight[T any](n *node[T]) int {
	return size(n) + 1
}

// rebuild joins v with subtrees l and r, restoring the weight invariant after
// a single insert or remove on either side.
func rebuild[T any](v T, l, r *node[T]) *node[T] {
	if weight(l)+weight(r) <= 2 {
		return newNode(v, l, r)
	}
	if weight(r) > wbDelta*weight(l) {
		if weight(r.left) < wbGamma*weight(r.right) {
			return rotateLeft(v, l, r)
		}
		return rotateLeftDouble(v, l, r)
	}
	if weight(l) > wbDelta*weight(r) {
		if weight(l.right) < wbGamma*weight(l.left) {
			return rotateRight(v, l, r)
		}
		return rotateRightDouble(v, l, r)
	}
	return newNode(v, l, r)
}

func rotateLeft[T any](v T, l, r *node[T]) *node[T] {
	return newNode(r.value, newNode(v, l, r.left), r.right)
}

func rotateLeftDouble[T any](v T, l, r *node[T]) *node[T] {
	rl := r.left
	return newNode(rl.value, newNode(v, l, rl.left), newNode(r.value, rl.right, r.right))
}

func rotateRight[T any](v T, l, r *node[T]) *node[T] {
	return newNode(l.value, l.left, newNode(v, l.right, r))
}

func rotateRightDouble[T any](v T, l, r *node[T]) *node[T] {
	lr := l.right
	return newNode(lr.value, newNode(l.value, l.left, lr.left), newNode(v, lr.right, r))
}

func insert[T any](n *node[T], i int, v T) *node[T] {
	if n == nil {
		return newNode(v, nil, nil)
	}
	if ls := size(n.left); i <= ls {
		return rebuild(n.value, insert(n.left, i, v), n.right)
	} else {
		return rebuild(n.value, n.left, insert(n.right, i-ls-1, v))
	}
}

func remove[T any](n *node[T], i int) *node[T] {
	ls := size(n.left)
	switch {
	case i < ls:
		return rebuild(n.value, remove(n.left, i), n.right)
	case i > ls:
		return rebuild(n.value, n.left, remove(n.right, i-ls-1))
	default:
		return glue(n.left, n.right)
	}
}

// glue merges two balanced subtrees whose weights differ by at most the tree's
// balance factor, pulling the replacement root from the heavier side.
func glue[T any](l, r *node[T]) *node[T] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case weight(l) > weight(r):
		v, rest := popMax(l)
		return rebuild(v, rest, r)
	default:
		v, rest := popMin(r)
		return rebuild(v, l, rest)
	}
}

func popMin[T any](n *node[T]) (T, *node[T]) {
	if n.left == nil {
		return n.value, n.right
	}
	v, rest := popMin(n.left)
	return v, rebuild(n.value, rest, n.right)
}

func popMax[T any](n *node[T]) (T, *node[T]) {
	if n.right == nil {
		return n.value, n.left
	}
	v, rest := popMax(n.right)
	return v, rebuild(n.value, n.left, rest)
}

func walk[T any](n *node[T], i *int, fn func(i int, v T) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, i, fn) {
		return false
	}
	if !fn(*i, n.value) {
		return false
	}
	*i++
	return walk(n.right, i, fn)
}

// buildBalanced constructs a perfectly balanced tree from items in O(n).
func buildBalanced[T any](items []T) *node[T] {
	if len(items) == 0 {
		return nil
	}
	mid := len(items) / 2
	return newNode(items[mid], buildBalanced(items[:mid]), buildBalanced(items[mid+1:]))
}
