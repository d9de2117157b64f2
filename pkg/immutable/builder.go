package immutable

import "sort"

// Builder is a mutable accumulation buffer for bulk-constructing a List. It is
// meant to be uniquely owned for the duration of one batch: elements are
// appended (and optionally sorted) in place, then converted to the persistent
// structure exactly once by Build. This keeps a batch of n appends from
// materializing n intermediate list versions.
type Builder[T any] struct {
	items []T
	built bool
}

// NewBuilder returns an empty builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

// Append adds values to the end of the buffer.
func (b *Builder[T]) Append(values ...T) {
	b.assertUsable()
	b.items = append(b.items, values...)
}

// Len returns the number of buffered elements.
func (b *Builder[T]) Len() int {
	return len(b.items)
}

// Sort orders the buffered elements in place using less. The sort is stable,
// so elements comparing equal keep their append order.
func (b *Builder[T]) Sort(less func(a, b T) bool) {
	b.assertUsable()
	sort.SliceStable(b.items, func(i, j int) bool {
		return less(b.items[i], b.items[j])
	})
}

// Build converts the buffer into a perfectly balanced persistent list in O(n)
// and consumes the builder. Using the builder after Build panics; the buffer
// must never be aliased into a live list.
func (b *Builder[T]) Build() *List[T] {
	b.assertUsable()
	root := buildBalanced(b.items)
	b.items = nil
	b.built = true
	return &List[T]{root: root}
}

func (b *Builder[T]) assertUsable() {
	if b.built {
		panic("immutable: builder used after Build")
	}
}
