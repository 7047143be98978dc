package container

import "cmp"

// node is one AVL tree node. Each node owns its two children; the tree
// never shares or cycles.
type node[T any] struct {
	key    T
	left   *node[T]
	right  *node[T]
	height int
}

// OrderedSet is a set of unique keys under a total order, backed by an
// AVL tree. After every mutation each node satisfies
// |height(left)-height(right)| <= 1 and an in-order walk is strictly
// ascending under the comparator.
type OrderedSet[T any] struct {
	root    *node[T]
	compare func(a, b T) int
	size    int
}

// NewOrderedSet creates an ordered set over the natural order of T.
func NewOrderedSet[T cmp.Ordered]() *OrderedSet[T] {
	return NewOrderedSetFunc[T](cmp.Compare[T])
}

// NewOrderedSetFunc creates an ordered set with a custom comparator.
// The comparator must define a total order; keys comparing equal are
// treated as duplicates and rejected by Add.
func NewOrderedSetFunc[T any](compare func(a, b T) int) *OrderedSet[T] {
	return &OrderedSet[T]{compare: compare}
}

// Len returns the number of keys.
func (o *OrderedSet[T]) Len() int {
	return o.size
}

// Add inserts a key. Returns false without mutation if an equal key
// already exists.
func (o *OrderedSet[T]) Add(key T) bool {
	root, added := o.insert(o.root, key)
	o.root = root
	if added {
		o.size++
	}
	return added
}

// Delete removes a key. Returns false if no equal key exists.
func (o *OrderedSet[T]) Delete(key T) bool {
	root, removed := o.remove(o.root, key)
	o.root = root
	if removed {
		o.size--
	}
	return removed
}

// Has reports whether an equal key exists.
func (o *OrderedSet[T]) Has(key T) bool {
	n := o.root
	for n != nil {
		switch c := o.compare(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Min returns the smallest key.
func (o *OrderedSet[T]) Min() (T, bool) {
	if o.root == nil {
		var zero T
		return zero, false
	}
	n := o.root
	for n.left != nil {
		n = n.left
	}
	return n.key, true
}

// Max returns the largest key.
func (o *OrderedSet[T]) Max() (T, bool) {
	if o.root == nil {
		var zero T
		return zero, false
	}
	n := o.root
	for n.right != nil {
		n = n.right
	}
	return n.key, true
}

// Floor returns the largest key <= key.
func (o *OrderedSet[T]) Floor(key T) (T, bool) {
	var best T
	found := false

	n := o.root
	for n != nil {
		switch c := o.compare(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			best, found = n.key, true
			n = n.right
		default:
			return n.key, true
		}
	}
	return best, found
}

// Ceiling returns the smallest key >= key.
func (o *OrderedSet[T]) Ceiling(key T) (T, bool) {
	var best T
	found := false

	n := o.root
	for n != nil {
		switch c := o.compare(key, n.key); {
		case c > 0:
			n = n.right
		case c < 0:
			best, found = n.key, true
			n = n.left
		default:
			return n.key, true
		}
	}
	return best, found
}

// Range collects the keys in [from, to] in ascending order, descending
// only into subtrees that can hold qualifying keys.
func (o *OrderedSet[T]) Range(from, to T) []T {
	var out []T
	o.collectRange(o.root, from, to, &out)
	return out
}

func (o *OrderedSet[T]) collectRange(n *node[T], from, to T, out *[]T) {
	if n == nil {
		return
	}
	if o.compare(from, n.key) < 0 {
		o.collectRange(n.left, from, to, out)
	}
	if o.compare(from, n.key) <= 0 && o.compare(n.key, to) <= 0 {
		*out = append(*out, n.key)
	}
	if o.compare(n.key, to) < 0 {
		o.collectRange(n.right, from, to, out)
	}
}

// Values returns all keys in ascending order, freshly materialized.
func (o *OrderedSet[T]) Values() []T {
	out := make([]T, 0, o.size)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.key)
		walk(n.right)
	}
	walk(o.root)
	return out
}

// insert descends to the insertion point and rebalances every node on
// the way back up. The (possibly rotated) subtree root is handed back
// to the caller.
func (o *OrderedSet[T]) insert(n *node[T], key T) (*node[T], bool) {
	if n == nil {
		return &node[T]{key: key, height: 1}, true
	}

	var added bool
	switch c := o.compare(key, n.key); {
	case c < 0:
		n.left, added = o.insert(n.left, key)
	case c > 0:
		n.right, added = o.insert(n.right, key)
	default:
		return n, false
	}

	if !added {
		return n, false
	}
	return rebalance(n), true
}

// remove deletes the node holding key. A node with two children takes
// its in-order successor's key and the successor node is deleted from
// the right subtree; node identities are never swapped.
func (o *OrderedSet[T]) remove(n *node[T], key T) (*node[T], bool) {
	if n == nil {
		return nil, false
	}

	var removed bool
	switch c := o.compare(key, n.key); {
	case c < 0:
		n.left, removed = o.remove(n.left, key)
	case c > 0:
		n.right, removed = o.remove(n.right, key)
	default:
		removed = true
		switch {
		case n.left == nil:
			return n.right, true
		case n.right == nil:
			return n.left, true
		default:
			successor := n.right
			for successor.left != nil {
				successor = successor.left
			}
			n.key = successor.key
			n.right, _ = o.remove(n.right, successor.key)
		}
	}

	if !removed {
		return n, false
	}
	return rebalance(n), true
}

func height[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor[T any](n *node[T]) int {
	return height(n.left) - height(n.right)
}

func fixHeight[T any](n *node[T]) {
	n.height = 1 + max(height(n.left), height(n.right))
}

// rebalance recomputes the node's height and rotates if the AVL
// invariant broke. Left-heavy with a right-heavy left child is the
// left-right case; mirror for the other side.
func rebalance[T any](n *node[T]) *node[T] {
	fixHeight(n)

	switch factor := balanceFactor(n); {
	case factor > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case factor < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func rotateRight[T any](n *node[T]) *node[T] {
	pivot := n.left
	n.left = pivot.right
	pivot.right = n
	fixHeight(n)
	fixHeight(pivot)
	return pivot
}

func rotateLeft[T any](n *node[T]) *node[T] {
	pivot := n.right
	n.right = pivot.left
	pivot.left = n
	fixHeight(n)
	fixHeight(pivot)
	return pivot
}
