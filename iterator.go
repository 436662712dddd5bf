package rbforest

// successor returns the in-order successor of idx using the
// parent-pointer walk: if idx has a right child, the successor is the
// minimum of that subtree; otherwise it is the nearest ancestor of
// which idx is (transitively) in the left subtree.
func (f *Forest[K, V]) successor(idx uint32) (uint32, bool) {
	n := f.nodeAt(idx)
	if r, ok := n.right(); ok {
		return f.min(r), true
	}
	cur := idx
	for {
		n := f.nodeAt(cur)
		parent, ok := n.parent()
		if !ok {
			return 0, false
		}
		p := f.nodeAt(parent)
		if l, lok := p.left(); lok && l == cur {
			return parent, true
		}
		cur = parent
	}
}

// PairIterator walks tree t of a Forest in ascending key order. It
// performs no heap allocation beyond itself and is invalidated by any
// mutating call made on the same Forest while it is in use.
type PairIterator[K any, V any] struct {
	f   *Forest[K, V]
	cur uint32
	ok  bool
}

// Pairs returns an iterator over tree t's entries in ascending key
// order.
func (f *Forest[K, V]) Pairs(t int) (*PairIterator[K, V], error) {
	if err := f.checkTreeID(t); err != nil {
		return nil, err
	}
	it := &PairIterator[K, V]{f: f}
	it.cur, it.ok = f.rootAt(uint32(t))
	if it.ok {
		it.cur = f.min(it.cur)
	}
	return it, nil
}

// Next returns the next key/value pair, or ok=false once the traversal
// is exhausted.
func (it *PairIterator[K, V]) Next() (key K, val V, ok bool) {
	if !it.ok {
		return key, val, false
	}
	n := it.f.nodeAt(it.cur)
	key = it.f.keyCodec.Decode(n.key())
	val = it.f.valCodec.Decode(n.value())
	it.cur, it.ok = it.f.successor(it.cur)
	return key, val, true
}

// KeyIterator walks tree t's keys in ascending order.
type KeyIterator[K any, V any] struct {
	inner *PairIterator[K, V]
}

// Keys returns an iterator over tree t's keys in ascending order.
func (f *Forest[K, V]) Keys(t int) (*KeyIterator[K, V], error) {
	inner, err := f.Pairs(t)
	if err != nil {
		return nil, err
	}
	return &KeyIterator[K, V]{inner: inner}, nil
}

// Next returns the next key, or ok=false once exhausted.
func (it *KeyIterator[K, V]) Next() (key K, ok bool) {
	key, _, ok = it.inner.Next()
	return key, ok
}

// ValueIterator walks tree t's values in ascending key order.
type ValueIterator[K any, V any] struct {
	inner *PairIterator[K, V]
}

// Values returns an iterator over tree t's values in ascending key
// order.
func (f *Forest[K, V]) Values(t int) (*ValueIterator[K, V], error) {
	inner, err := f.Pairs(t)
	if err != nil {
		return nil, err
	}
	return &ValueIterator[K, V]{inner: inner}, nil
}

// Next returns the next value, or ok=false once exhausted.
func (it *ValueIterator[K, V]) Next() (val V, ok bool) {
	_, val, ok = it.inner.Next()
	return val, ok
}
