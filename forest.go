package rbforest

// Put inserts key/val into tree t, or replaces the value already
// stored for an equal key. On any error the buffer is left exactly as
// it was before the call.
func (f *Forest[K, V]) Put(t int, key K, val V) error {
	if err := f.checkTreeID(t); err != nil {
		return err
	}
	keyBuf := f.keyScratch
	if err := f.keyCodec.Encode(keyBuf, key); err != nil {
		return ErrKeySerialization
	}
	tid := uint32(t)
	root, rootOK := f.rootAt(tid)
	newRoot, newRootOK, err := f.put(tid, root, rootOK, 0, false, keyBuf, val)
	if err != nil {
		return err
	}
	f.nodeAt(newRoot).setRed(false)
	f.setRootAt(tid, newRoot, newRootOK)
	return nil
}

// encodeLookupKey encodes key into f's reusable key scratch buffer.
// The returned slice is only valid until the next call that encodes a
// key on f; callers never retain it past their own tree walk.
func (f *Forest[K, V]) encodeLookupKey(key K) ([]byte, error) {
	keyBuf := f.keyScratch
	if err := f.keyCodec.Encode(keyBuf, key); err != nil {
		return nil, ErrKeySerialization
	}
	return keyBuf, nil
}

// Contains reports whether t holds an entry for key.
func (f *Forest[K, V]) Contains(t int, key K) (bool, error) {
	if err := f.checkTreeID(t); err != nil {
		return false, err
	}
	keyBuf, err := f.encodeLookupKey(key)
	if err != nil {
		return false, err
	}
	root, rootOK := f.rootAt(uint32(t))
	_, found := f.getKeyIndex(root, rootOK, keyBuf)
	return found, nil
}

// Get returns the value stored for key in tree t, if any.
func (f *Forest[K, V]) Get(t int, key K) (V, bool, error) {
	var zero V
	if err := f.checkTreeID(t); err != nil {
		return zero, false, err
	}
	keyBuf, err := f.encodeLookupKey(key)
	if err != nil {
		return zero, false, err
	}
	root, rootOK := f.rootAt(uint32(t))
	idx, found := f.getKeyIndex(root, rootOK, keyBuf)
	if !found {
		return zero, false, nil
	}
	return f.valCodec.Decode(f.nodeAt(idx).value()), true, nil
}

// GetEntry returns the decoded key and value stored for key in tree t,
// if any. Since lookup is by key, the returned key is always equal to
// the one passed in; this mirrors the entry-returning accessors of the
// underlying tree operations rather than adding new information.
func (f *Forest[K, V]) GetEntry(t int, key K) (K, V, bool, error) {
	var zeroK K
	var zeroV V
	if err := f.checkTreeID(t); err != nil {
		return zeroK, zeroV, false, err
	}
	keyBuf, err := f.encodeLookupKey(key)
	if err != nil {
		return zeroK, zeroV, false, err
	}
	root, rootOK := f.rootAt(uint32(t))
	idx, found := f.getKeyIndex(root, rootOK, keyBuf)
	if !found {
		return zeroK, zeroV, false, nil
	}
	n := f.nodeAt(idx)
	return f.keyCodec.Decode(n.key()), f.valCodec.Decode(n.value()), true, nil
}

// FirstEntry returns the smallest key and its value in tree t.
func (f *Forest[K, V]) FirstEntry(t int) (K, V, bool, error) {
	var zeroK K
	var zeroV V
	if err := f.checkTreeID(t); err != nil {
		return zeroK, zeroV, false, err
	}
	root, rootOK := f.rootAt(uint32(t))
	if !rootOK {
		return zeroK, zeroV, false, nil
	}
	n := f.nodeAt(f.min(root))
	return f.keyCodec.Decode(n.key()), f.valCodec.Decode(n.value()), true, nil
}

// LastEntry returns the largest key and its value in tree t.
func (f *Forest[K, V]) LastEntry(t int) (K, V, bool, error) {
	var zeroK K
	var zeroV V
	if err := f.checkTreeID(t); err != nil {
		return zeroK, zeroV, false, err
	}
	root, rootOK := f.rootAt(uint32(t))
	if !rootOK {
		return zeroK, zeroV, false, nil
	}
	n := f.nodeAt(f.max(root))
	return f.keyCodec.Decode(n.key()), f.valCodec.Decode(n.value()), true, nil
}

// Delete removes key from tree t and reports whether it was present.
func (f *Forest[K, V]) Delete(t int, key K) (bool, error) {
	if err := f.checkTreeID(t); err != nil {
		return false, err
	}
	keyBuf, err := f.encodeLookupKey(key)
	if err != nil {
		return false, err
	}
	tid := uint32(t)
	root, rootOK := f.rootAt(tid)
	idx, found := f.getKeyIndex(root, rootOK, keyBuf)
	if !found {
		return false, nil
	}
	f.deleteNode(tid, idx)
	if r, ok := f.rootAt(tid); ok {
		f.nodeAt(r).setRed(false)
	}
	return true, nil
}

// Remove removes key from tree t and returns the value it held.
//
// The value is captured before the physical removal proceeds: deletion
// may swap a node's payload with its in-order predecessor on the way
// to removing a node with at most one child, so reading the value
// after the fact could return the wrong entry's data.
func (f *Forest[K, V]) Remove(t int, key K) (V, bool, error) {
	var zero V
	if err := f.checkTreeID(t); err != nil {
		return zero, false, err
	}
	keyBuf, err := f.encodeLookupKey(key)
	if err != nil {
		return zero, false, err
	}
	tid := uint32(t)
	root, rootOK := f.rootAt(tid)
	idx, found := f.getKeyIndex(root, rootOK, keyBuf)
	if !found {
		return zero, false, nil
	}
	val := f.valCodec.Decode(f.nodeAt(idx).value())
	f.deleteNode(tid, idx)
	if r, ok := f.rootAt(tid); ok {
		f.nodeAt(r).setRed(false)
	}
	return val, true, nil
}

// RemoveEntry removes key from tree t and returns the key and value it
// held.
func (f *Forest[K, V]) RemoveEntry(t int, key K) (K, V, bool, error) {
	var zeroK K
	var zeroV V
	if err := f.checkTreeID(t); err != nil {
		return zeroK, zeroV, false, err
	}
	keyBuf, err := f.encodeLookupKey(key)
	if err != nil {
		return zeroK, zeroV, false, err
	}
	tid := uint32(t)
	root, rootOK := f.rootAt(tid)
	idx, found := f.getKeyIndex(root, rootOK, keyBuf)
	if !found {
		return zeroK, zeroV, false, nil
	}
	n := f.nodeAt(idx)
	k := f.keyCodec.Decode(n.key())
	v := f.valCodec.Decode(n.value())
	f.deleteNode(tid, idx)
	if r, ok := f.rootAt(tid); ok {
		f.nodeAt(r).setRed(false)
	}
	return k, v, true, nil
}

// IsEmpty reports whether tree t holds no entries.
func (f *Forest[K, V]) IsEmpty(t int) (bool, error) {
	if err := f.checkTreeID(t); err != nil {
		return false, err
	}
	_, ok := f.rootAt(uint32(t))
	return !ok, nil
}

// Len returns the number of entries in tree t, computed by walking the
// tree; it is not cached.
func (f *Forest[K, V]) Len(t int) (int, error) {
	if err := f.checkTreeID(t); err != nil {
		return 0, err
	}
	root, rootOK := f.rootAt(uint32(t))
	if !rootOK {
		return 0, nil
	}
	return int(f.countSubtree(root)), nil
}

func (f *Forest[K, V]) countSubtree(idx uint32) uint32 {
	n := f.nodeAt(idx)
	count := uint32(1)
	if l, ok := n.left(); ok {
		count += f.countSubtree(l)
	}
	if r, ok := n.right(); ok {
		count += f.countSubtree(r)
	}
	return count
}

// ClearTree removes every entry from tree t, returning all of its
// nodes to the free list, without disturbing any other tree in the
// forest.
func (f *Forest[K, V]) ClearTree(t int) error {
	if err := f.checkTreeID(t); err != nil {
		return err
	}
	tid := uint32(t)
	root, rootOK := f.rootAt(tid)
	if rootOK {
		f.deallocateSubtree(root)
	}
	f.setRootAt(tid, 0, false)
	return nil
}

func (f *Forest[K, V]) deallocateSubtree(idx uint32) {
	n := f.nodeAt(idx)
	if l, ok := n.left(); ok {
		f.deallocateSubtree(l)
	}
	if r, ok := n.right(); ok {
		f.deallocateSubtree(r)
	}
	f.deallocate(idx)
}

// Clear resets every tree in the forest and rethreads the entire node
// pool back onto the free list in index order. This is an O(maxNodes)
// operation; the forest does not keep a cache that would make clearing
// cheaper.
func (f *Forest[K, V]) Clear() {
	for i := uint32(0); i < f.maxNodes; i++ {
		n := f.nodeAt(i)
		n.buf[n.flagsOff()] = 0
		if i+1 < f.maxNodes {
			n.setFreeLink(i+1, true)
		} else {
			n.setFreeLink(0, false)
		}
	}
	f.header.setHead(0, f.maxNodes > 0)
	for t := uint32(0); t < f.maxRoots; t++ {
		f.setRootAt(t, 0, false)
	}
}
