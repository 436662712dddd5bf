package rbforest

// allocate pops the head of the free list and returns its index. The
// returned node is not reset: it still holds its free-list link and old
// payload, so callers must reset it with initNode before linking it
// into a tree.
func (f *Forest[K, V]) allocate() (uint32, bool) {
	head, ok := f.header.head()
	if !ok {
		return 0, false
	}
	n := f.nodeAt(head)
	next, nextOK := n.freeLink()
	f.header.setHead(next, nextOK)
	return head, true
}

// deallocate pushes idx back onto the head of the free list.
func (f *Forest[K, V]) deallocate(idx uint32) {
	head, headOK := f.header.head()
	n := f.nodeAt(idx)
	n.setFreeLink(head, headOK)
	f.header.setHead(idx, true)
}

// FreeNodesLeft walks the free list and returns its length. This is an
// O(n) operation; the forest keeps no cached count, consistent with
// len/size also being computed on demand.
func (f *Forest[K, V]) FreeNodesLeft() uint32 {
	var count uint32
	idx, ok := f.header.head()
	for ok {
		count++
		n := f.nodeAt(idx)
		idx, ok = n.freeLink()
	}
	return count
}
