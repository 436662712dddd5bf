package rbforest

import "bytes"

// isRed reports the color of an optional child/parent reference. An
// absent reference (the implicit leaf) is always black.
func (f *Forest[K, V]) isRed(idx uint32, ok bool) bool {
	if !ok {
		return false
	}
	return f.nodeAt(idx).isRed()
}

// rotateLeft rotates the subtree rooted at h left, relinking parent
// pointers on both sides and, when h was the root of treeID, updating
// the root table. It returns the index of the node now rooting the
// subtree. Colors are left untouched; callers that need the LLRB
// insert convention (new subtree root inherits h's old color, h turns
// red) or a delete-fixup recoloring apply it themselves around the
// call, since the two algorithms want different color transfers.
func (f *Forest[K, V]) rotateLeft(treeID uint32, h uint32) uint32 {
	hn := f.nodeAt(h)
	x, _ := hn.right()
	xn := f.nodeAt(x)

	xLeft, xLeftOK := xn.left()
	hn.setRight(xLeft, xLeftOK)
	if xLeftOK {
		f.nodeAt(xLeft).setParent(h, true)
	}

	hParent, hParentOK := hn.parent()
	xn.setParent(hParent, hParentOK)
	if hParentOK {
		hp := f.nodeAt(hParent)
		if l, ok := hp.left(); ok && l == h {
			hp.setLeft(x, true)
		} else {
			hp.setRight(x, true)
		}
	} else {
		f.setRootAt(treeID, x, true)
	}

	xn.setLeft(h, true)
	hn.setParent(x, true)
	return x
}

// rotateRight is the mirror image of rotateLeft.
func (f *Forest[K, V]) rotateRight(treeID uint32, h uint32) uint32 {
	hn := f.nodeAt(h)
	x, _ := hn.left()
	xn := f.nodeAt(x)

	xRight, xRightOK := xn.right()
	hn.setLeft(xRight, xRightOK)
	if xRightOK {
		f.nodeAt(xRight).setParent(h, true)
	}

	hParent, hParentOK := hn.parent()
	xn.setParent(hParent, hParentOK)
	if hParentOK {
		hp := f.nodeAt(hParent)
		if r, ok := hp.right(); ok && r == h {
			hp.setRight(x, true)
		} else {
			hp.setLeft(x, true)
		}
	} else {
		f.setRootAt(treeID, x, true)
	}

	xn.setRight(h, true)
	hn.setParent(x, true)
	return x
}

// colorFlip toggles the color of h and both of its children. Callers
// only invoke this when both children are present and red, or are
// restoring that state on the way back up from recoloring.
func (f *Forest[K, V]) colorFlip(h uint32) {
	hn := f.nodeAt(h)
	hn.setRed(!hn.isRed())
	if l, ok := hn.left(); ok {
		ln := f.nodeAt(l)
		ln.setRed(!ln.isRed())
	}
	if r, ok := hn.right(); ok {
		rn := f.nodeAt(r)
		rn.setRed(!rn.isRed())
	}
}

// fixUp applies the three Left-Leaning Red-Black repair rules, in
// order, on the way back up from a recursive insert: lean a red right
// link left, push a red-red left chain into a single rotation, then
// split a 4-node by flipping colors. Deletion can leave a red right
// child in place; if that child has a red left child of its own, it is
// rotated right first so the left rotation does not hand the red
// grandchild to a now-red h.
func (f *Forest[K, V]) fixUp(treeID uint32, h uint32) uint32 {
	n := f.nodeAt(h)

	if r, rOK := n.right(); f.isRed(r, rOK) {
		if l, lOK := n.left(); !f.isRed(l, lOK) {
			if rl, rlOK := f.nodeAt(r).left(); f.isRed(rl, rlOK) {
				// Both r and rl are red, so no recoloring is needed.
				f.rotateRight(treeID, r)
			}
			wasRed := n.isRed()
			h = f.rotateLeft(treeID, h)
			n = f.nodeAt(h)
			n.setRed(wasRed)
			if l2, ok := n.left(); ok {
				f.nodeAt(l2).setRed(true)
			}
		}
	}
	if l, lOK := n.left(); f.isRed(l, lOK) {
		if ll, llOK := f.nodeAt(l).left(); f.isRed(ll, llOK) {
			wasRed := n.isRed()
			h = f.rotateRight(treeID, h)
			n = f.nodeAt(h)
			n.setRed(wasRed)
			if r2, ok := n.right(); ok {
				f.nodeAt(r2).setRed(true)
			}
		}
	}
	if l, lOK := n.left(); f.isRed(l, lOK) {
		if r, rOK := n.right(); f.isRed(r, rOK) {
			f.colorFlip(h)
		}
	}
	return h
}

// put recursively descends to the insertion point for keyBytes,
// allocating a new leaf or replacing the value of an existing equal
// key, then applies fixUp on the way back up. It reports the (possibly
// new) subtree root.
func (f *Forest[K, V]) put(treeID uint32, h uint32, hOK bool, parent uint32, parentOK bool, keyBytes []byte, val V) (uint32, bool, error) {
	if !hOK {
		idx, ok := f.allocate()
		if !ok {
			return 0, false, ErrNoNodesLeft
		}
		if err := f.valCodec.Encode(f.valScratch, val); err != nil {
			f.deallocate(idx)
			return 0, false, ErrValueSerialization
		}
		n := f.nodeAt(idx)
		n.initNode(parent, parentOK)
		copy(n.value(), f.valScratch)
		copy(n.key(), keyBytes)
		return idx, true, nil
	}

	n := f.nodeAt(h)
	switch bytes.Compare(keyBytes, n.key()) {
	case 0:
		if err := f.valCodec.Encode(f.valScratch, val); err != nil {
			return 0, false, ErrValueSerialization
		}
		copy(n.value(), f.valScratch)
		return h, true, nil
	case -1:
		left, leftOK := n.left()
		newLeft, newLeftOK, err := f.put(treeID, left, leftOK, h, true, keyBytes, val)
		if err != nil {
			return 0, false, err
		}
		n.setLeft(newLeft, newLeftOK)
	default:
		right, rightOK := n.right()
		newRight, newRightOK, err := f.put(treeID, right, rightOK, h, true, keyBytes, val)
		if err != nil {
			return 0, false, err
		}
		n.setRight(newRight, newRightOK)
	}
	h = f.fixUp(treeID, h)
	return h, true, nil
}

// getKeyIndex performs an iterative BST search for keyBytes starting
// at root, returning the index of the matching node if any.
func (f *Forest[K, V]) getKeyIndex(root uint32, rootOK bool, keyBytes []byte) (uint32, bool) {
	idx, ok := root, rootOK
	for ok {
		n := f.nodeAt(idx)
		switch bytes.Compare(keyBytes, n.key()) {
		case 0:
			return idx, true
		case -1:
			idx, ok = n.left()
		default:
			idx, ok = n.right()
		}
	}
	return 0, false
}

// min descends left from idx as far as possible.
func (f *Forest[K, V]) min(idx uint32) uint32 {
	for {
		n := f.nodeAt(idx)
		l, ok := n.left()
		if !ok {
			return idx
		}
		idx = l
	}
}

// max descends right from idx as far as possible.
func (f *Forest[K, V]) max(idx uint32) uint32 {
	for {
		n := f.nodeAt(idx)
		r, ok := n.right()
		if !ok {
			return idx
		}
		idx = r
	}
}

// swapNodes exchanges only the key and value bytes of a and b, leaving
// every index, parent and color field untouched. Deletion uses this to
// relocate a payload without invalidating any index a caller may be
// holding.
func (f *Forest[K, V]) swapNodes(a, b uint32) {
	an, bn := f.nodeAt(a), f.nodeAt(b)
	ak, bk := an.key(), bn.key()
	for i := range ak {
		ak[i], bk[i] = bk[i], ak[i]
	}
	av, bv := an.value(), bn.value()
	for i := range av {
		av[i], bv[i] = bv[i], av[i]
	}
}

// swapMaxLeft finds the maximum node in id's left subtree, swaps its
// payload into id, and returns the (now-redundant) index holding id's
// former payload, ready for physical removal.
func (f *Forest[K, V]) swapMaxLeft(id uint32) uint32 {
	left, _ := f.nodeAt(id).left()
	maxID := f.max(left)
	f.swapNodes(id, maxID)
	return maxID
}

// detachFromParent clears the link that points at id: either the
// appropriate child pointer on id's parent, or the root table slot for
// treeID if id has no parent.
func (f *Forest[K, V]) detachFromParent(treeID uint32, id uint32) {
	n := f.nodeAt(id)
	parent, parentOK := n.parent()
	if !parentOK {
		f.setRootAt(treeID, 0, false)
		return
	}
	p := f.nodeAt(parent)
	if l, ok := p.left(); ok && l == id {
		p.setLeft(0, false)
	} else {
		p.setRight(0, false)
	}
}

// deleteNode physically removes the node at id from treeID, reducing
// a two-child node to a one-or-zero-child node via swapMaxLeft first,
// then dispatching on the remaining shape: a lone red child is
// absorbed in place, a red leaf is detached outright, and a black leaf
// is detached and then triggers a rebalance walk on its parent.
func (f *Forest[K, V]) deleteNode(treeID uint32, id uint32) {
	n := f.nodeAt(id)
	left, leftOK := n.left()
	right, rightOK := n.right()

	if leftOK && rightOK {
		id = f.swapMaxLeft(id)
		n = f.nodeAt(id)
		left, leftOK = n.left()
		right, rightOK = n.right()
		debugAssert(!rightOK, "deleteNode: node after swapMaxLeft must have no right child")
	}

	switch {
	case leftOK != rightOK:
		var child uint32
		if leftOK {
			child = left
		} else {
			child = right
		}
		cn := f.nodeAt(child)
		debugAssert(!n.isRed() && cn.isRed(), "deleteNode: single child must be red under a black node")
		copy(n.key(), cn.key())
		copy(n.value(), cn.value())
		n.setLeft(0, false)
		n.setRight(0, false)
		f.deallocate(child)

	case n.isRed():
		f.detachFromParent(treeID, id)
		f.deallocate(id)

	default:
		parent, parentOK := n.parent()
		f.detachFromParent(treeID, id)
		if parentOK {
			f.balanceSubtree(treeID, parent)
		}
		f.deallocate(id)
	}
}

// blackDepth counts black nodes from idx down to a leaf, always
// descending left. It is only meaningful when the subtree rooted at
// idx is internally balanced, which holds for both children of a node
// passed to balanceSubtree.
func (f *Forest[K, V]) blackDepth(idx uint32, ok bool) int {
	d := 0
	for ok {
		n := f.nodeAt(idx)
		if !n.isRed() {
			d++
		}
		idx, ok = n.left()
	}
	return d
}

// balanceSubtree restores the Red-Black invariants at id after one of
// its two subtrees lost a black node. It identifies the deficient side
// by comparing black depths, then applies the classical sibling-based
// delete fixup: a red sibling is rotated down to expose a black one; a
// black sibling with both nephews black recolors and, if id itself was
// already black, pushes the deficiency one level up; a black sibling
// with a red nephew rotates once or twice to absorb it and terminates
// the walk.
func (f *Forest[K, V]) balanceSubtree(treeID uint32, id uint32) {
	n := f.nodeAt(id)
	left, leftOK := n.left()
	right, rightOK := n.right()
	leftDepth := f.blackDepth(left, leftOK)
	rightDepth := f.blackDepth(right, rightOK)

	if leftDepth < rightDepth {
		f.balanceShortLeft(treeID, id)
		return
	}
	if rightDepth < leftDepth {
		f.balanceShortRight(treeID, id)
		return
	}
	// Equal depths: nothing to do. Reached only when balanceSubtree is
	// invoked defensively; the delete paths that call it always create
	// an actual one-sided deficiency first.
}

// balanceShortLeft handles the case where id's left subtree is one
// black node shorter than its right subtree.
func (f *Forest[K, V]) balanceShortLeft(treeID uint32, id uint32) {
	n := f.nodeAt(id)
	w, _ := n.right()
	wn := f.nodeAt(w)

	if wn.isRed() {
		wn.setRed(false)
		n.setRed(true)
		f.rotateLeft(treeID, id)
		n = f.nodeAt(id)
		w, _ = n.right()
		wn = f.nodeAt(w)
	}

	wl, wlOK := wn.left()
	wr, wrOK := wn.right()
	if !f.isRed(wl, wlOK) && !f.isRed(wr, wrOK) {
		wn.setRed(true)
		if n.isRed() {
			n.setRed(false)
			return
		}
		if parent, parentOK := n.parent(); parentOK {
			f.balanceSubtree(treeID, parent)
		}
		return
	}

	if !f.isRed(wr, wrOK) {
		// Near nephew (wl) is red, far nephew is black: rotate right
		// on w to bring a red far nephew into place.
		f.nodeAt(wl).setRed(false)
		wn.setRed(true)
		f.rotateRight(treeID, w)
		n = f.nodeAt(id)
		w, _ = n.right()
		wn = f.nodeAt(w)
		wr, wrOK = wn.right()
	}

	wn.setRed(n.isRed())
	n.setRed(false)
	f.nodeAt(wr).setRed(false)
	f.rotateLeft(treeID, id)
}

// balanceShortRight is the mirror image of balanceShortLeft.
func (f *Forest[K, V]) balanceShortRight(treeID uint32, id uint32) {
	n := f.nodeAt(id)
	w, _ := n.left()
	wn := f.nodeAt(w)

	if wn.isRed() {
		wn.setRed(false)
		n.setRed(true)
		f.rotateRight(treeID, id)
		n = f.nodeAt(id)
		w, _ = n.left()
		wn = f.nodeAt(w)
	}

	wl, wlOK := wn.left()
	wr, wrOK := wn.right()
	if !f.isRed(wl, wlOK) && !f.isRed(wr, wrOK) {
		wn.setRed(true)
		if n.isRed() {
			n.setRed(false)
			return
		}
		if parent, parentOK := n.parent(); parentOK {
			f.balanceSubtree(treeID, parent)
		}
		return
	}

	if !f.isRed(wl, wlOK) {
		f.nodeAt(wr).setRed(false)
		wn.setRed(true)
		f.rotateLeft(treeID, w)
		n = f.nodeAt(id)
		w, _ = n.left()
		wn = f.nodeAt(w)
		wl, wlOK = wn.left()
	}

	wn.setRed(n.isRed())
	n.setRed(false)
	f.nodeAt(wl).setRed(false)
	f.rotateRight(treeID, id)
}
