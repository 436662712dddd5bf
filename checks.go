package rbforest

import (
	"bytes"
	"fmt"
)

// debugAssert panics when cond is false. It marks a point where the
// buffer has violated an invariant this package relies on to decode
// safely — corruption, not a user error, per the fatal band of the
// error handling design.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic("rbforest: invariant violated: " + msg)
	}
}

// CheckInvariants walks every tree in the forest and verifies P1–P5:
// black-height balance, no red node with a red child, parent/child
// link consistency, allocated-plus-free equals the node pool capacity,
// and strictly increasing in-order key order. It returns the first
// violation found, or nil if the forest is internally consistent.
//
// This is an O(n) diagnostic, intended for tests and for callers that
// want to audit a buffer they did not produce themselves; it is never
// called from the hot path.
func (f *Forest[K, V]) CheckInvariants() error {
	allocated := uint32(0)
	for t := uint32(0); t < f.maxRoots; t++ {
		root, rootOK := f.rootAt(t)
		if !rootOK {
			continue
		}
		_, n, err := f.checkNode(root, false, nil, nil)
		if err != nil {
			return fmt.Errorf("tree %d: %w", t, err)
		}
		allocated += n
	}
	free := f.FreeNodesLeft()
	if allocated+free != f.maxNodes {
		return fmt.Errorf("P4 violated: allocated(%d) + free(%d) != maxNodes(%d)", allocated, free, f.maxNodes)
	}
	return nil
}

// checkNode returns (blackHeight, nodeCount, error) for the subtree
// rooted at idx. parentRed reports whether idx's parent is red, for
// the no-red-red check; lowerBound, if non-nil, must be strictly less
// than every key in this subtree, and upperBound, if non-nil, strictly
// greater.
func (f *Forest[K, V]) checkNode(idx uint32, parentRed bool, lowerBound, upperBound []byte) (int, uint32, error) {
	n := f.nodeAt(idx)
	if n.isRed() && parentRed {
		return 0, 0, fmt.Errorf("P2 violated: red node %d has a red parent", idx)
	}

	left, leftOK := n.left()
	right, rightOK := n.right()

	if leftOK {
		if lp, ok := f.nodeAt(left).parent(); !ok || lp != idx {
			return 0, 0, fmt.Errorf("P3 violated: left child %d of %d has inconsistent parent", left, idx)
		}
	}
	if rightOK {
		if rp, ok := f.nodeAt(right).parent(); !ok || rp != idx {
			return 0, 0, fmt.Errorf("P3 violated: right child %d of %d has inconsistent parent", right, idx)
		}
	}

	leftHeight, leftCount, err := 0, uint32(0), error(nil)
	if leftOK {
		leftHeight, leftCount, err = f.checkNode(left, n.isRed(), lowerBound, n.key())
		if err != nil {
			return 0, 0, err
		}
	}
	if (lowerBound != nil && bytes.Compare(n.key(), lowerBound) <= 0) ||
		(upperBound != nil && bytes.Compare(n.key(), upperBound) >= 0) {
		return 0, 0, fmt.Errorf("P5 violated: key at node %d is not strictly increasing in-order", idx)
	}
	rightHeight, rightCount, err := 0, uint32(0), error(nil)
	if rightOK {
		rightHeight, rightCount, err = f.checkNode(right, n.isRed(), n.key(), upperBound)
		if err != nil {
			return 0, 0, err
		}
	}

	if leftHeight != rightHeight {
		return 0, 0, fmt.Errorf("P1 violated: black height mismatch at node %d (%d vs %d)", idx, leftHeight, rightHeight)
	}

	height := leftHeight
	if !n.isRed() {
		height++
	}
	return height, leftCount + rightCount + 1, nil
}
