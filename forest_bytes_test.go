package rbforest

import (
	"bytes"
	"testing"

	"github.com/TomTonic/rbforest/codec"
)

// TestByteExactReferenceForest is spec scenario 3: initialize a
// k=v=1, nodes=8, roots=3 forest and insert the same eight entries as
// the source test corpus's pinned FOREST_BYTES vector, listed by tree
// as t0:(4,3),(2,9),(5,1); t1:(5,7),(2,5),(1,2),(4,0); t2:(1,4). The
// plan below inserts t2's entry before t1's last one, which decides
// the node index each entry is allocated at.
//
// The header this module writes is 30 bytes (2 bytes of reserved
// padding past the original 28-byte header the source vector was
// captured from), so the resulting buffer is 162 bytes rather than
// the source's 160 and cannot be compared against FOREST_BYTES
// byte-for-byte; see headerSize in header.go. This test
// instead pins every byte this layout actually specifies: the full
// header, the full root table, and every node's key, value and flag
// byte, while reading absent left/right/parent links through their
// accessor rather than comparing the underlying index bytes — a
// cleared presence bit leaves those four bytes at whatever value they
// held before the bit was cleared (see node.go's setLeft/setRight/
// setParent), which is correct but unspecified by the format.
func TestByteExactReferenceForest(t *testing.T) {
	const kSize, vSize, maxNodes, maxRoots = 1, 1, 8, 3
	buf := make([]byte, headerSize+maxNodes*nodeStride(kSize, vSize)+maxRoots*4)
	f, err := Init[uint8, uint8](buf[:], codec.Uint8Codec{}, codec.Uint8Codec{}, maxRoots)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	type insertion struct {
		tree     int
		key, val uint8
	}
	plan := []insertion{
		{0, 4, 3},
		{0, 2, 9},
		{0, 5, 1},
		{1, 5, 7},
		{1, 2, 5},
		{1, 1, 2},
		{2, 1, 4},
		{1, 4, 0},
	}
	for _, ins := range plan {
		if err := f.Put(ins.tree, ins.key, ins.val); err != nil {
			t.Fatalf("Put(tree %d, key %d): %v", ins.tree, ins.key, err)
		}
	}

	wantSize := headerSize + maxNodes*nodeStride(kSize, vSize) + maxRoots*4
	if len(f.buf) != wantSize {
		t.Fatalf("buffer length = %d, want %d", len(f.buf), wantSize)
	}
	if wantSize != 162 {
		t.Fatalf("computed reference size = %d, want 162 (30-byte header + 8*15 node pool + 3*4 root table)", wantSize)
	}

	wantHeader := []byte{
		'S', 'l', 'i', 'c', 'e', '_', 'R', 'B', 'T', 'r', 'e', 'e',
		0, 1, // k_size
		0, 1, // v_size
		0, 0, 0, 8, // max_nodes
		0, 0, 0, 3, // max_roots
		255, 255, 255, 255, // head: every node allocated, free list empty
		0, 0, // reserved
	}
	if got := f.buf[:headerSize]; !bytes.Equal(got, wantHeader) {
		t.Fatalf("header bytes = % x, want % x", got, wantHeader)
	}

	wantRoots := []byte{
		0, 0, 0, 0, // tree 0 root = node 0
		0, 0, 0, 4, // tree 1 root = node 4
		0, 0, 0, 6, // tree 2 root = node 6
	}
	if got := f.roots; !bytes.Equal(got, wantRoots) {
		t.Fatalf("root table bytes = % x, want % x", got, wantRoots)
	}

	type wantNode struct {
		key, val    uint8
		red         bool
		left, right int // -1 means absent
		parent      int // -1 means absent
	}
	want := []wantNode{
		0: {key: 4, val: 3, red: false, left: 1, right: 2, parent: -1},
		1: {key: 2, val: 9, red: false, left: -1, right: -1, parent: 0},
		2: {key: 5, val: 1, red: false, left: -1, right: -1, parent: 0},
		3: {key: 5, val: 7, red: false, left: 7, right: -1, parent: 4},
		4: {key: 2, val: 5, red: false, left: 5, right: 3, parent: -1},
		5: {key: 1, val: 2, red: false, left: -1, right: -1, parent: 4},
		6: {key: 1, val: 4, red: false, left: -1, right: -1, parent: -1},
		7: {key: 4, val: 0, red: true, left: -1, right: -1, parent: 3},
	}
	for i, w := range want {
		n := f.nodeAt(uint32(i))
		if k := n.key()[0]; k != w.key {
			t.Fatalf("node %d key = %d, want %d", i, k, w.key)
		}
		if v := n.value()[0]; v != w.val {
			t.Fatalf("node %d value = %d, want %d", i, v, w.val)
		}
		if n.isRed() != w.red {
			t.Fatalf("node %d red = %v, want %v", i, n.isRed(), w.red)
		}
		if l, ok := n.left(); w.left < 0 {
			if ok {
				t.Fatalf("node %d left = %d, want absent", i, l)
			}
		} else if !ok || l != uint32(w.left) {
			t.Fatalf("node %d left = (%d, %v), want (%d, true)", i, l, ok, w.left)
		}
		if r, ok := n.right(); w.right < 0 {
			if ok {
				t.Fatalf("node %d right = %d, want absent", i, r)
			}
		} else if !ok || r != uint32(w.right) {
			t.Fatalf("node %d right = (%d, %v), want (%d, true)", i, r, ok, w.right)
		}
		if p, ok := n.parent(); w.parent < 0 {
			if ok {
				t.Fatalf("node %d parent = %d, want absent", i, p)
			}
		} else if !ok || p != uint32(w.parent) {
			t.Fatalf("node %d parent = (%d, %v), want (%d, true)", i, p, ok, w.parent)
		}
	}

	if err := f.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants: %v", err)
	}
}
