package rbforest

import (
	"testing"

	"github.com/TomTonic/rbforest/codec"
)

func TestAllocateDeallocateRoundTrip(t *testing.T) {
	buf := make([]byte, headerSize+47*nodeStride(4, 4)+4)
	f, err := Init[uint32, uint32](buf, codec.Uint32Codec{}, codec.Uint32Codec{}, 1)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	full := f.FreeNodesLeft()
	if full != f.MaxNodes() {
		t.Fatalf("FreeNodesLeft() = %d, want %d", full, f.MaxNodes())
	}

	idx, ok := f.allocate()
	if !ok {
		t.Fatalf("allocate() returned ok=false on a fresh forest")
	}
	if f.FreeNodesLeft() != full-1 {
		t.Fatalf("FreeNodesLeft() after allocate = %d, want %d", f.FreeNodesLeft(), full-1)
	}

	f.deallocate(idx)
	if f.FreeNodesLeft() != full {
		t.Fatalf("FreeNodesLeft() after deallocate = %d, want %d", f.FreeNodesLeft(), full)
	}
}

func TestNoNodesLeft(t *testing.T) {
	buf := make([]byte, headerSize+2*nodeStride(4, 4)+4)
	f, err := Init[uint32, uint32](buf, codec.Uint32Codec{}, codec.Uint32Codec{}, 1)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if f.MaxNodes() != 2 {
		t.Fatalf("MaxNodes() = %d, want 2", f.MaxNodes())
	}
	if err := f.Put(0, uint32(1), uint32(1)); err != nil {
		t.Fatalf("Put 1: %v", err)
	}
	if err := f.Put(0, uint32(2), uint32(2)); err != nil {
		t.Fatalf("Put 2: %v", err)
	}
	before := make([]byte, len(buf))
	copy(before, buf)

	if err := f.Put(0, uint32(3), uint32(3)); err != ErrNoNodesLeft {
		t.Fatalf("Put 3 (capacity exhausted) = %v, want ErrNoNodesLeft", err)
	}
	for i := range buf {
		if buf[i] != before[i] {
			t.Fatalf("buffer mutated at byte %d after a failed Put", i)
		}
	}
}
