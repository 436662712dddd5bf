package rbforest

import (
	"encoding/binary"

	"github.com/TomTonic/rbforest/codec"
)

// Forest is an in-place, slice-backed ordered map implemented as a
// forest of Red-Black trees. All nodes live in one caller-supplied
// buffer: one header, a flat node pool threaded by an intrusive
// free-list, and a root table holding one root index per tree. A
// Forest never allocates from the Go heap after construction except
// for the small fixed-size Forest struct itself and its iterators.
type Forest[K any, V any] struct {
	buf      []byte
	header   headerView
	nodes    []byte
	roots    []byte
	maxNodes uint32
	maxRoots uint32
	kSize    int
	vSize    int
	stride   int
	keyCodec codec.Codec[K]
	valCodec codec.Codec[V]

	// valScratch is a reusable vSize-byte window used to validate that
	// a value encodes successfully before it is written into a node
	// (a fresh leaf or an existing node's stored value), so a failed Put
	// leaves the buffer untouched.
	valScratch []byte

	// keyScratch is a reusable kSize-byte window used to encode a
	// lookup/insert key before any tree walk begins, so Put/Get/Delete
	// and friends never allocate a fresh key buffer per call.
	keyScratch []byte
}

// RequiredSize returns the number of bytes a buffer must have to hold a
// forest with the given key/value widths and capacity. It returns
// ErrTooBig if the geometry cannot be addressed by the fixed-width
// index fields used on disk.
func RequiredSize(kSize, vSize int, maxNodes, maxRoots uint32) (int, error) {
	if kSize < 0 || vSize < 0 {
		return 0, ErrTooBig
	}
	if maxNodes >= noIndex || maxRoots >= noIndex {
		return 0, ErrTooBig
	}
	stride := nodeStride(kSize, vSize)
	total := headerSize + int(maxNodes)*stride + int(maxRoots)*4
	if total < 0 {
		return 0, ErrTooBig
	}
	return total, nil
}

// Init lays out a fresh forest inside buf: writes the header, threads
// every node slot onto the free list, and clears the root table to
// "no tree" for every tree id. The node pool capacity is derived from
// buf's length — as many nodes as fit after the header and the
// maxRoots-sized root table. The node region (buf's length minus the
// header and the root table) must divide evenly into node slots; Init
// returns ErrWrongSliceSize rather than silently dropping a short
// remainder, matching the check Open performs against a previously
// initialized buffer.
func Init[K any, V any](buf []byte, keyCodec codec.Codec[K], valCodec codec.Codec[V], maxRoots uint32) (*Forest[K, V], error) {
	if maxRoots >= noIndex {
		return nil, ErrTooBig
	}
	kSize, vSize := keyCodec.Size(), valCodec.Size()
	stride := nodeStride(kSize, vSize)
	rootsBytes := int(maxRoots) * 4
	avail := len(buf) - headerSize - rootsBytes
	if avail < 0 {
		return nil, ErrTooSmall
	}
	if avail%stride != 0 {
		return nil, ErrWrongSliceSize
	}
	maxNodes := uint32(avail / stride)

	need, err := RequiredSize(kSize, vSize, maxNodes, maxRoots)
	if err != nil {
		return nil, err
	}
	buf = buf[:need]

	f := &Forest[K, V]{
		buf:        buf,
		header:     headerView{buf: buf[:headerSize]},
		maxNodes:   maxNodes,
		maxRoots:   maxRoots,
		kSize:      kSize,
		vSize:      vSize,
		stride:     nodeStride(kSize, vSize),
		keyCodec:   keyCodec,
		valCodec:   valCodec,
		valScratch: make([]byte, vSize),
		keyScratch: make([]byte, kSize),
	}
	nodesEnd := headerSize + int(maxNodes)*f.stride
	f.nodes = buf[headerSize:nodesEnd]
	f.roots = buf[nodesEnd:need]

	head, headOK := uint32(0), maxNodes > 0
	f.header.fill(uint16(kSize), uint16(vSize), maxNodes, maxRoots, head, headOK)

	// Thread every node slot onto the free list: node i's parent/free
	// link points at node i+1, the last node's link is "none".
	for i := uint32(0); i < maxNodes; i++ {
		n := f.nodeAt(i)
		n.buf[n.flagsOff()] = 0
		if i+1 < maxNodes {
			n.setFreeLink(i+1, true)
		} else {
			n.setFreeLink(0, false)
		}
	}

	for t := uint32(0); t < maxRoots; t++ {
		f.setRootAt(t, 0, false)
	}

	return f, nil
}

// Open reconstructs a Forest from a previously initialized buffer,
// validating the header magic, geometry and slice length before
// trusting any of it. It returns the same error values Init's sibling
// in the distilled spec names for each specific mismatch.
func Open[K any, V any](buf []byte, keyCodec codec.Codec[K], valCodec codec.Codec[V]) (*Forest[K, V], error) {
	if len(buf) < headerSize {
		return nil, ErrTooSmall
	}
	h := headerView{buf: buf[:headerSize]}
	if !h.checkMagic() {
		return nil, ErrWrongMagic
	}
	kSize, vSize := keyCodec.Size(), valCodec.Size()
	if int(h.kSize()) != kSize {
		return nil, ErrWrongKeySize
	}
	if int(h.vSize()) != vSize {
		return nil, ErrWrongValueSize
	}
	maxNodes, maxRoots := h.maxNodes(), h.maxRoots()
	rootsBytes := int64(maxRoots) * 4
	if int64(len(buf))-int64(headerSize)-rootsBytes < 0 {
		return nil, ErrWrongSliceSize
	}
	nodePoolBytes := int64(len(buf)) - int64(headerSize) - rootsBytes
	stride := nodeStride(kSize, vSize)
	if stride <= 0 || nodePoolBytes%int64(stride) != 0 {
		return nil, ErrWrongNodePoolSize
	}
	if nodePoolBytes/int64(stride) != int64(maxNodes) {
		return nil, ErrWrongSliceSize
	}
	need, err := RequiredSize(kSize, vSize, maxNodes, maxRoots)
	if err != nil {
		return nil, err
	}
	if len(buf) != need {
		return nil, ErrWrongSliceSize
	}
	nodesEnd := headerSize + int(maxNodes)*stride

	f := &Forest[K, V]{
		buf:        buf,
		header:     h,
		nodes:      buf[headerSize:nodesEnd],
		roots:      buf[nodesEnd:need],
		maxNodes:   maxNodes,
		maxRoots:   maxRoots,
		kSize:      kSize,
		vSize:      vSize,
		stride:     stride,
		keyCodec:   keyCodec,
		valCodec:   valCodec,
		valScratch: make([]byte, vSize),
		keyScratch: make([]byte, kSize),
	}
	return f, nil
}

// MaxNodes returns the node pool capacity.
func (f *Forest[K, V]) MaxNodes() uint32 { return f.maxNodes }

// MaxRoots returns the number of independent trees this forest can
// hold.
func (f *Forest[K, V]) MaxRoots() uint32 { return f.maxRoots }

func (f *Forest[K, V]) nodeAt(i uint32) nodeView {
	return nodeView{buf: f.nodes, off: int(i) * f.stride, kSize: f.kSize, vSize: f.vSize}
}

func (f *Forest[K, V]) rootAt(t uint32) (uint32, bool) {
	off := int(t) * 4
	v := binary.BigEndian.Uint32(f.roots[off : off+4])
	return v, v != noIndex
}

func (f *Forest[K, V]) setRootAt(t uint32, idx uint32, ok bool) {
	if !ok {
		idx = noIndex
	}
	off := int(t) * 4
	binary.BigEndian.PutUint32(f.roots[off:off+4], idx)
}

func (f *Forest[K, V]) checkTreeID(t int) error {
	if t < 0 || uint32(t) >= f.maxRoots {
		return ErrTooBigTreeID
	}
	return nil
}
