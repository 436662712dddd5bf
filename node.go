package rbforest

import "encoding/binary"

// Node flag bits. Presence of an index field is tracked by a flag bit
// rather than reserving a sentinel value for "absent" in the index
// itself, mirroring the on-disk layout used throughout the node pool.
const (
	flagLeftPresent   byte = 1 << 0
	flagRightPresent  byte = 1 << 1
	flagParentPresent byte = 1 << 2
	flagRed           byte = 1 << 3
)

// nodeStride returns the on-disk size of one node record for the given
// key and value widths: key, value, left, right, parent, flags.
func nodeStride(kSize, vSize int) int {
	return kSize + vSize + 4 + 4 + 4 + 1
}

// nodeView is a zero-allocation view over one node slot within a
// forest's buffer.
type nodeView struct {
	buf           []byte
	off           int
	kSize, vSize  int
}

func (n nodeView) keyOff() int    { return n.off }
func (n nodeView) valueOff() int  { return n.off + n.kSize }
func (n nodeView) leftOff() int   { return n.off + n.kSize + n.vSize }
func (n nodeView) rightOff() int  { return n.leftOff() + 4 }
func (n nodeView) parentOff() int { return n.rightOff() + 4 }
func (n nodeView) flagsOff() int  { return n.parentOff() + 4 }

func (n nodeView) key() []byte   { return n.buf[n.keyOff() : n.keyOff()+n.kSize] }
func (n nodeView) value() []byte { return n.buf[n.valueOff() : n.valueOff()+n.vSize] }

func (n nodeView) flags() byte { return n.buf[n.flagsOff()] }

func (n nodeView) setFlagBit(bit byte, on bool) {
	if on {
		n.buf[n.flagsOff()] |= bit
	} else {
		n.buf[n.flagsOff()] &^= bit
	}
}

func (n nodeView) left() (uint32, bool) {
	if n.flags()&flagLeftPresent == 0 {
		return 0, false
	}
	return binary.BigEndian.Uint32(n.buf[n.leftOff() : n.leftOff()+4]), true
}

func (n nodeView) setLeft(idx uint32, ok bool) {
	if ok {
		binary.BigEndian.PutUint32(n.buf[n.leftOff():n.leftOff()+4], idx)
	}
	n.setFlagBit(flagLeftPresent, ok)
}

func (n nodeView) right() (uint32, bool) {
	if n.flags()&flagRightPresent == 0 {
		return 0, false
	}
	return binary.BigEndian.Uint32(n.buf[n.rightOff() : n.rightOff()+4]), true
}

func (n nodeView) setRight(idx uint32, ok bool) {
	if ok {
		binary.BigEndian.PutUint32(n.buf[n.rightOff():n.rightOff()+4], idx)
	}
	n.setFlagBit(flagRightPresent, ok)
}

func (n nodeView) parent() (uint32, bool) {
	if n.flags()&flagParentPresent == 0 {
		return 0, false
	}
	return binary.BigEndian.Uint32(n.buf[n.parentOff() : n.parentOff()+4]), true
}

func (n nodeView) setParent(idx uint32, ok bool) {
	if ok {
		binary.BigEndian.PutUint32(n.buf[n.parentOff():n.parentOff()+4], idx)
	}
	n.setFlagBit(flagParentPresent, ok)
}

// freeLink reads the intrusive free-list link. Free nodes thread the
// list through the parent field, so this is just parent() under a name
// that makes allocator code read naturally.
func (n nodeView) freeLink() (uint32, bool) { return n.parent() }
func (n nodeView) setFreeLink(idx uint32, ok bool) { n.setParent(idx, ok) }

func (n nodeView) isRed() bool { return n.flags()&flagRed != 0 }

func (n nodeView) setRed(red bool) { n.setFlagBit(flagRed, red) }

// initNode resets a freshly allocated node to: no children, the given
// parent, and red. Key and value bytes are zeroed; callers overwrite
// them immediately after allocation.
func (n nodeView) initNode(parent uint32, hasParent bool) {
	n.buf[n.flagsOff()] = 0
	n.setLeft(0, false)
	n.setRight(0, false)
	n.setParent(parent, hasParent)
	n.setRed(true)
	for i := range n.key() {
		n.key()[i] = 0
	}
	for i := range n.value() {
		n.value()[i] = 0
	}
}
