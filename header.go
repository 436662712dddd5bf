package rbforest

import "encoding/binary"

// headerMagic is the fixed 12-byte literal stored at the start of every
// buffer managed by this package.
var headerMagic = [12]byte{'S', 'l', 'i', 'c', 'e', '_', 'R', 'B', 'T', 'r', 'e', 'e'}

// headerSize is the fixed on-disk size of the header record: 12 bytes of
// magic, four 2/4-byte geometry fields, the 4-byte free-list head, and 2
// reserved bytes kept for future use. The reserved bytes are always written zero and ignored on
// read.
const headerSize = 30

const (
	offMagic     = 0
	offKSize     = 12
	offVSize     = 14
	offMaxNodes  = 16
	offMaxRoots  = 20
	offHead      = 24
	offReserved  = 28
)

// noIndex is the sentinel value meaning "no node"/"no root" for the
// 4-byte index fields of the header and the root table. Node records do
// not use it; they track link presence with flag bits.
const noIndex uint32 = 0xFFFFFFFF

// headerView is a zero-allocation view over the first headerSize bytes
// of a forest's buffer. It never copies; every accessor reads or writes
// directly through buf.
type headerView struct {
	buf []byte
}

func (h headerView) checkMagic() bool {
	return [12]byte(h.buf[offMagic:offMagic+12]) == headerMagic
}

func (h headerView) writeMagic() {
	copy(h.buf[offMagic:offMagic+12], headerMagic[:])
}

func (h headerView) kSize() uint16 {
	return binary.BigEndian.Uint16(h.buf[offKSize : offKSize+2])
}

func (h headerView) setKSize(v uint16) {
	binary.BigEndian.PutUint16(h.buf[offKSize:offKSize+2], v)
}

func (h headerView) vSize() uint16 {
	return binary.BigEndian.Uint16(h.buf[offVSize : offVSize+2])
}

func (h headerView) setVSize(v uint16) {
	binary.BigEndian.PutUint16(h.buf[offVSize:offVSize+2], v)
}

func (h headerView) maxNodes() uint32 {
	return binary.BigEndian.Uint32(h.buf[offMaxNodes : offMaxNodes+4])
}

func (h headerView) setMaxNodes(v uint32) {
	binary.BigEndian.PutUint32(h.buf[offMaxNodes:offMaxNodes+4], v)
}

func (h headerView) maxRoots() uint32 {
	return binary.BigEndian.Uint32(h.buf[offMaxRoots : offMaxRoots+4])
}

func (h headerView) setMaxRoots(v uint32) {
	binary.BigEndian.PutUint32(h.buf[offMaxRoots:offMaxRoots+4], v)
}

// head returns the index of the first free node and whether the free
// list is non-empty.
func (h headerView) head() (uint32, bool) {
	v := binary.BigEndian.Uint32(h.buf[offHead : offHead+4])
	return v, v != noIndex
}

func (h headerView) setHead(idx uint32, ok bool) {
	if !ok {
		idx = noIndex
	}
	binary.BigEndian.PutUint32(h.buf[offHead:offHead+4], idx)
}

func (h headerView) clearReserved() {
	h.buf[offReserved] = 0
	h.buf[offReserved+1] = 0
}

// fill writes every header field, used once by Init.
func (h headerView) fill(kSize, vSize uint16, maxNodes, maxRoots uint32, head uint32, headOK bool) {
	h.writeMagic()
	h.setKSize(kSize)
	h.setVSize(vSize)
	h.setMaxNodes(maxNodes)
	h.setMaxRoots(maxRoots)
	h.setHead(head, headOK)
	h.clearReserved()
}
