package rbforest

import "errors"

// Sentinel errors returned by Init, Open and the mutating tree operations.
// All of them are user-recoverable: the buffer is left in a valid state
// whenever one of these is returned.
var (
	// ErrTooSmall is returned by Init/Open when the supplied buffer is
	// shorter than the size required by the requested geometry.
	ErrTooSmall = errors.New("rbforest: buffer too small")

	// ErrWrongSliceSize is returned by Open when the buffer length does
	// not match the size implied by the header's own geometry fields.
	ErrWrongSliceSize = errors.New("rbforest: slice size does not match header geometry")

	// ErrWrongMagic is returned by Open when the header's magic bytes do
	// not match the expected literal.
	ErrWrongMagic = errors.New("rbforest: wrong magic bytes")

	// ErrWrongKeySize is returned by Open when the header's stored key
	// width does not match the codec supplied by the caller.
	ErrWrongKeySize = errors.New("rbforest: wrong key size")

	// ErrWrongValueSize is returned by Open when the header's stored
	// value width does not match the codec supplied by the caller.
	ErrWrongValueSize = errors.New("rbforest: wrong value size")

	// ErrWrongNodePoolSize is returned by Open when the node pool region
	// length is not an exact multiple of the node stride.
	ErrWrongNodePoolSize = errors.New("rbforest: node pool size is not a multiple of the node stride")

	// ErrNoNodesLeft is returned by Put/insert operations when the free
	// list is empty.
	ErrNoNodesLeft = errors.New("rbforest: no free nodes left")

	// ErrKeySerialization is returned when a key fails to encode into
	// the fixed-width key slot. The node allocated for the attempt, if
	// any, is returned to the free list before this error is returned.
	ErrKeySerialization = errors.New("rbforest: key serialization failed")

	// ErrValueSerialization is returned when a value fails to encode
	// into the fixed-width value slot. The node allocated for the
	// attempt, if any, is returned to the free list before this error
	// is returned.
	ErrValueSerialization = errors.New("rbforest: value serialization failed")

	// ErrTooBig is returned by RequiredSize/Init when the requested
	// geometry overflows the addressable node or root count.
	ErrTooBig = errors.New("rbforest: requested geometry is too big")

	// ErrTooBigTreeID is returned when a tree id passed to a Forest
	// method is outside [0, MaxRoots).
	ErrTooBigTreeID = errors.New("rbforest: tree id out of range")
)
