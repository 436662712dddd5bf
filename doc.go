// Package rbforest implements an in-place, slice-backed ordered map: a
// forest of Red-Black trees sharing one caller-supplied byte buffer, one
// flat node pool with an intrusive free-list, and a root table holding
// one tree per index. Keys and values are encoded to fixed widths via
// the codec package; the forest itself only ever compares and moves
// bytes.
//
// A Forest never grows its buffer and never allocates from the Go heap
// after construction except for the small Forest value and its
// iterators. This makes it suitable for memory-mapped or otherwise
// externally managed storage: Init lays out a fresh forest inside a
// buffer, and Open reattaches to one written by a previous Init,
// validating its header before trusting any of it.
package rbforest
