// Package slab implements the shared storage both order-maintenance
// backends are built on: a circular doubly-linked list of labeled
// nodes, allocated from a segmented arena and reference counted so an
// arena is released exactly when its last handle is dropped.
//
// Nodes are allocated in fixed-size segments with a freelist for O(1)
// alloc/free and stable integer keys across growth, the same shape as
// a slab::Slab-backed arena, plus the remove() unlink logic and the
// sentinel "base" node every universe is created with. An
// order-maintenance universe is single-threaded, so there is no
// concurrency machinery here: the fields below are plain,
// unsynchronized integers.
package slab

import (
	"github.com/google/uuid"

	"github.com/dsbender/ordermaint/internal/errs"
)

// segmentSize bounds how many Nodes live in one contiguous []Node
// segment; the arena grows by appending whole segments rather than
// reallocating and copying everything allocated so far, so existing
// Key values and *Node pointers stay valid across growth.
const segmentSize = 512

// Key identifies a Node within an Arena. A Key embeds a generation
// counter so that a stale Key — one referring to a slot that has since
// been freed and reused — is detected rather than silently aliasing
// whatever now occupies that slot.
type Key struct {
	idx int32
	gen int32
}

// Node is one entry in the arena's circular doubly-linked list.
type Node struct {
	label    uint64
	next     Key
	prev     Key
	refCount int32
	gen      int32
	freeNext int32 // index of the next free slot, or -1
}

// Label returns the node's tag.
func (n *Node) Label() uint64 { return n.label }

// SetLabel overwrites the node's tag.
func (n *Node) SetLabel(l uint64) { n.label = l }

// Next returns the key of the node's successor.
func (n *Node) Next() Key { return n.next }

// SetNext overwrites the node's successor key.
func (n *Node) SetNext(k Key) { n.next = k }

// Prev returns the key of the node's predecessor.
func (n *Node) Prev() Key { return n.prev }

// SetPrev overwrites the node's predecessor key.
func (n *Node) SetPrev(k Key) { n.prev = k }

// IncRef increments the node's reference count.
func (n *Node) IncRef() { n.refCount++ }

// DecRef decrements the node's reference count and reports whether it
// reached zero, meaning the node is ready to be unlinked and freed.
func (n *Node) DecRef() bool {
	if n.refCount <= 0 {
		errs.PanicDoubleDrop()
	}
	n.refCount--
	return n.refCount == 0
}

// Arena owns a segmented slab of Nodes arranged as one circular
// doubly-linked list, plus a freelist of slots vacated by Remove.
type Arena struct {
	// ID correlates log records from the same universe; it has no
	// bearing on ordering.
	ID uuid.UUID

	segments  [][]Node
	nodeCount int32
	liveCount int32
	freeHead  int32 // -1 when the freelist is empty
	base      Key
}

// New creates an arena containing exactly one node: the base, whose
// label is 0 and whose next/prev both point to itself. Both backends
// treat it purely as an internal sentinel — New never hands a caller a
// Key pointing at it; each backend's own New inserts a real,
// user-visible first node immediately after it instead.
func New() *Arena {
	a := &Arena{ID: uuid.New(), freeHead: -1}
	a.base = a.alloc()
	n := a.Get(a.base)
	n.label = 0
	n.next = a.base
	n.prev = a.base
	n.refCount = 1
	return a
}

// Base returns the key of the arena's sentinel/first node.
func (a *Arena) Base() Key { return a.base }

// Total returns the number of live nodes currently allocated,
// including the base.
func (a *Arena) Total() int { return int(a.liveCount) }

func (a *Arena) rawNode(idx int32) *Node {
	if idx < 0 || idx >= a.nodeCount {
		return nil
	}
	seg := idx / segmentSize
	off := idx % segmentSize
	return &a.segments[seg][off]
}

// Get dereferences a Key, panicking with a ProgrammerError if the key
// is out of range or refers to a slot that has since been freed and
// possibly reused (detected via generation mismatch).
func (a *Arena) Get(k Key) *Node {
	n := a.rawNode(k.idx)
	if n == nil || n.gen != k.gen {
		errs.PanicInvalidKey()
	}
	return n
}

func (a *Arena) alloc() Key {
	if a.freeHead != -1 {
		idx := a.freeHead
		n := a.rawNode(idx)
		a.freeHead = n.freeNext
		n.label, n.next, n.prev, n.refCount, n.freeNext = 0, Key{}, Key{}, 0, -1
		a.liveCount++
		return Key{idx: idx, gen: n.gen}
	}

	idx := a.nodeCount
	a.nodeCount++
	seg := idx / segmentSize
	if int(seg) >= len(a.segments) {
		a.segments = append(a.segments, make([]Node, segmentSize))
	}
	n := a.rawNode(idx)
	n.freeNext = -1
	a.liveCount++
	return Key{idx: idx, gen: n.gen}
}

func (a *Arena) free(k Key) {
	n := a.Get(k)
	n.gen++
	n.freeNext = a.freeHead
	a.freeHead = k.idx
	a.liveCount--
}

// InsertAfter allocates a new node carrying label, splices it into the
// ring immediately after prevKey, and returns its key with a reference
// count of one.
func (a *Arena) InsertAfter(label uint64, prevKey Key) Key {
	prev := a.Get(prevKey)
	nextKey := prev.next

	newKey := a.alloc()
	n := a.Get(newKey)
	n.label = label
	n.next = nextKey
	n.prev = prevKey
	n.refCount = 1

	a.Get(prevKey).next = newKey
	a.Get(nextKey).prev = newKey
	return newKey
}

// Remove unlinks key from the ring and returns its slot to the
// freelist. Grounded on internal.rs's Arena::remove: when more than
// one node remains besides the one being removed, this is a plain
// doubly-linked unlink; the unlink formula degenerates correctly to a
// single node pointing at itself when exactly one other node remains,
// so no special case is needed there. When key is the last node in the
// arena, there is nothing left to relink.
func (a *Arena) Remove(key Key) {
	n := a.Get(key)
	if a.liveCount > 1 {
		nextKey, prevKey := n.next, n.prev
		a.Get(nextKey).prev = prevKey
		a.Get(prevKey).next = nextKey
	}
	a.free(key)
}
