// cursor.go: the backward-walking drain and its one-shot cursor
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package flowring

// DrainCursor is a lazy, one-shot sequence over the items captured by a
// single Receiver.Iter call. It holds no reference into the live ring
// positions: everything it yields was already swapped into the
// consumer's private buffer before the cursor was constructed.
//
// The range it covers is [start, start+count) in logical item ids, at
// construction time. Each Next call narrows that range from the low
// end. Any items left unread when the cursor is dropped are lost --
// spec.md's at-most-once guarantee, not a bug.
type DrainCursor[T any] struct {
	pool    *slotPool[T]
	private []uint64
	start   uint64
	count   int
}

// iter performs one backward drain pass: it snapshots seq, advances
// lastDrained unconditionally (the at-most-once commitment), then walks
// backward from the newest live item toward the oldest one still in
// [prev, seqNow), claiming each ring position with a CAS. A generation
// mismatch or a losing CAS means the producer rolled past that position
// during the walk; the walk stops there rather than retrying.
func (r *Ring[T]) iter() *DrainCursor[T] {
	seqNow := r.seq.Load()
	prev := r.lastDrained
	r.lastDrained = seqNow

	cursorSeq := seqNow
	count := uint64(0)

	var gen uint64
	if seqNow > 0 {
		gen = genFor(seqNow-1, r.n)
	}

	for count < r.n && cursorSeq > prev && cursorSeq > 0 {
		pos := (cursorSeq - 1) % r.n

		old := r.flags.load(pos)
		if unpackGen(old) != (gen & genMask) {
			break
		}

		oldSlot := unpackSlot(old)
		replacement := r.private[count]
		// A previous cursor dropped before it was exhausted leaves its
		// unread values behind; empty the cell before it enters the ring.
		r.pool.at(replacement).Clear()

		chk := packFlag(oldSlot, gen)
		newFlag := packFlag(replacement, gen)
		if !r.flags.compareAndSwap(pos, chk, newFlag) {
			break
		}

		r.private[count] = oldSlot
		cursorSeq--
		count++

		if pos == 0 {
			if gen == 0 {
				gen = genMask
			} else {
				gen--
			}
		}
	}

	return &DrainCursor[T]{
		pool:    r.pool,
		private: r.private,
		start:   cursorSeq,
		count:   int(count),
	}
}

// Next yields the next payload in ascending item-id order, or (zero,
// false) once the cursor is exhausted. The walk that built this cursor
// ran newest-to-oldest, filling private[0..count) from newest to
// oldest; Next reads it back from the tail so callers see items in the
// order they were published.
func (c *DrainCursor[T]) Next() (T, bool) {
	if c.count <= 0 {
		var zero T
		return zero, false
	}
	c.count--
	idx := c.private[c.count]
	v, _ := c.pool.take(idx)
	c.start++
	return v, true
}

// Range returns the half-open id range [start, start+count) still
// deliverable through this cursor.
func (c *DrainCursor[T]) Range() (uint64, uint64) {
	return c.start, c.start + uint64(c.count)
}

// PeekNextID returns the id Next would yield, without consuming it.
func (c *DrainCursor[T]) PeekNextID() (uint64, bool) {
	if c.count > 0 {
		return c.start, true
	}
	return 0, false
}
