// ring.go: the slot-exchange protocol joining a slotPool and a flagArray
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package flowring

import "sync/atomic"

// Ring combines a slotPool and a flagArray into the slot-exchange
// protocol: Put (producer publish, via swap) and the backward-walking
// drain driven from Receiver.Iter (consumer, via compare-and-swap).
//
// Exactly one goroutine may call the producer-side methods (Put, Tmp)
// and exactly one goroutine may call the consumer-side methods (iter,
// Len, and the Receiver's Iter/Drain built on them) concurrently with
// them. The ring itself never enforces this;
// it is a contract on the caller, same as the teacher's own
// single-producer / single-consumer constraint.
type Ring[T any] struct {
	n     uint64
	pool  *slotPool[T]
	flags *flagArray

	seq atomic.Uint64 // shared; producer writes (release), consumer reads (acquire)

	// producer-exclusive
	scratch     uint64
	producerSeq uint64 // producer's private mirror of seq, the "current_seq" of spec.md 4.3.1

	// consumer-exclusive
	private     []uint64
	lastDrained uint64
}

// newRing allocates a ring of capacity n, coercing n == 0 to 1 and
// bumping n by one if n is a multiple of 2^genBits (breaking the
// generation-tag alias spec.md 9 warns about).
func newRing[T any](n uint64) *Ring[T] {
	if n == 0 {
		n = 1
	}
	if n%(uint64(1)<<genBits) == 0 {
		n++
	}

	r := &Ring[T]{
		n:       n,
		pool:    newSlotPool[T](2*n + 1),
		flags:   newFlagArray(n),
		private: make([]uint64, n),
	}

	for i := uint64(0); i < n; i++ {
		r.flags.words[i].Store(packFlag(1+i, 0))
		r.private[i] = 1 + n + i
	}
	// scratch starts at 0; producerSeq, seq, lastDrained all start at 0
	// (the g0 = 0 convention from spec.md 3).
	return r
}

// genFor returns the generation tag of the item with the given logical
// id in a ring of capacity n: the 1-based number of the revolution the
// id falls in, i.e. how many publishes up to and including that id
// landed on position 0 (id 0 gets 1). Both producer and consumer derive the
// tag with this same pure function -- spec.md 9's "open question" is
// resolved by making the tag a function of id alone, never mutable
// state carried across calls.
func genFor(id, n uint64) uint64 {
	return id/n + 1
}

// Put invokes write on the producer's scratch cell (guaranteed empty on
// entry, by I2, unless the previous publish overflowed an unread item --
// see Tmp), then swaps the scratch cell into the ring at the current
// sequence position and returns the logical id of the item just
// published.
func (r *Ring[T]) Put(write Writer[T]) uint64 {
	s := r.scratch
	cell := r.pool.at(s)
	cell.Clear()
	write(cell)

	id := r.producerSeq
	pos := id % r.n
	gen := genFor(id, r.n)

	newFlag := packFlag(s, gen)
	old := r.flags.swap(pos, newFlag)
	r.scratch = unpackSlot(old)

	r.producerSeq = id + 1
	r.seq.Store(r.producerSeq)
	return id
}

// Tmp invokes inspect on the producer's current scratch cell without
// advancing seq or touching any flag. It is how PourHelper (and any
// other caller) checks whether the most recent Put evicted an unread
// item: that item's payload, if present, now sits in scratch.
func (r *Ring[T]) Tmp(inspect Writer[T]) {
	inspect(r.pool.at(r.scratch))
}

// SeqNo returns the current published sequence count. It is for
// observability only: there is no synchronization guarantee beyond the
// acquire load itself.
func (r *Ring[T]) SeqNo() uint64 {
	return r.seq.Load()
}

// Len estimates the number of items published but not yet drained,
// clamped to the ring's capacity. This is a best-effort, lock-free
// snapshot useful for monitoring; it can be stale the instant it
// returns, same as SeqNo.
func (r *Ring[T]) Len() uint64 {
	seqNow := r.seq.Load()
	backlog := seqNow - r.lastDrained
	if backlog > r.n {
		return r.n
	}
	return backlog
}
