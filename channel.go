// channel.go: public Sender/Receiver handles over a shared Ring
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package flowring

// New constructs a lossy SPSC channel of capacity n and returns the
// producer and consumer handles that share it. A capacity of 0 is
// silently coerced to 1.
//
// Example:
//
//	send, recv := flowring.New[string](64)
//	send.Put(func(c *flowring.Cell[string]) { c.Set("hello") })
//	cur := recv.Iter()
//	v, ok := cur.Next() // "hello", true
func New[T any](n uint64) (*Sender[T], *Receiver[T]) {
	r := newRing[T](n)
	return &Sender[T]{r: r}, &Receiver[T]{r: r}
}

// Sender is the unique producer handle over a shared Ring. Only one
// goroutine may call its methods at a time.
type Sender[T any] struct {
	r *Ring[T]
}

// Put publishes one item via the writer callback and returns its
// logical id (the pre-increment sequence value).
func (s *Sender[T]) Put(write Writer[T]) uint64 {
	return s.r.Put(write)
}

// Tmp inspects (or mutates) the producer's scratch cell without
// publishing anything.
func (s *Sender[T]) Tmp(inspect Writer[T]) {
	s.r.Tmp(inspect)
}

// SeqNo returns the number of items published so far.
func (s *Sender[T]) SeqNo() uint64 {
	return s.r.SeqNo()
}

// Receiver is the unique consumer handle over a shared Ring. Only one
// goroutine may call its methods at a time.
type Receiver[T any] struct {
	r *Ring[T]
}

// Iter starts one drain pass and returns a cursor over the items still
// live since the previous call to Iter or Drain.
func (rv *Receiver[T]) Iter() *DrainCursor[T] {
	return rv.r.iter()
}

// Drain is a convenience wrapper over Iter: it repeatedly calls Next
// into dst until dst is full or the cursor is exhausted, and returns
// the number of items written. It adds no protocol of its own.
func (rv *Receiver[T]) Drain(dst []T) int {
	cur := rv.r.iter()
	n := 0
	for n < len(dst) {
		v, ok := cur.Next()
		if !ok {
			break
		}
		dst[n] = v
		n++
	}
	return n
}

// Len estimates the number of published-but-undrained items, clamped
// to capacity. Consumer-exclusive, like the lastDrained cursor it reads.
func (rv *Receiver[T]) Len() uint64 {
	return rv.r.Len()
}
