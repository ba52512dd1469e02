// Package flowring provides a wait-free, single-producer single-consumer
// (SPSC) lossy ring-buffer channel.
//
// # Thread-Safety Guarantees
//
// The ring is lock-free and wait-free for its documented use case:
//   - Exactly one goroutine may call Sender.Put/Tmp (the producer).
//   - Exactly one goroutine may call Receiver.Iter/Drain (the consumer).
//   - All other goroutines must not touch the Sender or Receiver.
//
// Violating these constraints (multiple producers or consumers) is
// undefined behavior; nothing at runtime detects it.
//
// # Loss Model
//
// The producer never blocks and never waits on the consumer. If the
// consumer falls behind by more than the ring's capacity, the oldest
// unread items are silently overwritten. Use Pour with an OverflowSink
// if a caller needs to observe exactly which values were evicted.
//
// # Performance Characteristics
//
//   - Wait-free publish: a single atomic swap plus a sequence bump.
//   - Lock-free drain: one atomic compare-and-swap per claimed slot;
//     a losing CAS or a generation mismatch aborts the drain rather
//     than retrying.
//   - Zero allocations on the hot path: all 2n+1 payload cells are
//     pre-allocated at construction and only ever swapped between the
//     producer's scratch cell, the consumer's private buffer, and the
//     n live ring positions.
//
// # Usage Example
//
//	send, recv := flowring.New[int](64)
//
//	go func() {
//	    for i := 0; i < 100; i++ {
//	        send.Put(func(c *flowring.Cell[int]) { c.Set(i) })
//	    }
//	}()
//
//	cur := recv.Iter()
//	for {
//	    v, ok := cur.Next()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(v)
//	}
package flowring
