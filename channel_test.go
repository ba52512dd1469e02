package flowring

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestScenario_S6_CrossThread_ProducerFinishesFirst mirrors S6: n=2,
// producer publishes four items and joins before the consumer ever
// drains; the consumer can only ever see the last two.
func TestScenario_S6_CrossThread_ProducerFinishesFirst(t *testing.T) {
	send, recv := New[int](2)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 4; i++ {
			i := i
			send.Put(func(c *Cell[int]) { c.Set(i) })
		}
	}()
	wg.Wait()

	sum := 0
	cur := recv.Iter()
	for {
		v, ok := cur.Next()
		if !ok {
			break
		}
		sum += v
	}
	require.Equal(t, 3+4, sum)
}

// TestScenario_S7_PourUnderInterleavedDrain mirrors S7: pour a large
// number of ids into a collecting sink while interleaving drains; the
// union of drained ids and sunk ids covers every id exactly once.
func TestScenario_S7_PourUnderInterleavedDrain(t *testing.T) {
	const total = 10000
	send, recv := New[int](64)

	var mu sync.Mutex
	overflowed := map[int]struct{}{}
	sink := OverflowSinkFunc[int](func(v int) {
		mu.Lock()
		overflowed[v] = struct{}{}
		mu.Unlock()
	})

	drained := map[int]struct{}{}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			Pour(i, send, sink)
		}
	}()

	for send.SeqNo() < uint64(total) {
		cur := recv.Iter()
		for {
			v, ok := cur.Next()
			if !ok {
				break
			}
			drained[v] = struct{}{}
		}
		runtime.Gosched()
	}
	wg.Wait()

	cur := recv.Iter()
	for {
		v, ok := cur.Next()
		if !ok {
			break
		}
		drained[v] = struct{}{}
	}

	mu.Lock()
	defer mu.Unlock()

	require.Equal(t, total, len(drained)+len(overflowed), "no item double-counted between drain and overflow sink")
	for v := range drained {
		_, alsoOverflowed := overflowed[v]
		require.False(t, alsoOverflowed, "item %d both drained and overflowed", v)
	}
}

func TestReceiver_Drain_FillsDestinationSlice(t *testing.T) {
	send, recv := New[int](8)
	for i := 0; i < 5; i++ {
		i := i
		send.Put(func(c *Cell[int]) { c.Set(i) })
	}

	dst := make([]int, 3)
	n := recv.Drain(dst)
	require.Equal(t, 3, n)
	require.Equal(t, []int{0, 1, 2}, dst)
}

func TestReceiver_Len_TracksUndrainedBacklog(t *testing.T) {
	send, recv := New[int](4)
	require.Equal(t, uint64(0), recv.Len())

	for i := 0; i < 3; i++ {
		send.Put(func(c *Cell[int]) {})
	}
	require.Equal(t, uint64(3), recv.Len())

	recv.Iter()
	require.Equal(t, uint64(0), recv.Len())

	for i := 0; i < 10; i++ {
		send.Put(func(c *Cell[int]) {})
	}
	require.Equal(t, uint64(4), recv.Len(), "backlog must clamp to capacity")
}
