package shared

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAppendConcurrent(t *testing.T) {
	const (
		goroutines = 4
		perG       = 250
	)

	l := NewList[int]()

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perG {
				l.Append(g*perG + i)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines*perG, l.Len())

	got := l.Snapshot()
	sort.Ints(got)
	for i, v := range got {
		require.Equal(t, i, v, "element lost or duplicated")
	}
}

func TestListAtAndSetAt(t *testing.T) {
	l := NewList[string]()
	l.Append("a")
	l.Append("b")

	assert.Equal(t, "b", l.At(1))
	l.SetAt(1, "c")
	assert.Equal(t, "c", l.At(1))
}

func TestListSnapshotIsDetached(t *testing.T) {
	l := NewList[int]()
	l.Append(1)

	snap := l.Snapshot()
	l.Append(2)

	assert.Equal(t, []int{1}, snap)
}

func TestDictBasicOperations(t *testing.T) {
	d := NewDict[string, int]()

	_, ok := d.Get("missing")
	assert.False(t, ok)

	d.Set("a", 1)
	d.Set("b", 2)
	d.Set("a", 3)

	v, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, d.Len())

	keys := d.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)

	d.Delete("a")
	d.Delete("never-there")
	assert.Equal(t, 1, d.Len())
}

func TestDictConcurrentDistinctKeys(t *testing.T) {
	const keys = 400

	d := NewDict[int, float64]()

	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := g; k < keys; k += 4 {
				d.Set(k, 1.0)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, keys, d.Len())
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()
	q.Put(1)
	q.Put(2)
	q.Put(3)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 1, q.Get())
	assert.Equal(t, 2, q.Get())

	v, ok := q.TryGet()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = q.TryGet()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestQueueGetBlocksUntilPut(t *testing.T) {
	q := NewQueue[string]()

	got := make(chan string, 1)
	go func() {
		got <- q.Get()
	}()

	q.Put("wake")
	assert.Equal(t, "wake", <-got)
}

func TestQueueConcurrentProducersConsumers(t *testing.T) {
	const (
		producers = 3
		perP      = 200
	)

	q := NewQueue[int]()

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perP {
				q.Put(p*perP + i)
			}
		}()
	}

	var (
		consumed sync.Map
		cwg      sync.WaitGroup
	)
	for range 2 {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			for range producers * perP / 2 {
				consumed.Store(q.Get(), true)
			}
		}()
	}

	wg.Wait()
	cwg.Wait()

	count := 0
	consumed.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, producers*perP, count)
	assert.Equal(t, 0, q.Len())
}
