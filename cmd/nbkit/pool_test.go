package main

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	nbkit "github.com/alnah/go-nbkit"
)

// countingConverter tracks Close calls for pool lifecycle tests.
type countingConverter struct {
	closed bool
}

func (c *countingConverter) Convert(_ context.Context, _ nbkit.ConvertInput) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (c *countingConverter) Close() error {
	c.closed = true
	return nil
}

func newCountingPool(n int) (*ConverterPool, *[]*countingConverter) {
	var mu sync.Mutex
	created := &[]*countingConverter{}
	pool := NewConverterPool(n, func() PDFConverter {
		c := &countingConverter{}
		mu.Lock()
		*created = append(*created, c)
		mu.Unlock()
		return c
	})
	return pool, created
}

func TestResolvePoolSize(t *testing.T) {
	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name        string
		flagWorkers int
		want        int
	}{
		{
			name:        "flag takes priority",
			flagWorkers: 4,
			want:        4,
		},
		{
			name:        "flag=1 for sequential",
			flagWorkers: 1,
			want:        1,
		},
		{
			name:        "flag=0 uses auto calculation",
			flagWorkers: 0,
			want:        min(max(gomaxprocs/2, 1), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolvePoolSize(tt.flagWorkers)
			if got != tt.want {
				t.Errorf("resolvePoolSize(%d) = %d, want %d", tt.flagWorkers, got, tt.want)
			}
		})
	}
}

func TestConverterPool_LazyCreation(t *testing.T) {
	pool, created := newCountingPool(4)
	defer pool.Close()

	if len(*created) != 0 {
		t.Errorf("converters created at construction: %d, want 0", len(*created))
	}

	c := pool.Acquire()
	if c == nil {
		t.Fatal("Acquire() returned nil")
	}
	if len(*created) != 1 {
		t.Errorf("converters after first acquire = %d, want 1", len(*created))
	}
	pool.Release(c)
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	pool, _ := newCountingPool(2)
	defer pool.Close()

	c1 := pool.Acquire()
	c2 := pool.Acquire()
	if c1 == c2 {
		t.Error("expected different converter instances")
	}

	pool.Release(c1)
	c3 := pool.Acquire()
	if c3 != c1 {
		t.Error("expected to get back the released converter")
	}

	pool.Release(c2)
	pool.Release(c3)
}

func TestConverterPool_Size(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"size 1", 1, 1},
		{"size 4", 4, 4},
		{"size 0 becomes 1", 0, 1},
		{"negative becomes 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, _ := newCountingPool(tt.size)
			defer pool.Close()

			if got := pool.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConverterPool_CloseReleasesConverters(t *testing.T) {
	pool, created := newCountingPool(2)

	c1 := pool.Acquire()
	c2 := pool.Acquire()
	pool.Release(c1)
	pool.Release(c2)

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	for i, c := range *created {
		if !c.closed {
			t.Errorf("converter %d not closed", i)
		}
	}
}

func TestConverterPool_ReleaseAfterClose(t *testing.T) {
	pool, _ := newCountingPool(2)

	c := pool.Acquire()
	pool.Close()

	// Must be a safe no-op
	pool.Release(c)
}

func TestConverterPool_DoubleClose(t *testing.T) {
	pool, _ := newCountingPool(1)

	if err := pool.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestConverterPool_ConcurrentAccess(t *testing.T) {
	pool, _ := newCountingPool(4)
	defer pool.Close()

	var wg sync.WaitGroup
	iterations := 20

	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := pool.Acquire()
			time.Sleep(5 * time.Millisecond) // Simulate work
			pool.Release(c)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent access test timed out - possible deadlock")
	}
}
