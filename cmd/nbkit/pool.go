package main

import (
	"context"
	"runtime"
	"sync"

	nbkit "github.com/alnah/go-nbkit"
)

// MaxPoolSize caps browser instances to limit memory (~200MB each).
const MaxPoolSize = 8

// PDFConverter is the interface for the notebook conversion service.
type PDFConverter interface {
	Convert(ctx context.Context, input nbkit.ConvertInput) ([]byte, error)
	Close() error
}

// Compile-time interface implementation check.
var _ PDFConverter = (*nbkit.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() PDFConverter
	Release(PDFConverter)
	Size() int
	Close() error
}

// ConverterPool manages a pool of nbkit.Converter instances for parallel
// processing. Each converter has its own browser instance, enabling true
// parallelism. Converters are created lazily on first acquire to avoid
// startup delay.
type ConverterPool struct {
	size       int
	newFn      func() PDFConverter
	converters []PDFConverter
	sem        chan PDFConverter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool with capacity for n converters built
// by newFn. Converters are created lazily when acquired.
func NewConverterPool(n int, newFn func() PDFConverter) *ConverterPool {
	if n < 1 {
		n = 1
	}

	return &ConverterPool{
		size:       n,
		newFn:      newFn,
		converters: make([]PDFConverter, 0, n),
		sem:        make(chan PDFConverter, n),
	}
}

// Compile-time check that ConverterPool implements Pool.
var _ Pool = (*ConverterPool)(nil)

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use.
func (p *ConverterPool) Acquire() PDFConverter {
	// Try to get an existing converter (non-blocking)
	select {
	case c := <-p.sem:
		return c
	default:
	}

	// Check if we can create a new converter
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new converter outside the lock
		c := p.newFn()

		p.mu.Lock()
		p.converters = append(p.converters, c)
		p.mu.Unlock()

		return c
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	return <-p.sem
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(c PDFConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- c
	}
}

// Close releases all browser resources.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var lastErr error
	for _, c := range converters {
		if err := c.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// resolvePoolSize determines the optimal pool size.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	// Explicit flag takes priority
	if flagWorkers > 0 {
		return flagWorkers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / 2

	// Minimum 1, maximum MaxPoolSize
	if n < 1 {
		return 1
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
