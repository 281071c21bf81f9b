package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_ExecuteAll(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		items   int
	}{
		{"single worker", 1, 10},
		{"more items than queue", 2, 100},
		{"gomaxprocs", 0, 33},
		{"empty", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewWorkerPool(tt.workers)
			defer p.Close()
			var n atomic.Int64
			work := make([]func(), tt.items)
			for i := range work {
				work[i] = func() { n.Add(1) }
			}
			p.ExecuteAll(work)
			if got := n.Load(); got != int64(tt.items) {
				t.Errorf("ran %d items, want %d", got, tt.items)
			}
		})
	}
}

func TestWorkerPool_ClosedRunsInline(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()
	ran := 0
	p.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
}

func TestRows_CoversEveryRowOnce(t *testing.T) {
	tests := []struct {
		name          string
		height, width int
	}{
		{"inline", 4, 4},
		{"banded", 300, 1000},
		{"one row", 1, 1 << 20},
		{"empty", 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			seen := make([]int, tt.height)
			Rows(tt.height, tt.width, func(y0, y1 int) {
				mu.Lock()
				defer mu.Unlock()
				for y := y0; y < y1; y++ {
					seen[y]++
				}
			})
			for y, c := range seen {
				if c != 1 {
					t.Fatalf("row %d visited %d times", y, c)
				}
			}
		})
	}
}
