package resample

import (
	"math"

	"github.com/gogpu/bitmap/internal/cache"
)

// tap is one source sample contributing to a destination sample.
type tap struct {
	index  int
	weight float64
}

type tapKey struct {
	method   Method
	src, dst int
}

// Tap tables depend only on the method and the two extents, so they are
// shared across formats and calls.
var tapCache = cache.New[tapKey, [][]tap](64)

// taps returns, for every destination index along one axis, the source
// samples and weights of method m.
func taps(m Method, src, dst int) [][]tap {
	return tapCache.GetOrCreate(tapKey{m, src, dst}, func() [][]tap {
		switch m {
		case Bilinear:
			return bilinearTaps(src, dst)
		case Bicubic:
			return bicubicTaps(src, dst)
		}
		return lanczosTaps(src, dst, m.window())
	})
}

// bilinearTaps maps destination i to source i*(src-1)/dst and blends the two
// neighbors by the fractional part.
func bilinearTaps(src, dst int) [][]tap {
	ratio := float64(src-1) / float64(dst)
	out := make([][]tap, dst)
	for i := range out {
		fx := float64(i) * ratio
		x0 := int(fx)
		t := fx - float64(x0)
		x1 := min(x0+1, src-1)
		out[i] = []tap{{x0, 1 - t}, {x1, t}}
	}
	return out
}

// bicubicTaps uses pixel-center mapping and Catmull-Rom weights. Neighbors
// outside the source are clamped to the edge.
func bicubicTaps(src, dst int) [][]tap {
	scale := float64(src) / float64(dst)
	out := make([][]tap, dst)
	for i := range out {
		fx := (float64(i)+0.5)*scale - 0.5
		x := int(math.Floor(fx))
		t := fx - float64(x)
		row := make([]tap, 4)
		for k := range 4 {
			row[k] = tap{
				index:  clamp(x+k-1, 0, src-1),
				weight: cubicWeight(t - float64(k-1)),
			}
		}
		out[i] = row
	}
	return out
}

// lanczosTaps takes 2*window samples around the pixel-center position.
// Samples outside the source are skipped and the remaining weights are
// normalized to sum to one.
func lanczosTaps(src, dst, window int) [][]tap {
	scale := float64(src) / float64(dst)
	out := make([][]tap, dst)
	for i := range out {
		fx := (float64(i)+0.5)*scale - 0.5
		x := int(math.Floor(fx))
		row := make([]tap, 0, 2*window)
		var sum float64
		for k := x - window + 1; k <= x+window; k++ {
			if k < 0 || k >= src {
				continue
			}
			w := lanczos(fx-float64(k), float64(window))
			if w == 0 {
				continue
			}
			row = append(row, tap{index: k, weight: w})
			sum += w
		}
		if sum == 0 {
			row = append(row[:0], tap{index: clamp(int(math.Round(fx)), 0, src-1), weight: 1})
			sum = 1
		}
		for j := range row {
			row[j].weight /= sum
		}
		out[i] = row
	}
	return out
}

// cubicWeight computes the Catmull-Rom cubic weight for distance t.
func cubicWeight(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t < 1:
		return 1.5*t*t*t - 2.5*t*t + 1
	case t < 2:
		return -0.5*t*t*t + 2.5*t*t - 4*t + 2
	}
	return 0
}

// lanczos is sinc(x)*sinc(x/a) inside the window and zero outside.
func lanczos(x, a float64) float64 {
	if x <= -a || x >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
