package metrics

import (
	"math"
	"sort"
	"sync"
)

// defaultPercentiles are the quantiles reported by Summary.
var defaultPercentiles = []float64{0.5, 0.9, 0.95, 0.99}

// Histogram tracks the distribution of observed values across fixed
// buckets. Safe for concurrent use. The latency histograms in Collector
// observe one value per KEM operation, so a single mutex is not a
// bottleneck at the rates code-based key generation can sustain.
type Histogram struct {
	mu     sync.RWMutex
	bounds []float64 // ascending upper bounds, exclusive
	counts []uint64  // len(bounds)+1, last is the overflow bucket
	sum    float64
	count  uint64
	min    float64
	max    float64
}

// NewHistogram creates a histogram with the given bucket upper bounds.
// The bounds are copied and sorted.
func NewHistogram(bounds []float64) *Histogram {
	b := append([]float64(nil), bounds...)
	sort.Float64s(b)

	return &Histogram{
		bounds: b,
		counts: make([]uint64, len(b)+1),
		min:    math.MaxFloat64,
		max:    -math.MaxFloat64,
	}
}

// Observe records a value.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.counts[sort.SearchFloat64s(h.bounds, v)]++
	h.sum += v
	h.count++
	h.min = math.Min(h.min, v)
	h.max = math.Max(h.max, v)
}

// Count returns the total number of observations.
func (h *Histogram) Count() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Mean returns the mean of all observations, or 0 when empty.
func (h *Histogram) Mean() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.count == 0 {
		return 0
	}
	return h.sum / float64(h.count)
}

// Reset clears all recorded data.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.counts)
	h.sum = 0
	h.count = 0
	h.min = math.MaxFloat64
	h.max = -math.MaxFloat64
}

// BucketCount is one cumulative histogram bucket.
type BucketCount struct {
	UpperBound float64 `json:"le"`
	Count      uint64  `json:"count"` // cumulative
}

// HistogramSummary is a point-in-time view of a histogram.
type HistogramSummary struct {
	Count       uint64              `json:"count"`
	Sum         float64             `json:"sum"`
	Min         float64             `json:"min"`
	Max         float64             `json:"max"`
	Mean        float64             `json:"mean"`
	Buckets     []BucketCount       `json:"buckets"`
	Percentiles map[float64]float64 `json:"percentiles,omitempty"`
}

// Summary returns cumulative buckets and estimated percentiles.
func (h *Histogram) Summary() HistogramSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return HistogramSummary{
			Buckets:     []BucketCount{},
			Percentiles: map[float64]float64{},
		}
	}

	buckets := make([]BucketCount, 0, len(h.bounds)+1)
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += h.counts[i]
		buckets = append(buckets, BucketCount{UpperBound: bound, Count: cumulative})
	}
	cumulative += h.counts[len(h.bounds)]
	buckets = append(buckets, BucketCount{UpperBound: math.Inf(1), Count: cumulative})

	return HistogramSummary{
		Count:       h.count,
		Sum:         h.sum,
		Min:         h.min,
		Max:         h.max,
		Mean:        h.sum / float64(h.count),
		Buckets:     buckets,
		Percentiles: h.estimatePercentiles(defaultPercentiles),
	}
}

// estimatePercentiles interpolates percentile values from the bucket
// counts. Values inside the overflow bucket report the observed max.
func (h *Histogram) estimatePercentiles(ps []float64) map[float64]float64 {
	out := make(map[float64]float64, len(ps))
	if h.count == 0 {
		return out
	}

	for _, p := range ps {
		rank := p * float64(h.count)
		var cumulative uint64
		for i, c := range h.counts {
			cumulative += c
			if float64(cumulative) < rank {
				continue
			}
			switch {
			case i == 0:
				out[p] = h.bounds[0] / 2
			case i >= len(h.bounds):
				out[p] = h.max
			default:
				lower, upper := h.bounds[i-1], h.bounds[i]
				below := float64(cumulative - c)
				out[p] = lower + (rank-below)/float64(c)*(upper-lower)
			}
			break
		}
	}
	return out
}
