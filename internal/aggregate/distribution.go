package aggregate

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/depdash/internal/dataset"
)

// Bands describes fixed-width buckets covering [0, Max).
type Bands struct {
	Width float64
	Max   float64
}

// DefaultAttendanceBands is ten 10-point bands from 0 to 100.
var DefaultAttendanceBands = Bands{Width: 10, Max: 100}

// Count returns the number of bands, at least one.
func (b Bands) Count() int {
	if b.Width <= 0 || b.Max <= 0 {
		return 1
	}
	n := int(math.Ceil(b.Max / b.Width))
	if n < 1 {
		n = 1
	}
	return n
}

// Index places v in a band by integer division, clamping values at or above
// Max into the last band and negative values into the first.
func (b Bands) Index(v float64) int {
	n := b.Count()
	if b.Width <= 0 || v < 0 {
		return 0
	}
	if v >= b.Max {
		return n - 1
	}
	i := int(math.Floor(v / b.Width))
	if i >= n {
		return n - 1
	}
	return i
}

// Bucket is one band of a distribution.
type Bucket struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BucketDistribution counts parseable values of fn per band. Every band is
// reported, including empty ones; records without a value are excluded, so
// the counts sum to the number of parseable records.
func BucketDistribution(set dataset.RecordSet, fn NumericFunc, bands Bands) []Bucket {
	n := bands.Count()
	out := make([]Bucket, n)
	for i := range out {
		lo := float64(i) * bands.Width
		hi := lo + bands.Width
		if i == n-1 && bands.Max > 0 {
			hi = bands.Max
		}
		out[i] = Bucket{Label: fmt.Sprintf("%s-%s", trimFloat(lo), trimFloat(hi)), Lower: lo, Upper: hi}
	}
	for _, r := range set {
		v, ok := fn(r)
		if !ok || math.IsNaN(v) {
			continue
		}
		out[bands.Index(v)].Count++
	}
	return out
}

func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%g", f)
}
