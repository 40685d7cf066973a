package service

import (
	"math"
	"math/rand"
	"time"

	"tsdash/internal/services/seed/domain"

	"github.com/cespare/xxhash/v2"
)

// Generate synthesizes rows for one series over [start, end) at step
// rows follow the datapoints column order: external_id, ts, value
// the same seed and id always produce the same samples
func Generate(spec domain.Spec, start, end time.Time, step time.Duration, seed int64) [][]any {
	if spec.IsString || spec.Shape == domain.ShapeNone || step <= 0 || !start.Before(end) {
		return nil
	}
	start, end = start.UTC(), end.UTC()
	n := int(end.Sub(start) / step)
	if end.Sub(start)%step != 0 {
		n++
	}
	rng := rand.New(rand.NewSource(seed ^ int64(xxhash.Sum64String(spec.ExternalID))))

	lo, hi := spec.Base-spec.Amplitude, spec.Base+spec.Amplitude
	walk := spec.Base
	out := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * step)
		var v float64
		switch spec.Shape {
		case domain.ShapeSine:
			phase := 0.0
			if spec.Period > 0 {
				phase = 2 * math.Pi * float64(ts.Sub(start)) / float64(spec.Period)
			}
			v = spec.Base + spec.Amplitude*math.Sin(phase) + rng.NormFloat64()*spec.Noise
		case domain.ShapeWalk:
			walk = fold(walk+rng.NormFloat64()*spec.Noise, lo, hi)
			v = walk
		default:
			return nil
		}
		out = append(out, []any{spec.ExternalID, ts, v})
	}
	return out
}

// fold folds v back into [lo, hi]
func fold(v, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	for v < lo || v > hi {
		if v < lo {
			v = 2*lo - v
		}
		if v > hi {
			v = 2*hi - v
		}
	}
	return v
}
