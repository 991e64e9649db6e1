package wakeword

import (
	"fmt"
	"math"
)

// Resampler converts PCM16 between two fixed sample rates with a polyphase
// rational resampler: upsample by up (zero stuffing), low-pass with a
// windowed-sinc FIR, downsample by down. The filter is designed once at
// construction; only taps aligned with non-zero input samples are evaluated.
type Resampler struct {
	up   int
	down int
	taps []float64
}

// firTapsPerPhase controls filter length: the FIR spans this many input
// samples on each side of the output point.
const firTapsPerPhase = 10

// NewResampler builds a resampler converting fromRate to toRate.
func NewResampler(fromRate, toRate int) (*Resampler, error) {
	if fromRate <= 0 || toRate <= 0 {
		return nil, fmt.Errorf("invalid resample rates %d -> %d", fromRate, toRate)
	}
	g := gcd(fromRate, toRate)
	up := toRate / g
	down := fromRate / g
	return &Resampler{
		up:   up,
		down: down,
		taps: designLowPass(up, down),
	}, nil
}

// Ratio returns the reduced up/down conversion ratio.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// OutputLen returns the number of samples Resample produces for n inputs:
// ceil(n*up/down), matching the duration of the input chunk.
func (r *Resampler) OutputLen(n int) int {
	return (n*r.up + r.down - 1) / r.down
}

// Resample converts one chunk. Chunks are treated independently; the filter
// sees zeros beyond the chunk edges.
func (r *Resampler) Resample(in []int16) []int16 {
	if r.up == r.down {
		out := make([]int16, len(in))
		copy(out, in)
		return out
	}

	center := (len(r.taps) - 1) / 2
	out := make([]int16, r.OutputLen(len(in)))
	for n := range out {
		// Position of this output sample on the upsampled grid, shifted so
		// the filter is centered (zero group delay).
		j := n*r.down + center

		// Only upsampled-grid points j-k with (j-k) % up == 0 carry input
		// samples; start at the first aligned tap and step by up.
		var acc float64
		k := j % r.up
		for ; k < len(r.taps); k += r.up {
			idx := (j - k) / r.up
			if idx < 0 {
				break
			}
			if idx >= len(in) {
				continue
			}
			acc += r.taps[k] * float64(in[idx])
		}
		out[n] = clampInt16(acc * float64(r.up))
	}
	return out
}

// designLowPass returns a Hamming-windowed sinc FIR with cutoff at the
// narrower of the two Nyquist bands, normalized to unit DC gain.
func designLowPass(up, down int) []float64 {
	m := up
	if down > m {
		m = down
	}
	halfLen := firTapsPerPhase * m
	taps := make([]float64, 2*halfLen+1)

	cutoff := 1.0 / float64(m) // relative to the upsampled Nyquist
	var sum float64
	for i := range taps {
		x := float64(i - halfLen)
		// sinc low-pass
		var v float64
		if x == 0 {
			v = cutoff
		} else {
			v = math.Sin(math.Pi*cutoff*x) / (math.Pi * x)
		}
		// Hamming window
		v *= 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(len(taps)-1))
		taps[i] = v
		sum += v
	}
	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

func clampInt16(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
