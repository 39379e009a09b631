// Package audio converts raw 16-bit PCM buffers between sample rates using
// polyphase rational resampling with a built-in anti-aliasing low-pass filter.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidRate  = errors.New("invalid sample rate")
	ErrInvalidAudio = errors.New("invalid audio buffer")
)

const (
	// Kaiser window shape parameter for the anti-aliasing filter.
	kaiserBeta = 5.0
	// Filter half-width in zero crossings per polyphase branch. Larger values
	// sharpen the transition band at the cost of more multiplies per sample.
	halfWidthZeroCrossings = 10
)

// Resample converts little-endian 16-bit signed PCM from sourceRate to
// targetRate. When the rates match the input is returned unchanged. The
// conversion is pure and deterministic: identical inputs always yield
// identical bytes, and the function is safe for concurrent use.
func Resample(data []byte, sourceRate, targetRate int) ([]byte, error) {
	if sourceRate <= 0 || targetRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, sourceRate, targetRate)
	}

	if sourceRate == targetRate {
		return data, nil
	}

	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of 16-bit samples", ErrInvalidAudio, len(data))
	}

	samples := decodePCM16(data)
	if len(samples) == 0 {
		return []byte{}, nil
	}

	g := gcd(sourceRate, targetRate)
	up := targetRate / g
	down := sourceRate / g

	filter := antiAliasFilter(up, down)
	resampled := applyPolyphase(samples, filter, up, down)

	return encodePCM16(resampled), nil
}

// antiAliasFilter designs the windowed-sinc low-pass for an up/down rational
// conversion. The cutoff sits at the Nyquist frequency of the lower of the
// two rates, so downsampling never folds high-frequency content back into
// the audible range. Taps are normalized to unit DC gain, then scaled by the
// upsampling factor to compensate for zero stuffing.
func antiAliasFilter(up, down int) []float64 {
	maxFactor := up
	if down > maxFactor {
		maxFactor = down
	}

	half := halfWidthZeroCrossings * maxFactor
	taps := make([]float64, 2*half+1)
	cutoff := 1.0 / float64(maxFactor)

	var sum float64
	for i := range taps {
		n := float64(i - half)
		taps[i] = sinc(cutoff*n) * cutoff * kaiserWindow(n, float64(half))
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps
}

// applyPolyphase evaluates the filtered, zero-stuffed convolution directly on
// the input samples, skipping the stuffed zeros. Output sample i corresponds
// to position i*down in the upsampled stream, offset by the filter center so
// the result stays time-aligned with the input.
func applyPolyphase(samples []int16, filter []float64, up, down int) []int16 {
	n := len(samples)
	center := (len(filter) - 1) / 2
	outLen := (n*up + down - 1) / down

	out := make([]int16, outLen)
	for i := 0; i < outLen; i++ {
		pos := i*down + center

		mMin := 0
		if lo := pos - (len(filter) - 1); lo > 0 {
			mMin = (lo + up - 1) / up
		}
		mMax := pos / up
		if mMax > n-1 {
			mMax = n - 1
		}

		var acc float64
		for m := mMin; m <= mMax; m++ {
			acc += float64(samples[m]) * filter[pos-m*up]
		}
		out[i] = clampToInt16(math.Round(acc))
	}

	return out
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func kaiserWindow(n, half float64) float64 {
	r := n / half
	if r < -1 || r > 1 {
		return 0
	}
	return besselI0(kaiserBeta*math.Sqrt(1-r*r)) / besselI0(kaiserBeta)
}

// besselI0 is the zeroth-order modified Bessel function of the first kind,
// evaluated by its power series until the terms stop contributing.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	halfX := x / 2
	for k := 1; k < 64; k++ {
		t := halfX / float64(k)
		term *= t * t
		sum += term
		if term < sum*1e-15 {
			break
		}
	}
	return sum
}

func clampToInt16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func decodePCM16(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return samples
}

func encodePCM16(samples []int16) []byte {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return data
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
