package audio_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tts-batch-api/audio"
)

func pcmFromSamples(samples []int16) []byte {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return data
}

func samplesFromPCM(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return samples
}

func sineWave(freq float64, rate, n int, amplitude float64) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return samples
}

func TestResampleIdentity(t *testing.T) {
	input := pcmFromSamples(sineWave(440, 16000, 1600, 10000))

	output, err := audio.Resample(input, 16000, 16000)

	require.NoError(t, err)
	assert.Equal(t, input, output)
}

func TestResampleRejectsInvalidRates(t *testing.T) {
	input := pcmFromSamples([]int16{1, 2, 3, 4})

	_, err := audio.Resample(input, 0, 16000)
	require.ErrorIs(t, err, audio.ErrInvalidRate)

	_, err = audio.Resample(input, 22050, -1)
	require.ErrorIs(t, err, audio.ErrInvalidRate)
}

func TestResampleRejectsOddByteLength(t *testing.T) {
	_, err := audio.Resample([]byte{0x01, 0x02, 0x03}, 22050, 16000)

	require.ErrorIs(t, err, audio.ErrInvalidAudio)
}

func TestResampleEmptyInput(t *testing.T) {
	output, err := audio.Resample([]byte{}, 22050, 16000)

	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestResampleOutputLength(t *testing.T) {
	cases := []struct {
		name       string
		sourceRate int
		targetRate int
		samples    int
	}{
		{name: "downsample 22050 to 16000", sourceRate: 22050, targetRate: 16000, samples: 2205},
		{name: "upsample 16000 to 48000", sourceRate: 16000, targetRate: 48000, samples: 1600},
		{name: "downsample 48000 to 16000", sourceRate: 48000, targetRate: 16000, samples: 4800},
		{name: "upsample 22050 to 44100", sourceRate: 22050, targetRate: 44100, samples: 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := pcmFromSamples(sineWave(300, tc.sourceRate, tc.samples, 8000))

			output, err := audio.Resample(input, tc.sourceRate, tc.targetRate)
			require.NoError(t, err)

			g := gcd(tc.sourceRate, tc.targetRate)
			up := tc.targetRate / g
			down := tc.sourceRate / g
			wantSamples := (tc.samples*up + down - 1) / down

			assert.Equal(t, 2*wantSamples, len(output))
		})
	}
}

func TestResampleDeterministic(t *testing.T) {
	input := pcmFromSamples(sineWave(523, 22050, 4410, 12000))

	first, err := audio.Resample(input, 22050, 16000)
	require.NoError(t, err)

	second, err := audio.Resample(input, 22050, 16000)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResamplePreservesDCLevel(t *testing.T) {
	const level = 1000
	samples := make([]int16, 2000)
	for i := range samples {
		samples[i] = level
	}

	output, err := audio.Resample(pcmFromSamples(samples), 22050, 16000)
	require.NoError(t, err)

	resampled := samplesFromPCM(output)
	require.Greater(t, len(resampled), 100)

	// Skip the filter transient at both ends.
	for _, s := range resampled[50 : len(resampled)-50] {
		assert.InDelta(t, level, s, 20)
	}
}

func TestResamplePreservesToneAmplitude(t *testing.T) {
	const amplitude = 10000
	input := pcmFromSamples(sineWave(440, 16000, 8000, amplitude))

	output, err := audio.Resample(input, 16000, 48000)
	require.NoError(t, err)

	resampled := samplesFromPCM(output)

	var peak int16
	for _, s := range resampled[100 : len(resampled)-100] {
		if s > peak {
			peak = s
		}
	}

	// A 440 Hz tone sits far below the cutoff; the filter should pass it
	// essentially unchanged.
	assert.InDelta(t, amplitude, peak, amplitude/10)
}

func TestResampleAttenuatesAliasingContent(t *testing.T) {
	// 10 kHz is above the 8 kHz Nyquist of the 16000 Hz target. Without the
	// anti-aliasing filter it would fold back at full amplitude.
	const amplitude = 10000
	input := pcmFromSamples(sineWave(10000, 22050, 4410, amplitude))

	output, err := audio.Resample(input, 22050, 16000)
	require.NoError(t, err)

	resampled := samplesFromPCM(output)

	var peak float64
	for _, s := range resampled[50 : len(resampled)-50] {
		if v := math.Abs(float64(s)); v > peak {
			peak = v
		}
	}

	assert.Less(t, peak, float64(amplitude)/4)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
