package domain

import "time"

type CacheStatus string

const (
	CacheDisabled CacheStatus = "DISABLED"
	CacheMiss     CacheStatus = "MISS"
	CacheHit      CacheStatus = "HIT"
	CacheError    CacheStatus = "ERROR"
)

type ResampleStatus string

const (
	ResampleNone    ResampleStatus = "NONE"
	ResampleApplied ResampleStatus = "APPLIED"
)

// SupportedSampleRates are the target rates a caller may request.
var SupportedSampleRates = []int{16000, 22050, 44100, 48000}

func IsSupportedSampleRate(rate int) bool {
	for _, r := range SupportedSampleRates {
		if r == rate {
			return true
		}
	}
	return false
}

// VoiceModel is one loaded voice: its stable name and the native sample rate
// captured once at load time. The engine handle lives in the registry next to
// the model so request handling never re-reads model configuration.
type VoiceModel struct {
	Name             string
	NativeSampleRate int
}

// SynthesisResult is the outcome of one pipeline run. CacheStatus and
// ResampleStatus are always mutually consistent: a HIT never reports APPLIED,
// because entries are stored already resampled to the rate in their key.
type SynthesisResult struct {
	Audio          []byte
	Model          string
	SampleRate     int
	CacheStatus    CacheStatus
	ResampleStatus ResampleStatus
	SynthesisTime  time.Duration
	ResampleTime   time.Duration
	TotalTime      time.Duration
}
