package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const cacheKeyNamespace = "tts:"

// BuildCacheKey derives the store key for a synthesis result. The effective
// model name and target rate are part of the hashed material: hashing only the
// text would let a hit return audio at the wrong rate or in the wrong voice.
// Keys are fixed length regardless of text size.
func BuildCacheKey(effectiveModel string, targetSampleRate int, text string) string {
	content := fmt.Sprintf("%s:%d:%s", effectiveModel, targetSampleRate, text)
	digest := sha256.Sum256([]byte(content))
	return cacheKeyNamespace + hex.EncodeToString(digest[:])
}
