package playback

import (
	"sync"

	"layeh.com/gopus"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

// hasEncryption mirrors the voice transport's NaCl secretbox support.
// discordgo compiles it in unconditionally; the variable keeps the
// capability guard a real probe instead of a constant.
var hasEncryption = true

var (
	opusOnce sync.Once
	opusErr  error
)

// loadOpus attempts the default Opus encoder load once and caches the result.
func loadOpus() error {
	opusOnce.Do(func() {
		_, opusErr = gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	})
	return opusErr
}
