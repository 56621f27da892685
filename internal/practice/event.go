package practice

import "github.com/speakup-edu/speakup/internal/audio"

type eventKind int

const (
	kindAcquired   eventKind = iota // Microphone opened or failed
	kindRecognized                  // Final transcript available
	kindFailed                      // Recognition error
	kindEnded                       // Recognition finished, successfully or not
	kindRecorded                    // Recorder stopped and clip written
)

// Event is a background result for one practice attempt.
type Event struct {
	attempt    int
	kind       eventKind
	stream     audio.Stream
	transcript string
	clip       *audio.Clip
	err        error
}
