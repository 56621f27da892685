// Package audio defines microphone streams, the recording pipeline that turns
// them into playable clips, and the WAV framing shared with speech providers.
package audio

import "context"

const (
	// SampleRate is the capture rate; speech providers expect 16 kHz mono.
	SampleRate = 16000
	// Channels is the capture channel count.
	Channels = 1
	// FramesPerBuffer is the number of samples delivered per chunk.
	FramesPerBuffer = 1024
	// MinSamples pads very short recordings up to 200ms.
	MinSamples = SampleRate / 5
)

// Source opens microphone streams. A nil Source means recording is not
// available in this environment.
type Source interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is an open capture stream. Chunks is closed once the stream stops
// delivering audio, either because Close was called or the device failed.
type Stream interface {
	Chunks() <-chan []int16
	SampleRate() int
	Close() error
}

// Player plays mono 16-bit PCM.
type Player interface {
	Play(ctx context.Context, samples []int16, sampleRate int) error
}
