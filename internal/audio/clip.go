package audio

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Clip is a finished recording stored as a temporary WAV file. It belongs to
// one practice attempt and must be revoked when that attempt is superseded.
type Clip struct {
	path       string
	sampleRate int
	samples    int

	once sync.Once
	err  error
}

// NewClip writes samples to a fresh WAV file under dir ("" means the system
// temp directory).
func NewClip(dir string, samples []int16, sampleRate int) (*Clip, error) {
	f, err := os.CreateTemp(dir, "speakup-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create clip file: %w", err)
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close clip file: %w", err)
	}
	return &Clip{path: f.Name(), sampleRate: sampleRate, samples: len(samples)}, nil
}

// Path returns the WAV file location.
func (c *Clip) Path() string { return c.path }

// Duration returns the length of the recording.
func (c *Clip) Duration() time.Duration {
	if c.sampleRate == 0 {
		return 0
	}
	return time.Duration(c.samples) * time.Second / time.Duration(c.sampleRate)
}

// Samples reads the recording back from disk.
func (c *Clip) Samples() ([]int16, int, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()
	return ReadWAV(f)
}

// Revoke deletes the backing file. Safe to call more than once.
func (c *Clip) Revoke() error {
	c.once.Do(func() {
		if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
			c.err = fmt.Errorf("remove clip: %w", err)
		}
	})
	return c.err
}
