package audio

import (
	"sync"
)

// Recorder accumulates a stream into memory until it is stopped or aborted.
// Stopping finalizes a Clip; aborting discards the audio. Either way the
// stream is closed, which releases the microphone.
type Recorder struct {
	stream Stream
	dir    string

	mu      sync.Mutex
	samples []int16
	active  bool

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// Record starts draining stream in the background. Clips are written to dir.
func Record(stream Stream, dir string) *Recorder {
	r := &Recorder{
		stream:  stream,
		dir:     dir,
		samples: make([]int16, 0, stream.SampleRate()*10),
		active:  true,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Recorder) loop() {
	defer close(r.done)
	chunks := r.stream.Chunks()
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				return
			}
			r.append(chunk)
		case <-r.quit:
			// Keep what is already buffered.
			for {
				select {
				case chunk, ok := <-chunks:
					if !ok {
						return
					}
					r.append(chunk)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) append(chunk []int16) {
	r.mu.Lock()
	r.samples = append(r.samples, chunk...)
	r.mu.Unlock()
}

// Active reports whether the recorder has been neither stopped nor aborted.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Done is closed once the capture loop has exited.
func (r *Recorder) Done() <-chan struct{} { return r.done }

func (r *Recorder) halt() bool {
	first := false
	r.once.Do(func() {
		first = true
		r.mu.Lock()
		r.active = false
		r.mu.Unlock()
		close(r.quit)
		<-r.done
		r.stream.Close()
	})
	return first
}

// Stop ends capture, releases the stream and writes the recording to a new
// Clip. Short recordings are padded with silence. Only the first call of Stop
// or Abort has an effect; later calls return (nil, nil).
func (r *Recorder) Stop() (*Clip, error) {
	if !r.halt() {
		return nil, nil
	}
	r.mu.Lock()
	samples := Pad(r.samples, MinSamples)
	r.samples = nil
	r.mu.Unlock()
	return NewClip(r.dir, samples, r.stream.SampleRate())
}

// Abort ends capture and releases the stream without producing a clip.
func (r *Recorder) Abort() {
	if r.halt() {
		r.mu.Lock()
		r.samples = nil
		r.mu.Unlock()
	}
}
