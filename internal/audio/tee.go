package audio

import "sync"

// Tee fans one stream out to n branches. Every branch sees every chunk. A
// branch that is closed stops receiving without stalling the others, and the
// source is closed once every branch has been closed.
func Tee(src Stream, n int) []Stream {
	t := &tee{src: src, open: n}
	branches := make([]*branch, n)
	out := make([]Stream, n)
	for i := range branches {
		b := &branch{
			t:    t,
			ch:   make(chan []int16, 64),
			done: make(chan struct{}),
		}
		branches[i] = b
		out[i] = b
	}
	go t.pump(branches)
	return out
}

type tee struct {
	src Stream

	mu   sync.Mutex
	open int
}

func (t *tee) pump(branches []*branch) {
	defer func() {
		for _, b := range branches {
			close(b.ch)
		}
	}()
	for chunk := range t.src.Chunks() {
		for _, b := range branches {
			select {
			case b.ch <- chunk:
			case <-b.done:
			}
		}
	}
}

func (t *tee) release() error {
	t.mu.Lock()
	t.open--
	last := t.open == 0
	t.mu.Unlock()
	if last {
		return t.src.Close()
	}
	return nil
}

type branch struct {
	t    *tee
	ch   chan []int16
	done chan struct{}
	once sync.Once
}

func (b *branch) Chunks() <-chan []int16 { return b.ch }

func (b *branch) SampleRate() int { return b.t.src.SampleRate() }

func (b *branch) Close() error {
	var err error
	b.once.Do(func() {
		close(b.done)
		err = b.t.release()
	})
	return err
}
