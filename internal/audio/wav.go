package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const wavHeaderSize = 44

// ErrNotWAV is returned when decoding data that is not 16-bit PCM WAV.
var ErrNotWAV = errors.New("not a 16-bit PCM WAV stream")

type wavHeader struct {
	RIFF          [4]byte
	ChunkSize     uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// WriteWAV writes samples as a mono 16-bit PCM WAV stream.
func WriteWAV(w io.Writer, samples []int16, sampleRate int) error {
	dataSize := uint32(len(samples) * 2)
	h := wavHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   Channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * Channels * 2),
		BlockAlign:    Channels * 2,
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}

// EncodeWAV returns samples framed as an in-memory WAV file.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer
	buf.Grow(wavHeaderSize + len(samples)*2)
	// Writes to a bytes.Buffer cannot fail.
	_ = WriteWAV(&buf, samples, sampleRate)
	return buf.Bytes()
}

// ReadWAV decodes a mono 16-bit PCM WAV stream written by WriteWAV.
func ReadWAV(r io.Reader) ([]int16, int, error) {
	var h wavHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, 0, fmt.Errorf("read wav header: %w", err)
	}
	if string(h.RIFF[:]) != "RIFF" || string(h.WAVE[:]) != "WAVE" ||
		h.AudioFormat != 1 || h.BitsPerSample != 16 || string(h.Data[:]) != "data" {
		return nil, 0, ErrNotWAV
	}
	samples := make([]int16, h.DataSize/2)
	if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
		return nil, 0, fmt.Errorf("read wav data: %w", err)
	}
	return samples, int(h.SampleRate), nil
}

// Pad appends silence so the result holds at least n samples.
func Pad(samples []int16, n int) []int16 {
	if len(samples) >= n {
		return samples
	}
	return append(samples, make([]int16, n-len(samples))...)
}
