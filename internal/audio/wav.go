// Package audio normalizes uploaded audio into the PCM form the
// recognition engine requires: mono, 16-bit signed, 16 kHz.
package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// WAV is a parsed RIFF/WAVE file.
type WAV struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	data          []byte
}

// ParseWAV walks the RIFF chunk list and extracts the format and data
// chunks. Chunks other than fmt/data (LIST metadata and the like) are
// skipped.
func ParseWAV(raw []byte) (*WAV, error) {
	if len(raw) < 12 {
		return nil, fmt.Errorf("wav data too short: %d bytes", len(raw))
	}
	if string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	w := &WAV{}
	sawFmt := false
	pos := 12
	for pos+8 <= len(raw) {
		chunkID := string(raw[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		body := pos + 8
		if body+chunkSize > len(raw) {
			chunkSize = len(raw) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
			}
			if format := binary.LittleEndian.Uint16(raw[body : body+2]); format != 1 {
				return nil, fmt.Errorf("unsupported audio format %d (only PCM is supported)", format)
			}
			w.Channels = int(binary.LittleEndian.Uint16(raw[body+2 : body+4]))
			w.SampleRate = int(binary.LittleEndian.Uint32(raw[body+4 : body+8]))
			w.BitsPerSample = int(binary.LittleEndian.Uint16(raw[body+14 : body+16]))
			sawFmt = true
		case "data":
			w.data = raw[body : body+chunkSize]
		}

		// Chunks are word-aligned.
		pos = body + chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}

	if !sawFmt {
		return nil, fmt.Errorf("missing fmt chunk")
	}
	if w.data == nil {
		return nil, fmt.Errorf("missing data chunk")
	}
	return w, nil
}

// Data returns the raw PCM sample bytes.
func (w *WAV) Data() []byte { return w.data }

// IsPCM16Mono reports whether the file meets the recognition engine's
// channel and bit-depth contract.
func (w *WAV) IsPCM16Mono() bool {
	return w.Channels == 1 && w.BitsPerSample == 16
}

// Duration computes playback length from the sample count.
func (w *WAV) Duration() time.Duration {
	if w.SampleRate == 0 || w.Channels == 0 || w.BitsPerSample == 0 {
		return 0
	}
	bytesPerSecond := w.SampleRate * w.Channels * w.BitsPerSample / 8
	return time.Duration(float64(len(w.data)) / float64(bytesPerSecond) * float64(time.Second))
}

// EncodeWAV wraps PCM-16 mono samples in a 44-byte WAV header. Used by
// tests and tooling to fabricate recognizer input.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[44+i*2:], uint16(s))
	}
	return buf
}
