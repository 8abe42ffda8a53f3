// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/aCallin/retro-rain/audio"
)

// pcmStream is the part of gomp3.Decoder the source reads from.
type pcmStream interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always produces interleaved stereo int16 little-endian PCM.
const (
	channels       = 2
	bytesPerSample = 2
)

type source struct {
	dec        pcmStream
	sampleRate int
	raw        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) BufSize() int    { return cap(s.raw) / bytesPerSample }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) * bytesPerSample
	if cap(s.raw) < want {
		s.raw = make([]byte, want)
	}
	s.raw = s.raw[:want]

	n, err := io.ReadFull(s.dec, s.raw)
	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.raw[2*i:]))) / 32768.0
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("decoding mp3 frame: %w", err)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		raw:        make([]byte, 8192),
	}, nil
}
