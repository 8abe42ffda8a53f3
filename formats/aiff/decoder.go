// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/aCallin/retro-rain/audio"
)

// pcmReader is the part of goaiff.Decoder the source needs.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	scale      float32
	buf        *goaudio.IntBuffer
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return cap(s.buf.Data) }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("reading aiff samples: %w", err)
	}
	if n == 0 {
		s.done = true
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.buf.Data[i]) / s.scale
	}

	return n, nil
}

// Decoder reads big-endian integer PCM AIFF files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	var scale float32
	switch dec.BitDepth {
	case 8:
		scale = 1 << 7
	case 16:
		scale = 1 << 15
	case 24:
		scale = 1 << 23
	case 32:
		scale = 1 << 31
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
		buf: &goaudio.IntBuffer{
			Data:   make([]int, 4096),
			Format: format,
		},
	}, nil
}
