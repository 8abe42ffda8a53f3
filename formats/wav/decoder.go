// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/aCallin/retro-rain/audio"
)

// pcmReader is the part of gowav.Decoder the source needs.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	scale      float32
	offset     int // unsigned 8-bit samples are centred on 128
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
	if err != nil {
		return 0, fmt.Errorf("reading wav samples: %w", err)
	}

	// go-audio may return short reads before the end; only an empty
	// read marks the end of the data chunk
	if n == 0 {
		s.done = true
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.buf.Data[i]-s.offset) / s.scale
	}

	return n, nil
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits, with any
// chunk layout go-audio understands.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	src := &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		buf: &goaudio.IntBuffer{
			Data:   make([]int, 4096),
			Format: dec.Format(),
		},
	}

	switch dec.BitDepth {
	case 8:
		src.scale, src.offset = 128, 128
	case 16:
		src.scale = 1 << 15
	case 24:
		src.scale = 1 << 23
	case 32:
		src.scale = 1 << 31
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	return src, nil
}

const formatPCM = 1
