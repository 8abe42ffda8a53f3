// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/aCallin/retro-rain/audio"
)

// floatStream is the part of oggvorbis.Reader the source reads from.
// Read fills p with interleaved samples and returns how many it wrote.
type floatStream interface {
	Read(p []float32) (int, error)
}

type source struct {
	dec        floatStream
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// whole frames only, so callers never see a split frame
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("decoding vorbis packet: %w", err)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbisFile, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
