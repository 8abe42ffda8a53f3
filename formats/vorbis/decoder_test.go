// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// interleaved simulates oggvorbis.Reader.
type interleaved struct {
	samples []float32
}

func (s *interleaved) Read(p []float32) (int, error) {
	if len(s.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.samples)
	s.samples = s.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{{}, []byte("This is not Ogg Vorbis data")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrNotOggVorbisFile) {
			t.Errorf("Decode(%q) error = %v, want ErrNotOggVorbisFile", data, err)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	want := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	src := &source{
		dec:        &interleaved{samples: append([]float32(nil), want...)},
		sampleRate: 48000,
		channels:   2,
	}

	var got []float32
	// odd buffer: the last slot is never filled
	buf := make([]float32, 5)
	for {
		n, err := src.ReadSamples(buf)
		if n%2 != 0 {
			t.Fatalf("ReadSamples() returned a split frame (%d samples)", n)
		}
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}
