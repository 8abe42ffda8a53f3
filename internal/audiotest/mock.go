// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates frames from a waveform function. It satisfies
// audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame int, channel int) float32
	closed     bool
}

func NewMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSilentSource generates frames of zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSliceSource replays interleaved samples; len(samples) must be a
// multiple of channels.
func NewSliceSource(sampleRate, channels int, samples []float32) *MockSource {
	return NewMockSource(sampleRate, channels, len(samples)/channels, func(frame int, channel int) float32 {
		return samples[frame*channels+channel]
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// FailingSource returns err from every read.
type FailingSource struct {
	sampleRate int
	channels   int
	err        error
}

func NewFailingSource(sampleRate, channels int, err error) *FailingSource {
	return &FailingSource{sampleRate: sampleRate, channels: channels, err: err}
}

func (f *FailingSource) SampleRate() int                  { return f.sampleRate }
func (f *FailingSource) Channels() int                    { return f.channels }
func (f *FailingSource) BufSize() int                     { return 4096 }
func (f *FailingSource) Close() error                     { return nil }
func (f *FailingSource) ReadSamples([]float32) (int, error) { return 0, f.err }
