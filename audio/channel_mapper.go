// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper converts a source to a fixed output channel count.
//
// When the source has more channels than the output, every output channel
// is the average of the source channels congruent to it modulo the output
// count (stereo to mono averages left and right). When it has fewer, the
// source channels are repeated (mono to stereo duplicates the signal).
type ChannelMapper struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMapper(src Source, channels int) (*ChannelMapper, error) {
	if channels <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidChannels
	}

	return &ChannelMapper{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}, nil
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMapper) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mapped source: %w", err)
	}

	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	frames = n / in
	if frames == 0 {
		return 0, err
	}

	for f := range frames {
		frame := m.tmp[f*in : f*in+in]
		out := dst[f*m.channels : f*m.channels+m.channels]

		if in < m.channels {
			for c := range out {
				out[c] = frame[c%in]
			}
			continue
		}

		for c := range out {
			var sum float32
			var count int
			for i := c; i < in; i += m.channels {
				sum += frame[i]
				count++
			}
			out[c] = sum / float32(count)
		}
	}

	return frames * m.channels, err
}
