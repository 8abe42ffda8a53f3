// SPDX-License-Identifier: EPL-2.0

package retrorain

import (
	"errors"
	"fmt"
	"io"

	"github.com/aCallin/retro-rain/audio"
	"github.com/aCallin/retro-rain/formats/aiff"
	"github.com/aCallin/retro-rain/formats/mp3"
	"github.com/aCallin/retro-rain/formats/vorbis"
	"github.com/aCallin/retro-rain/formats/wav"
)

// NewRegistry returns a registry with every clip format retro-rain can
// decode, keyed by file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// DecodeAll drains src into interleaved float32 PCM at rate and channels.
//
// The pipeline is:
//  1. resample to rate with cubic interpolation (skipped when rates match)
//  2. map the channel count (average down, duplicate up)
//  3. collect every sample until io.EOF
//
// bufferSize is the read chunk in samples and is rounded down to a whole
// number of frames. src is closed when DecodeAll returns.
func DecodeAll(src audio.Source, rate, channels, bufferSize int) (pcm []float32, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing source: %w", cerr)
		}
	}()

	if rate <= 0 {
		return nil, ErrInvalidRate
	}
	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidSource, src.SampleRate(), src.Channels())
	}

	var stage audio.Source = src
	if src.SampleRate() != rate {
		stage = audio.NewResampler(stage, rate)
	}
	mapped, err := audio.NewChannelMapper(stage, channels)
	if err != nil {
		return nil, fmt.Errorf("mapping channels: %w", err)
	}

	bufferSize -= bufferSize % channels
	if bufferSize <= 0 {
		bufferSize = 1024 * channels
	}
	buf := make([]float32, bufferSize)

	for {
		n, err := mapped.ReadSamples(buf)
		pcm = append(pcm, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding clip: %w", err)
		}
	}

	// a trailing partial frame cannot be played
	return pcm[:len(pcm)-len(pcm)%channels], nil
}
