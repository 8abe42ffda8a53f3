// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/aCallin/retro-rain/utils"
)

// maxEmptyReads bounds consecutive (0, nil) reads from a misbehaving source.
const maxEmptyReads = 100

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation over a four frame window. Channel count is preserved.
// When downsampling, input frames pass through a one-pole low-pass filter.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// window[1] and window[2] bracket the output position; real marks
	// frames that came from src rather than edge padding.
	window [4][]float32
	real   [4]bool
	primed bool
	pos    float64

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	lowpass []float32
	settled bool
	alpha   float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		in:       make([]float32, 1024*max(channels, 1)),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	if ratio > 1.0 {
		r.lowpass = make([]float32, channels)
		r.alpha = 0.5
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampled source: %w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It reports false once
// the source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for empty := 0; r.inLen-r.inPos < r.channels; empty++ {
		if r.srcEOF {
			return false, nil
		}
		if empty > maxEmptyReads {
			return false, io.ErrNoProgress
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("reading source: %w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass != nil {
		if !r.settled {
			// start the filter settled on the first frame
			copy(r.lowpass, dst)
			r.settled = true
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lowpass[c]
			r.lowpass[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextFrame(r.window[1])
	if err != nil || !ok {
		return err
	}
	r.real[1] = true
	copy(r.window[0], r.window[1])

	for i := 2; i < 4; i++ {
		ok, err := r.nextFrame(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}

	return nil
}

func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.real[:], r.real[1:])

	ok, err := r.nextFrame(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.real[3] = ok

	return nil
}

// ReadSamples produces interleaved samples at the target rate. dst length
// must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	// a zero ratio would never advance through the source
	if !(r.ratio > 0) || r.dstRate <= 0 {
		return 0, fmt.Errorf("%w: %d Hz to %d Hz", ErrInvalidRate, r.src.SampleRate(), r.dstRate)
	}
	if r.channels <= 0 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 && r.real[1] {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
