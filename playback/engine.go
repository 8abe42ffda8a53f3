// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	retrorain "github.com/aCallin/retro-rain"
	"github.com/aCallin/retro-rain/audio"
	"github.com/aCallin/retro-rain/catalog"
	"github.com/aCallin/retro-rain/mixer"
	"github.com/aCallin/retro-rain/utils"
)

// MinGain is the quietest gain the engine distinguishes from silence.
const MinGain = -80.0

const defaultDecodeBuffer = 4096

var (
	_ mixer.Engine = (*Engine)(nil)
	_ io.Reader    = (*Engine)(nil)
)

type voice struct {
	clip    string
	pcm     []float32 // shared with the decode cache, never written
	pos     int
	amp     float32
	forever bool
	plays   int // plays left when not forever
	playing bool
}

// advance moves to the next sample and reports whether the voice is
// still sounding.
func (v *voice) advance() bool {
	v.pos++
	if v.pos < len(v.pcm) {
		return true
	}

	v.pos = 0
	if v.forever {
		return true
	}
	v.plays--
	if v.plays <= 0 {
		v.playing = false
	}
	return v.playing
}

// Engine implements mixer.Engine by mixing decoded clips in memory.
type Engine struct {
	reg      *audio.Registry
	rate     int
	channels int
	chunk    int
	logger   *slog.Logger

	mtx     sync.Mutex
	voices  map[uuid.UUID]*voice
	decoded map[string][]float32
	scratch []float32
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDecodeBuffer sets the read chunk, in samples, used while decoding
// clips.
func WithDecodeBuffer(samples int) Option {
	return func(e *Engine) {
		if samples > 0 {
			e.chunk = samples
		}
	}
}

// NewEngine returns an engine that mixes at sampleRate and channels.
func NewEngine(reg *audio.Registry, sampleRate, channels int, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: rate %d, channels %d", ErrInvalidLayout, sampleRate, channels)
	}

	e := &Engine{
		reg:      reg,
		rate:     sampleRate,
		channels: channels,
		chunk:    defaultDecodeBuffer,
		logger:   slog.New(slog.DiscardHandler),
		voices:   make(map[uuid.UUID]*voice),
		decoded:  make(map[string][]float32),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

func (e *Engine) SampleRate() int  { return e.rate }
func (e *Engine) Channels() int    { return e.channels }
func (e *Engine) MinGain() float64 { return MinGain }

// Open decodes clip, or reuses an earlier decode of the same clip ID, and
// returns a handle to a new, silent voice. A clip without a Format is
// decoded by the extension of its ID.
func (e *Engine) Open(clip catalog.Clip) (uuid.UUID, error) {
	e.mtx.Lock()
	closed := e.closed
	pcm, cached := e.decoded[clip.ID]
	e.mtx.Unlock()

	if closed {
		return uuid.Nil, ErrShutdown
	}

	if !cached {
		var err error
		if pcm, err = e.decode(clip); err != nil {
			return uuid.Nil, err
		}
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return uuid.Nil, ErrShutdown
	}
	e.decoded[clip.ID] = pcm

	h := uuid.New()
	e.voices[h] = &voice{clip: clip.ID, pcm: pcm, amp: 1}
	e.logger.Debug("voice opened", "clip", clip.ID, "handle", h, "frames", len(pcm)/e.channels)

	return h, nil
}

func (e *Engine) decode(clip catalog.Clip) ([]float32, error) {
	var (
		dec audio.Decoder
		ok  bool
	)
	if clip.Format != "" {
		dec, ok = e.reg.Get(clip.Format)
	} else {
		// in-memory clips may name their format only through the ID
		dec, _, ok = e.reg.ForPath(clip.ID)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q (clip %s)", mixer.ErrUnsupportedFormat, clip.Format, clip.ID)
	}

	src, err := dec.Decode(bytes.NewReader(clip.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mixer.ErrUnsupportedFormat, clip.ID, err)
	}

	pcm, err := retrorain.DecodeAll(src, e.rate, e.channels, e.chunk)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mixer.ErrUnsupportedFormat, clip.ID, err)
	}

	return pcm, nil
}

func (e *Engine) lookup(h uuid.UUID) (*voice, error) {
	v, ok := e.voices[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", mixer.ErrUnknownHandle, h)
	}
	return v, nil
}

// Loop plays the voice from its first frame, count times in total or
// without end for mixer.LoopForever.
func (e *Engine) Loop(h uuid.UUID, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: loop count %d", mixer.ErrInvalidArgument, count)
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	v, err := e.lookup(h)
	if err != nil {
		return err
	}
	v.pos = 0
	v.forever = count == mixer.LoopForever
	v.plays = count
	v.playing = len(v.pcm) > 0

	return nil
}

func (e *Engine) Stop(h uuid.UUID) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	v, err := e.lookup(h)
	if err != nil {
		return err
	}
	v.playing = false

	return nil
}

func (e *Engine) Close(h uuid.UUID) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if _, err := e.lookup(h); err != nil {
		return err
	}
	delete(e.voices, h)

	return nil
}

// SetGain sets the voice level in decibels. Gains at or below MinGain
// silence the voice.
func (e *Engine) SetGain(h uuid.UUID, db float64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	v, err := e.lookup(h)
	if err != nil {
		return err
	}

	if db <= MinGain {
		v.amp = 0
	} else {
		v.amp = float32(utils.DecibelsToAmplitude(db))
	}

	return nil
}

// Sounding reports how many voices are currently playing.
func (e *Engine) Sounding() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	n := 0
	for _, v := range e.voices {
		if v.playing {
			n++
		}
	}
	return n
}

// Mix overwrites dst with the sum of every sounding voice. len(dst)
// should be a whole number of frames.
func (e *Engine) Mix(dst []float32) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.mix(dst)
}

func (e *Engine) mix(dst []float32) {
	clear(dst)

	for _, v := range e.voices {
		if !v.playing {
			continue
		}
		for i := range dst {
			dst[i] += v.pcm[v.pos] * v.amp
			if !v.advance() {
				break
			}
		}
	}
}

// Read renders whole frames of the mix as signed 16-bit little-endian
// PCM. It returns io.EOF once the engine is shut down.
func (e *Engine) Read(p []byte) (int, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return 0, io.EOF
	}

	n := len(p) / 2
	n -= n % e.channels
	if n == 0 {
		return 0, io.ErrShortBuffer
	}

	if cap(e.scratch) < n {
		e.scratch = make([]float32, n)
	}
	buf := e.scratch[:n]
	e.mix(buf)

	return utils.PutInt16LE(p, buf), nil
}

// Shutdown releases every voice and the decode cache. Open fails and Read
// reports io.EOF afterwards; it is safe to call more than once.
func (e *Engine) Shutdown() {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	clear(e.voices)
	clear(e.decoded)
	e.logger.Debug("engine shut down")
}
