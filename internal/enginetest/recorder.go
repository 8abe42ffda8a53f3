// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides an in-memory audio engine that records
// every command it receives.
package enginetest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aCallin/retro-rain/catalog"
)

var ErrUnknownHandle = errors.New("enginetest: unknown handle")

// DefaultMinGain mirrors the usual mixer-line minimum.
const DefaultMinGain = -80.0

// Call is one recorded engine command.
type Call struct {
	Op     string // open, loop, stop, close, gain
	Handle uuid.UUID
	Clip   string
	Value  float64 // loop count or gain in dB
}

// Voice is the engine-side state of one handle.
type Voice struct {
	Clip    string
	Gain    float64
	GainSet bool
	Loops   int
	Looping bool
	Closed  bool
}

// Recorder implements mixer.Engine. Failures are injected through the
// exported error fields.
type Recorder struct {
	Min float64

	// OpenErr fails Open for the given clip IDs.
	OpenErr map[string]error
	LoopErr error
	GainErr error
	StopErr error

	calls  []Call
	voices map[uuid.UUID]*Voice
	open   []uuid.UUID
}

func NewRecorder() *Recorder {
	return &Recorder{
		Min:     DefaultMinGain,
		OpenErr: make(map[string]error),
		voices:  make(map[uuid.UUID]*Voice),
	}
}

func (r *Recorder) Open(clip catalog.Clip) (uuid.UUID, error) {
	r.calls = append(r.calls, Call{Op: "open", Clip: clip.ID})
	if err := r.OpenErr[clip.ID]; err != nil {
		return uuid.Nil, err
	}

	h := uuid.New()
	r.voices[h] = &Voice{Clip: clip.ID}
	r.open = append(r.open, h)

	return h, nil
}

func (r *Recorder) voice(h uuid.UUID) (*Voice, error) {
	v, ok := r.voices[h]
	if !ok || v.Closed {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return v, nil
}

func (r *Recorder) Loop(h uuid.UUID, count int) error {
	r.calls = append(r.calls, Call{Op: "loop", Handle: h, Value: float64(count)})
	if r.LoopErr != nil {
		return r.LoopErr
	}

	v, err := r.voice(h)
	if err != nil {
		return err
	}
	v.Looping, v.Loops = true, count

	return nil
}

func (r *Recorder) Stop(h uuid.UUID) error {
	r.calls = append(r.calls, Call{Op: "stop", Handle: h})

	v, err := r.voice(h)
	if err != nil {
		return err
	}
	v.Looping = false

	return r.StopErr
}

func (r *Recorder) Close(h uuid.UUID) error {
	r.calls = append(r.calls, Call{Op: "close", Handle: h})

	v, err := r.voice(h)
	if err != nil {
		return err
	}
	v.Looping, v.Closed = false, true

	for i, o := range r.open {
		if o == h {
			r.open = append(r.open[:i], r.open[i+1:]...)
			break
		}
	}

	return nil
}

func (r *Recorder) SetGain(h uuid.UUID, db float64) error {
	r.calls = append(r.calls, Call{Op: "gain", Handle: h, Value: db})
	if r.GainErr != nil {
		return r.GainErr
	}

	v, err := r.voice(h)
	if err != nil {
		return err
	}
	v.Gain, v.GainSet = db, true

	return nil
}

func (r *Recorder) MinGain() float64 { return r.Min }

// Calls returns every command received so far.
func (r *Recorder) Calls() []Call { return append([]Call(nil), r.calls...) }

// Count returns how many commands named op were received.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Voice returns the state of h, including closed handles.
func (r *Recorder) Voice(h uuid.UUID) (Voice, bool) {
	v, ok := r.voices[h]
	if !ok {
		return Voice{}, false
	}
	return *v, true
}

// OpenHandles lists handles not yet closed, oldest first.
func (r *Recorder) OpenHandles() []uuid.UUID { return append([]uuid.UUID(nil), r.open...) }

// Sounding returns the open, looping voice playing clip.
func (r *Recorder) Sounding(clip string) (Voice, bool) {
	for _, h := range r.open {
		if v := r.voices[h]; v.Clip == clip && v.Looping {
			return *v, true
		}
	}
	return Voice{}, false
}
