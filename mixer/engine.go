// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/google/uuid"

	"github.com/aCallin/retro-rain/catalog"
)

// LoopForever asks Engine.Loop and Channel.Play to repeat a clip until it
// is stopped.
const LoopForever = 0

// Engine is the audio engine a Channel drives. Each handle returned by
// Open belongs to exactly one channel.
//
// Loop, Stop and Close are commands: the engine applies them on its own
// schedule and nothing waits for completion.
type Engine interface {
	// Open prepares clip for playback. Errors match ErrEngineUnavailable
	// or ErrUnsupportedFormat.
	Open(clip catalog.Clip) (uuid.UUID, error)
	// Loop starts playback from the beginning, count times in total, or
	// until stopped when count is LoopForever.
	Loop(h uuid.UUID, count int) error
	Stop(h uuid.UUID) error
	// Close releases h; the handle is invalid afterwards.
	Close(h uuid.UUID) error
	// SetGain sets the output gain of h in decibels.
	SetGain(h uuid.UUID, db float64) error
	// MinGain is the lowest gain the engine represents, used as silence.
	MinGain() float64
}
