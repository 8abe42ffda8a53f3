// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aCallin/retro-rain/catalog"
)

// Channel plays one clip through one engine handle.
//
// The handle is set exactly while the channel is playing. The volume is
// kept across plays and applied whenever a handle is opened.
type Channel struct {
	id     string
	engine Engine
	logger *slog.Logger

	clip   *catalog.Clip
	handle uuid.UUID
	volume float64
}

// NewChannel returns a stopped channel at full volume with no clip. A nil
// logger discards output.
func NewChannel(id string, engine Engine, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Channel{
		id:     id,
		engine: engine,
		logger: logger.With("channel", id),
		volume: 1.0,
	}
}

func (c *Channel) ID() string        { return c.id }
func (c *Channel) Volume() float64   { return c.volume }
func (c *Channel) Playing() bool     { return c.handle != uuid.Nil }
func (c *Channel) Handle() uuid.UUID { return c.handle }

func (c *Channel) Mode() Mode {
	if c.Playing() {
		return Playing
	}
	return Stopped
}

// Clip returns the assigned clip, if any.
func (c *Channel) Clip() (catalog.Clip, bool) {
	if c.clip == nil {
		return catalog.Clip{}, false
	}
	return *c.clip, true
}

// Assign stops whatever is playing and sets the clip for the next Play.
func (c *Channel) Assign(clip catalog.Clip) {
	c.Stop()
	c.clip = &clip
}

// Play opens the assigned clip, applies the channel volume and loops it
// loopCount times (LoopForever for no limit). It does nothing when the
// channel is already playing or loopCount is negative.
//
// On error the channel stays stopped with no handle.
func (c *Channel) Play(loopCount int) error {
	if c.clip == nil {
		if strictContracts {
			panic(fmt.Sprintf("mixer: Play on channel %q with no clip assigned", c.id))
		}
		return nil
	}
	if loopCount < 0 || c.Playing() {
		return nil
	}

	h, err := c.engine.Open(*c.clip)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.clip.ID, err)
	}
	c.handle = h
	c.applyGain()

	if err := c.engine.Loop(h, loopCount); err != nil {
		c.release()
		return fmt.Errorf("starting %s: %w", c.clip.ID, err)
	}

	c.logger.Debug("channel playing", "clip", c.clip.ID, "handle", h, "loops", loopCount)

	return nil
}

// Stop halts playback and releases the engine handle. Stopping a stopped
// channel does nothing.
func (c *Channel) Stop() {
	if !c.Playing() {
		return
	}

	if err := c.engine.Stop(c.handle); err != nil {
		c.logger.Warn("stopping clip", "handle", c.handle, "error", err)
	}
	c.release()
}

// Reset stops the channel and forgets its clip. The volume is kept.
func (c *Channel) Reset() {
	c.Stop()
	c.clip = nil
}

// SetVolume stores v and applies it at once when a handle is open.
func (c *Channel) SetVolume(v float64) error {
	if err := checkVolume(v); err != nil {
		return err
	}

	c.volume = v
	if c.Playing() {
		c.applyGain()
	}

	return nil
}

func (c *Channel) applyGain() {
	db := GainDB(c.volume, c.engine.MinGain())
	if err := c.engine.SetGain(c.handle, db); err != nil {
		// not fatal: playback continues at the previous level
		c.logger.Warn("setting gain", "handle", c.handle, "db", db, "error", err)
	}
}

func (c *Channel) release() {
	if err := c.engine.Close(c.handle); err != nil {
		c.logger.Warn("closing clip", "handle", c.handle, "error", err)
	}
	c.handle = uuid.Nil
}
