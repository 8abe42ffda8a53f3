// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aCallin/retro-rain/catalog"
)

// Catalog resolves clip identifiers.
type Catalog interface {
	Lookup(id string) (catalog.Clip, error)
}

// slot is the controller's view of one selectable track: its channel and
// the volume the user set for it.
type slot struct {
	ch     *Channel
	volume float64
}

// Controller owns the active set, the master play state and the master
// volume, and turns user intents into channel operations.
//
// A Controller is not safe for concurrent use. Intents are expected to
// arrive one at a time from a single control goroutine; each one runs to
// completion, notifications included, before it returns.
type Controller struct {
	clips    Catalog
	engine   Engine
	notifier Notifier
	logger   *slog.Logger

	slots        map[string]*slot
	active       []*slot // in the order the user started them
	master       Mode
	masterVolume float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the receiver of mode changes.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the logger shared by the controller and its channels.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController returns a controller with the master stopped at full
// volume and nothing selected.
func NewController(clips Catalog, engine Engine, opts ...Option) *Controller {
	c := &Controller{
		clips:        clips,
		engine:       engine,
		notifier:     NotifierFuncs{},
		logger:       slog.New(slog.DiscardHandler),
		slots:        make(map[string]*slot),
		master:       Stopped,
		masterVolume: 1.0,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// slot returns the slot for id, creating it on first use.
func (c *Controller) slot(id string) *slot {
	s, ok := c.slots[id]
	if !ok {
		s = &slot{ch: NewChannel(id, c.engine, c.logger), volume: 1.0}
		c.slots[id] = s
	}
	return s
}

// ToggleChannel starts the channel for id if it is stopped, or stops it
// if it is playing.
//
// When the master is stopped while channels are still selected (after a
// master pause), those selections are dropped first, so the toggled
// channel starts a new selection of its own.
func (c *Controller) ToggleChannel(id string) error {
	clip, err := c.clips.Lookup(id)
	if err != nil {
		return err
	}
	s := c.slot(id)

	if c.master == Stopped && len(c.active) > 0 {
		c.logger.Debug("dropping paused selection", "channels", len(c.active))
		for _, a := range c.active {
			a.ch.Reset()
		}
		c.active = nil
	}

	if s.ch.Playing() {
		s.ch.Reset()
		c.deactivate(s)
		c.notifier.ChannelModeChanged(id, Stopped)

		if len(c.active) == 0 {
			c.setMaster(Stopped)
		}
		return nil
	}

	if err := c.start(s, clip); err != nil {
		return err
	}
	c.active = append(c.active, s)
	c.notifier.ChannelModeChanged(id, Playing)

	if c.master == Stopped {
		c.setMaster(Playing)
	}

	return nil
}

// ToggleMaster pauses every selected channel, or restarts them all from
// the beginning when the master is stopped. Selections survive a pause.
// It does nothing when no channel is selected.
//
// Channels that fail to restart are dropped from the selection and their
// errors are joined into the result.
func (c *Controller) ToggleMaster() error {
	if len(c.active) == 0 {
		return nil
	}
	selection := slices.Clone(c.active)

	if c.master == Playing {
		for _, s := range selection {
			s.ch.Stop()
			c.notifier.ChannelModeChanged(s.ch.ID(), Stopped)
		}
		c.setMaster(Stopped)
		return nil
	}

	var errs []error
	for _, s := range selection {
		clip, err := c.clips.Lookup(s.ch.ID())
		if err == nil {
			err = c.start(s, clip)
		}
		if err != nil {
			c.logger.Warn("resuming channel", "channel", s.ch.ID(), "error", err)
			c.deactivate(s)
			errs = append(errs, err)
			continue
		}
		c.notifier.ChannelModeChanged(s.ch.ID(), Playing)
	}
	if len(c.active) > 0 {
		c.setMaster(Playing)
	}

	return errors.Join(errs...)
}

// SetChannelVolume stores the individual volume of id and, if the channel
// is selected, applies volume × master volume to it.
func (c *Controller) SetChannelVolume(id string, volume float64) error {
	if err := checkVolume(volume); err != nil {
		return err
	}
	if _, err := c.clips.Lookup(id); err != nil {
		return err
	}

	s := c.slot(id)
	s.volume = volume
	if c.selected(s) {
		c.applyVolume(s)
	}

	return nil
}

// SetMasterVolume stores the master volume and reapplies the effective
// volume of every selected channel.
func (c *Controller) SetMasterVolume(volume float64) error {
	if err := checkVolume(volume); err != nil {
		return err
	}

	c.masterVolume = volume
	for _, s := range c.active {
		c.applyVolume(s)
	}

	return nil
}

// start assigns clip to the slot's channel and loops it forever at the
// effective volume. On failure the channel is left reset.
func (c *Controller) start(s *slot, clip catalog.Clip) error {
	s.ch.Assign(clip)
	c.applyVolume(s)

	if err := s.ch.Play(LoopForever); err != nil {
		s.ch.Reset()
		return fmt.Errorf("channel %s: %w", s.ch.ID(), err)
	}

	return nil
}

func (c *Controller) applyVolume(s *slot) {
	// both factors are validated, so the product is in range
	if err := s.ch.SetVolume(s.volume * c.masterVolume); err != nil {
		c.logger.Error("applying volume", "channel", s.ch.ID(), "error", err)
	}
}

func (c *Controller) setMaster(m Mode) {
	if c.master == m {
		return
	}
	c.master = m
	c.notifier.MasterModeChanged(m)
}

func (c *Controller) selected(s *slot) bool {
	return slices.Contains(c.active, s)
}

func (c *Controller) deactivate(s *slot) {
	c.active = slices.DeleteFunc(c.active, func(a *slot) bool { return a == s })
}
