// SPDX-License-Identifier: EPL-2.0

package mixer

// ChannelState is what presentation needs to draw one track.
type ChannelState struct {
	ID     string
	Mode   Mode
	Volume float64 // individual volume, before the master volume
}

// State is a point-in-time copy of the controller.
type State struct {
	Master       Mode
	MasterVolume float64
	// Active lists selected channels in the order they were started.
	// It stays populated while the master is paused.
	Active []string
}

func (c *Controller) State() State {
	active := make([]string, len(c.active))
	for i, s := range c.active {
		active[i] = s.ch.ID()
	}

	return State{
		Master:       c.master,
		MasterVolume: c.masterVolume,
		Active:       active,
	}
}

// Channel reports the state of id. Channels never touched report the
// defaults: stopped at full volume.
func (c *Controller) Channel(id string) ChannelState {
	s, ok := c.slots[id]
	if !ok {
		return ChannelState{ID: id, Mode: Stopped, Volume: 1.0}
	}

	return ChannelState{ID: id, Mode: s.ch.Mode(), Volume: s.volume}
}

// Consistent reports whether the master mode agrees with the channels:
// the master is playing exactly when some selected channel is playing,
// and only selected channels play.
func (c *Controller) Consistent() bool {
	anyPlaying := false
	for _, s := range c.slots {
		if !s.ch.Playing() {
			continue
		}
		if !c.selected(s) {
			return false
		}
		anyPlaying = true
	}

	return (c.master == Playing) == anyPlaying
}
