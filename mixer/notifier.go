// SPDX-License-Identifier: EPL-2.0

package mixer

// Notifier receives mode changes synchronously, before the intent that
// caused them returns.
type Notifier interface {
	ChannelModeChanged(id string, mode Mode)
	MasterModeChanged(mode Mode)
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are
// skipped.
type NotifierFuncs struct {
	Channel func(id string, mode Mode)
	Master  func(mode Mode)
}

func (n NotifierFuncs) ChannelModeChanged(id string, mode Mode) {
	if n.Channel != nil {
		n.Channel(id, mode)
	}
}

func (n NotifierFuncs) MasterModeChanged(mode Mode) {
	if n.Master != nil {
		n.Master(mode)
	}
}
