// SPDX-License-Identifier: EPL-2.0

// Package mixer is the playback and mixing controller.
//
// A Channel wraps one engine handle for one clip and converts its volume
// to decibels with a linear ramp from LowVolumeDB to 0 dB. The Controller
// keeps one channel per catalogue entry, the ordered set of selected
// channels, the master play state and the master volume, and applies
// individual × master volume to every selected channel.
//
// Intents:
//
//	ctl.ToggleChannel("rain.wav")
//	ctl.ToggleMaster()
//	ctl.SetChannelVolume("rain.wav", 0.4)
//	ctl.SetMasterVolume(0.8)
//
// Mode changes are pushed to a Notifier as they happen so a front end can
// mirror them without polling.
//
// Build with the retroraindebug tag to panic when a channel is played
// without a clip; release builds ignore the call.
package mixer
