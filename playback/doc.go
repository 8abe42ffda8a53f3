// SPDX-License-Identifier: EPL-2.0

// Package playback is a software mixing engine for the mixer package.
//
// Clips are decoded in full when first opened and converted to the
// engine's sample rate and channel count. Every open handle is a voice;
// Mix sums the sounding voices at their gain and Read renders the sum as
// 16-bit little-endian PCM for an output device such as otodevice.
//
//	eng, err := playback.NewEngine(retrorain.NewRegistry(), 44100, 2)
//	if err != nil {
//		return err
//	}
//	defer eng.Shutdown()
//
//	ctl := mixer.NewController(cat, eng)
//
// Commands and Read may be called from different goroutines.
package playback
