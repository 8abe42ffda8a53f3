// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 clips with github.com/hajimehoshi/go-mp3.
//
// Output is always interleaved stereo at the file's sample rate; the
// playback engine resamples and maps channels to the device format.
package mp3
