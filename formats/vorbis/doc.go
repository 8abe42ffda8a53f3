// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis clips with
// github.com/jfreymuth/oggvorbis. Samples come out as interleaved
// float32 at the stream's own rate and channel count.
package vorbis
