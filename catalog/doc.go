// SPDX-License-Identifier: EPL-2.0

// Package catalog holds the fixed set of clips the mixer can play.
//
// A Catalog is filled once at startup, usually from a directory of audio
// files, and is read-only afterwards:
//
//	cat := catalog.New()
//	n, err := cat.LoadDir("res/audio", []string{".wav", ".ogg"})
//	clip, err := cat.Lookup("rain.wav")
//
// Clips keep their encoded bytes. The playback engine decodes a clip the
// first time it is opened.
package catalog
