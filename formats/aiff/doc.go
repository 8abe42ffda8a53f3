// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF clips with github.com/go-audio/aiff.
//
// Integer PCM of 8 to 32 bits is normalised to float32 in [-1, 1]:
//
//	src, err := aiff.Decoder{}.Decode(file)
package aiff
