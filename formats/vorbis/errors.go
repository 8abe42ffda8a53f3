// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotOggVorbisFile is returned when the stream has no Vorbis headers.
var ErrNotOggVorbisFile = errors.New("not an Ogg Vorbis file")
