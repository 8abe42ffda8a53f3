// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"

	"github.com/aCallin/retro-rain/catalog"
)

var (
	// ErrInvalidArgument is returned for volumes outside [0, 1]. State is
	// left unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEngineUnavailable and ErrUnsupportedFormat are returned by
	// Engine.Open when a clip cannot be opened.
	ErrEngineUnavailable = errors.New("audio engine unavailable")
	ErrUnsupportedFormat = errors.New("unsupported clip format")

	// ErrUnknownHandle is returned by engines for handles they never
	// issued or already closed.
	ErrUnknownHandle = errors.New("unknown engine handle")

	ErrUnknownClip = catalog.ErrUnknownClip
)
