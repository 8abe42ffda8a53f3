// SPDX-License-Identifier: EPL-2.0

package retrorain

import "errors"

var (
	ErrInvalidRate = errors.New("sample rate must be positive")

	// ErrInvalidSource is returned by DecodeAll for sources that report a
	// non-positive sample rate or channel count.
	ErrInvalidSource = errors.New("source reports an invalid sample rate or channel count")
)
