// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not FORM/AIFF
	ErrNotAiffFile = errors.New("not an AIFF file")

	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
	ErrUnsupportedBitDepth   = errors.New("unsupported AIFF bit depth")
)
