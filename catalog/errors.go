// SPDX-License-Identifier: EPL-2.0

package catalog

import "errors"

var (
	ErrUnknownClip   = errors.New("unknown clip")
	ErrDuplicateClip = errors.New("duplicate clip id")
	ErrEmptyID       = errors.New("clip id must not be empty")
)
