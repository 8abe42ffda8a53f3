// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"

	"github.com/aCallin/retro-rain/mixer"
)

var (
	ErrShutdown = fmt.Errorf("%w: engine shut down", mixer.ErrEngineUnavailable)

	ErrInvalidLayout = fmt.Errorf("%w: sample rate and channel count must be positive", mixer.ErrInvalidArgument)
)
