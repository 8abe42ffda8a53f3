// SPDX-License-Identifier: EPL-2.0

package mixer

import "fmt"

// LowVolumeDB is the gain at the quiet end of the volume ramp.
const LowVolumeDB = -30.0

// GainDB maps a volume in [0, 1] to decibels on a straight line from
// LowVolumeDB (volume just above 0) to 0 dB (volume 1). Volume 0 maps to
// minGain exactly.
func GainDB(volume, minGain float64) float64 {
	if volume == 0 {
		return minGain
	}

	return LowVolumeDB + (-LowVolumeDB * volume)
}

func checkVolume(v float64) error {
	// also rejects NaN
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: volume %v outside [0, 1]", ErrInvalidArgument, v)
	}

	return nil
}
