// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// DecibelsToAmplitude converts a gain in dB to a linear amplitude factor.
func DecibelsToAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}
