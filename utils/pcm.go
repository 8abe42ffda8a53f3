// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 on both sides keeps the scale symmetric
	return int16(x * 32767.0)
}

// PutInt16LE encodes samples as little-endian 16-bit PCM into dst and
// returns the number of bytes written. dst must hold 2*len(samples) bytes.
func PutInt16LE(dst []byte, samples []float32) int {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToInt16(s)))
	}

	return 2 * len(samples)
}
