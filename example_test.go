// SPDX-License-Identifier: EPL-2.0

package retrorain_test

import (
	"bytes"
	"fmt"

	retrorain "github.com/aCallin/retro-rain"
	"github.com/aCallin/retro-rain/formats/wav"
)

// ExampleDecodeAll decodes a mono WAV clip into stereo PCM for the engine.
func ExampleDecodeAll() {
	file := new(bytes.Buffer)
	_ = wav.WriteWAV16(file, 8000, 1, []int16{100, -100, 200, -200})

	dec, _, _ := retrorain.NewRegistry().ForPath("drop.wav")
	src, err := dec.Decode(file)
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	pcm, err := retrorain.DecodeAll(src, 8000, 2, 4096)
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	fmt.Printf("%d frames of stereo\n", len(pcm)/2)
	// Output: 4 frames of stereo
}
